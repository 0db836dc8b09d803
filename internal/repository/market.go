package repository

import (
	"context"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// Market defines the interface for ledger persistence. Reads on Market run
// outside any transaction.
type Market interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error)
	LatestTradeTime(ctx context.Context, query domain.LogQuery) (string, error)
	ListTradeLogs(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error)
	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx defines the interface for ledger transactions
type MarketTx interface {
	Tx
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	ItemExists(ctx context.Context, itemID int64) (bool, error)
	GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error)
	GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	// GetInventoryEntry returns nil when the user holds none of the item.
	GetInventoryEntry(ctx context.Context, userID, itemID int64) (*domain.InventoryEntry, error)
	// AdjustCash adds delta to the user's cash. It returns ErrUserNotFound
	// when no row matched.
	AdjustCash(ctx context.Context, userID, delta int64) error
	// AdjustInventory adds delta to the user's entry for item, creating it
	// when absent and removing it when the amount reaches zero or below.
	AdjustInventory(ctx context.Context, userID, itemID, delta int64) error
	InsertListing(ctx context.Context, listing domain.MarketListing) (int64, error)
	// DeleteListing returns false when the listing was already gone.
	DeleteListing(ctx context.Context, listingID int64) (bool, error)
	InsertTradeLog(ctx context.Context, log domain.TradeLog) (int64, error)
}
