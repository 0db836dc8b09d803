// Package market is the ledger engine: listing items for sale, settling
// purchases atomically and recording the trade log.
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// Service defines the interface for marketplace and ledger operations
type Service interface {
	ListItem(ctx context.Context, sellerID, itemID, amount, price int64) (int64, error)
	BuyItem(ctx context.Context, listingID, buyerID int64) (*domain.PurchaseReceipt, error)
	CancelListing(ctx context.Context, listingID, sellerID int64) error
	GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error)
	CheckLog(ctx context.Context, query domain.LogQuery) (string, error)
	TradeHistory(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error)
	RecordTrade(ctx context.Context, log domain.TradeLog) (int64, error)
	GetPlayer(ctx context.Context, userID int64) (*domain.PlayerSnapshot, error)
}

// Config tunes the service. Zero values select the defaults.
type Config struct {
	// EscrowUserID is credited when a listing's seller no longer exists.
	// Zero disables escrow and such purchases fail with ErrSellerNotFound.
	EscrowUserID       int64
	MaxConflictRetries int
	PlayerCacheSize    int
	PlayerCacheTTL     time.Duration
	// Now stamps listings and trade logs. Defaults to time.Now.
	Now func() time.Time
}

type service struct {
	repo       repository.Market
	bus        event.Bus
	cache      *playerCache
	escrowID   int64
	maxRetries int
	now        func() time.Time
}

// NewService creates a new market service. bus may be nil.
func NewService(repo repository.Market, bus event.Bus, cfg Config) Service {
	if cfg.MaxConflictRetries <= 0 {
		cfg.MaxConflictRetries = DefaultMaxConflictRetries
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		repo:       repo,
		bus:        bus,
		cache:      newPlayerCache(cfg.PlayerCacheSize, cfg.PlayerCacheTTL),
		escrowID:   cfg.EscrowUserID,
		maxRetries: cfg.MaxConflictRetries,
		now:        cfg.Now,
	}
}

func (s *service) timestamp() string {
	return domain.FormatTimestamp(s.now())
}

// inTx runs fn in a transaction and commits it. A transaction the database
// rejects because of a concurrent writer is re-run up to maxRetries times;
// fn must therefore only touch state through tx.
func (s *service) inTx(ctx context.Context, fn func(tx repository.MarketTx) error) error {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err = s.runTx(ctx, fn)
		if !errors.Is(err, record.ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.FromContext(ctx).Warn(LogMsgConflictRetry, "attempt", attempt+1, "error", err)
	}
	return fmt.Errorf(ErrMsgRetriesExhausted, s.maxRetries+1, record.ErrStorage, err)
}

func (s *service) runTx(ctx context.Context, fn func(tx repository.MarketTx) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}

// publish delivers a post-commit event. Delivery failures never undo a
// committed operation.
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}
