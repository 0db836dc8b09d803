package market

import (
	"context"
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// GetPlayer returns a snapshot of a user's cash, energy and items. The user
// row and inventory are read in one transaction so the snapshot never mixes
// states from before and after a settlement.
func (s *service) GetPlayer(ctx context.Context, userID int64) (*domain.PlayerSnapshot, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	if p, ok := s.cache.Get(userID); ok {
		return &p, nil
	}

	gen := s.cache.Generation()
	var p domain.PlayerSnapshot
	err := s.inTx(ctx, func(tx repository.MarketTx) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf(ErrMsgGetUserFailed, err)
		}
		entries, err := tx.GetInventory(ctx, userID)
		if err != nil {
			return fmt.Errorf(ErrMsgGetInventoryFailed, err)
		}
		p = domain.NewPlayerSnapshot(*user, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !s.cache.Set(p, gen) {
		logger.FromContext(ctx).Debug(LogMsgSnapshotNotCached, "user_id", userID)
	}
	return &p, nil
}

// GetListing returns one listing.
func (s *service) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	if err := validateID("listing_id", listingID); err != nil {
		return nil, err
	}
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	return listing, nil
}

// ListListings returns open listings, newest first.
func (s *service) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error) {
	filter.Limit = domain.ClampLimit(filter.Limit)
	listings, err := s.repo.ListListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	return listings, nil
}
