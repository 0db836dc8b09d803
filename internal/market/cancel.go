package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// CancelListing withdraws a listing and returns the reserved amount to the
// seller. Only the seller may cancel.
func (s *service) CancelListing(ctx context.Context, listingID, sellerID int64) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCancelCalled, "listing_id", listingID, "seller_id", sellerID)

	if err := validateID("listing_id", listingID); err != nil {
		return err
	}
	if err := validateID("seller_id", sellerID); err != nil {
		return err
	}

	var listing *domain.MarketListing
	err := s.inTx(ctx, func(tx repository.MarketTx) error {
		var err error
		listing, err = tx.GetListing(ctx, listingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
			}
			return fmt.Errorf(ErrMsgGetListingFailed, err)
		}
		if listing.SellerID != sellerID {
			return domain.ErrNotListingOwner
		}

		if _, err := tx.GetUser(ctx, sellerID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrSellerNotFound, sellerID)
			}
			return fmt.Errorf(ErrMsgGetUserFailed, err)
		}

		deleted, err := tx.DeleteListing(ctx, listingID)
		if err != nil {
			return fmt.Errorf(ErrMsgDeleteListingFailed, err)
		}
		if !deleted {
			return fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
		}
		if err := tx.AdjustInventory(ctx, sellerID, listing.ItemID, listing.Amount); err != nil {
			return fmt.Errorf(ErrMsgUpdateInventoryFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(sellerID)
	s.publish(ctx, event.NewListingCancelledEvent(*listing))
	log.Info(LogMsgListingCancelled, "listing_id", listingID, "seller_id", sellerID)
	return nil
}
