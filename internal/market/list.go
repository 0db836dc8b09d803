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

// ListItem offers amount units of itemID for a total of price. The amount is
// taken out of the seller's inventory until the listing is bought or
// cancelled.
func (s *service) ListItem(ctx context.Context, sellerID, itemID, amount, price int64) (int64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgListItemCalled, "seller_id", sellerID, "item_id", itemID, "amount", amount, "price", price)

	if err := validateListRequest(sellerID, itemID, amount, price); err != nil {
		return 0, err
	}

	var listing domain.MarketListing
	err := s.inTx(ctx, func(tx repository.MarketTx) error {
		if _, err := tx.GetUser(ctx, sellerID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("seller %d: %w", sellerID, domain.ErrUserNotFound)
			}
			return fmt.Errorf(ErrMsgGetUserFailed, err)
		}

		exists, err := tx.ItemExists(ctx, itemID)
		if err != nil {
			return fmt.Errorf(ErrMsgGetItemFailed, err)
		}
		if !exists {
			return fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
		}

		entry, err := tx.GetInventoryEntry(ctx, sellerID, itemID)
		if err != nil {
			return fmt.Errorf(ErrMsgGetInventoryFailed, err)
		}
		var held int64
		if entry != nil {
			held = entry.Amount
		}
		if held < amount {
			return fmt.Errorf(ErrMsgNeedAmountFmt, domain.ErrInsufficientQuantity, held, itemID, amount)
		}

		if err := tx.AdjustInventory(ctx, sellerID, itemID, -amount); err != nil {
			return fmt.Errorf(ErrMsgUpdateInventoryFailed, err)
		}

		listing = domain.MarketListing{
			SellerID: sellerID,
			ItemID:   itemID,
			Amount:   amount,
			Price:    price,
			ListedAt: s.timestamp(),
		}
		id, err := tx.InsertListing(ctx, listing)
		if err != nil {
			return fmt.Errorf(ErrMsgInsertListingFailed, err)
		}
		listing.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate(sellerID)
	s.publish(ctx, event.NewItemListedEvent(listing))
	log.Info(LogMsgItemListed, "listing_id", listing.ID, "seller_id", sellerID)
	return listing.ID, nil
}
