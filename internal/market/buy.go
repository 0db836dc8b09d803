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

// BuyItem settles a listing: the buyer pays the price to the seller,
// receives the listed amount, the listing is removed and a MARKET trade log
// is appended. Either every step commits or none does.
func (s *service) BuyItem(ctx context.Context, listingID, buyerID int64) (*domain.PurchaseReceipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyItemCalled, "listing_id", listingID, "buyer_id", buyerID)

	if err := validateID("listing_id", listingID); err != nil {
		return nil, err
	}
	if err := validateID("buyer_id", buyerID); err != nil {
		return nil, err
	}

	var receipt domain.PurchaseReceipt
	err := s.inTx(ctx, func(tx repository.MarketTx) error {
		listing, err := tx.GetListing(ctx, listingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
			}
			return fmt.Errorf(ErrMsgGetListingFailed, err)
		}

		buyer, err := tx.GetUser(ctx, buyerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("%w: %d", domain.ErrBuyerNotFound, buyerID)
			}
			return fmt.Errorf(ErrMsgGetUserFailed, err)
		}
		if buyer.Cash < listing.Price {
			return fmt.Errorf(ErrMsgNeedFundsFmt, domain.ErrInsufficientFunds, buyer.Cash, listing.Price)
		}

		creditTo, err := s.resolvePayee(ctx, tx, listing.SellerID)
		if err != nil {
			return err
		}

		if err := tx.AdjustCash(ctx, buyerID, -listing.Price); err != nil {
			return fmt.Errorf(ErrMsgUpdateCashFailed, err)
		}
		if err := tx.AdjustCash(ctx, creditTo, listing.Price); err != nil {
			return fmt.Errorf(ErrMsgUpdateCashFailed, err)
		}
		if err := tx.AdjustInventory(ctx, buyerID, listing.ItemID, listing.Amount); err != nil {
			return fmt.Errorf(ErrMsgUpdateInventoryFailed, err)
		}

		deleted, err := tx.DeleteListing(ctx, listingID)
		if err != nil {
			return fmt.Errorf(ErrMsgDeleteListingFailed, err)
		}
		if !deleted {
			return fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
		}

		tradedAt := s.timestamp()
		logID, err := tx.InsertTradeLog(ctx, domain.TradeLog{
			ProviderID:  listing.SellerID,
			RecipientID: buyerID,
			ItemID:      &listing.ItemID,
			Amount:      &listing.Amount,
			CashAmount:  &listing.Price,
			Place:       domain.PlaceMarket,
			TradedAt:    tradedAt,
		})
		if err != nil {
			return fmt.Errorf(ErrMsgInsertTradeLogFailed, err)
		}

		receipt = domain.PurchaseReceipt{
			ListingID:  listingID,
			TradeLogID: logID,
			SellerID:   listing.SellerID,
			BuyerID:    buyerID,
			ItemID:     listing.ItemID,
			Amount:     listing.Amount,
			Price:      listing.Price,
			CreditedTo: creditTo,
			TradedAt:   tradedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(buyerID, receipt.SellerID, receipt.CreditedTo)
	s.publish(ctx, event.NewItemBoughtEvent(receipt))
	log.Info(LogMsgItemPurchased,
		"listing_id", listingID,
		"buyer_id", buyerID,
		"seller_id", receipt.SellerID,
		"price", receipt.Price,
		"escrowed", receipt.Escrowed())
	return &receipt, nil
}

// resolvePayee returns who receives the price: the seller, or the escrow
// account when the seller row is gone.
func (s *service) resolvePayee(ctx context.Context, tx repository.MarketTx, sellerID int64) (int64, error) {
	_, err := tx.GetUser(ctx, sellerID)
	if err == nil {
		return sellerID, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return 0, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	if s.escrowID == 0 || s.escrowID == sellerID {
		return 0, fmt.Errorf("%w: %d", domain.ErrSellerNotFound, sellerID)
	}
	if _, err := tx.GetUser(ctx, s.escrowID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, fmt.Errorf("%w: %d (escrow account %d missing)", domain.ErrSellerNotFound, sellerID, s.escrowID)
		}
		return 0, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	logger.FromContext(ctx).Warn(LogMsgSellerMissingEscrow, "seller_id", sellerID, "escrow_user_id", s.escrowID)
	return s.escrowID, nil
}
