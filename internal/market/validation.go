package market

import (
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf(ErrMsgInvalidIDFmt, domain.ErrInvalidInput, name, id)
	}
	return nil
}

func validateListRequest(sellerID, itemID, amount, price int64) error {
	if err := validateID("seller_id", sellerID); err != nil {
		return err
	}
	if err := validateID("item_id", itemID); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf(ErrMsgInvalidAmountFmt, domain.ErrInvalidInput, amount)
	}
	if price < 0 {
		return fmt.Errorf(ErrMsgInvalidPriceFmt, domain.ErrInvalidInput, price)
	}
	return nil
}

func validateTradeLog(log domain.TradeLog) error {
	if err := validateID("provider_id", log.ProviderID); err != nil {
		return err
	}
	if err := validateID("recipient_id", log.RecipientID); err != nil {
		return err
	}
	switch log.Place {
	case domain.PlaceMarket, domain.PlaceTrade, domain.PlaceGather:
	default:
		return fmt.Errorf(ErrMsgInvalidPlaceFmt, domain.ErrInvalidInput, log.Place)
	}
	if log.ItemID == nil && log.CashAmount == nil {
		return fmt.Errorf(ErrMsgInvalidTradeLogFmt, domain.ErrInvalidInput)
	}
	if log.ItemID != nil {
		if err := validateID("item_id", *log.ItemID); err != nil {
			return err
		}
		if log.Amount == nil || *log.Amount <= 0 {
			var got int64
			if log.Amount != nil {
				got = *log.Amount
			}
			return fmt.Errorf(ErrMsgInvalidAmountFmt, domain.ErrInvalidInput, got)
		}
	}
	if log.CashAmount != nil && *log.CashAmount < 0 {
		return fmt.Errorf(ErrMsgInvalidPriceFmt, domain.ErrInvalidInput, *log.CashAmount)
	}
	if log.TradedAt != "" && !domain.IsCanonicalTimestamp(log.TradedAt) {
		return fmt.Errorf(ErrMsgInvalidTimeFmt, domain.ErrInvalidInput, log.TradedAt)
	}
	return nil
}
