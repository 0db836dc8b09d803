package domain

// MarketListing offers Amount units of ItemID for a total of Price.
type MarketListing struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	ItemID   int64  `json:"item_id"`
	Amount   int64  `json:"amount"`
	Price    int64  `json:"price"`
	ListedAt string `json:"listed_at"`
}

// PurchaseReceipt describes a settled purchase.
type PurchaseReceipt struct {
	ListingID  int64  `json:"listing_id"`
	TradeLogID int64  `json:"trade_log_id"`
	SellerID   int64  `json:"seller_id"`
	BuyerID    int64  `json:"buyer_id"`
	ItemID     int64  `json:"item_id"`
	Amount     int64  `json:"amount"`
	Price      int64  `json:"price"`
	CreditedTo int64  `json:"credited_to"`
	TradedAt   string `json:"traded_at"`
}

// Escrowed reports whether the price went to the escrow account because the
// seller no longer exists.
func (r PurchaseReceipt) Escrowed() bool {
	return r.CreditedTo != r.SellerID
}
