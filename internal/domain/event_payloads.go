package domain

// ItemListedPayload is the event payload for market.item_listed events
type ItemListedPayload struct {
	ListingID int64  `json:"listing_id"`
	SellerID  int64  `json:"seller_id"`
	ItemID    int64  `json:"item_id"`
	Amount    int64  `json:"amount"`
	Price     int64  `json:"price"`
	ListedAt  string `json:"listed_at"`
}

// ItemBoughtPayload is the event payload for market.item_bought events
type ItemBoughtPayload struct {
	ListingID  int64  `json:"listing_id"`
	TradeLogID int64  `json:"trade_log_id"`
	SellerID   int64  `json:"seller_id"`
	BuyerID    int64  `json:"buyer_id"`
	CreditedTo int64  `json:"credited_to"`
	ItemID     int64  `json:"item_id"`
	Amount     int64  `json:"amount"`
	Price      int64  `json:"price"`
	TradedAt   string `json:"traded_at"`
}

// ListingCancelledPayload is the event payload for market.listing_cancelled events
type ListingCancelledPayload struct {
	ListingID int64 `json:"listing_id"`
	SellerID  int64 `json:"seller_id"`
	ItemID    int64 `json:"item_id"`
	Amount    int64 `json:"amount"`
}

// TradeRecordedPayload is the event payload for trade.recorded events
type TradeRecordedPayload struct {
	TradeLogID int64  `json:"trade_log_id"`
	Place      string `json:"place"`
	CashAmount int64  `json:"cash_amount"`
	TradedAt   string `json:"traded_at"`
}
