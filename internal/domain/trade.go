package domain

import "time"

// Trade places
const (
	PlaceMarket = "MARKET"
	PlaceTrade  = "TRADE"
	PlaceGather = "GATHER"
)

// TimestampLayout is the fixed-width UTC ISO-8601 layout used for every
// stored timestamp, so lexicographic order matches time order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// IsCanonicalTimestamp reports whether v is a UTC timestamp already in
// TimestampLayout. Offsets and other precisions are rejected since they
// would break string ordering.
func IsCanonicalTimestamp(v string) bool {
	t, err := time.Parse(TimestampLayout, v)
	return err == nil && FormatTimestamp(t) == v
}

// TradeLog is an append-only record of a transfer of an item and/or cash.
type TradeLog struct {
	ID          int64  `json:"id"`
	ProviderID  int64  `json:"provider_id"`
	RecipientID int64  `json:"recipient_id"`
	ItemID      *int64 `json:"item_id,omitempty"`
	Amount      *int64 `json:"amount,omitempty"`
	CashAmount  *int64 `json:"cash_amount,omitempty"`
	Place       string `json:"place"`
	TradedAt    string `json:"traded_at"`
}
