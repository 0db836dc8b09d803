package domain

import "github.com/osse101/NemoBot_Go/internal/database/record"

// ListingFilter narrows ListListings. Zero fields match everything.
type ListingFilter struct {
	SellerID int64
	ItemID   int64
	Limit    int
}

// LogQuery selects trade logs. Non-zero selectors and Conditions are AND-ed.
type LogQuery struct {
	ProviderID  int64
	RecipientID int64
	ItemID      int64
	Place       string
	// Conditions are extra predicates on TRADE_LOGS columns.
	Conditions []record.Condition
}
