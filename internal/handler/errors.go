package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidIDParam    = "Invalid %s"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidPlace      = "Invalid place parameter"
)

// Success messages for API responses
const (
	MsgItemListedSuccess       = "Item listed"
	MsgItemBoughtSuccess       = "Purchase complete"
	MsgListingCancelledSuccess = "Listing cancelled"
	MsgTradeRecordedSuccess    = "Trade recorded"
)

// Operation names used in logs and the result-code metric
const (
	OpListItem      = "list_item"
	OpBuyItem       = "buy_item"
	OpCancelListing = "cancel_listing"
	OpGetListing    = "get_listing"
	OpListListings  = "list_listings"
	OpCheckLog      = "check_log"
	OpTradeHistory  = "trade_history"
	OpRecordTrade   = "record_trade"
	OpGetPlayer     = "get_player"
)
