package sqlstore

// Error Messages - Ledger Repository
const (
	ErrMsgFailedToBeginTx         = "failed to begin transaction"
	ErrMsgFailedToGetUser         = "failed to get user"
	ErrMsgFailedToGetItem         = "failed to get item"
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToUpdateInventory = "failed to update inventory"
	ErrMsgFailedToUpdateCash      = "failed to update cash"
	ErrMsgFailedToGetListing      = "failed to get listing"
	ErrMsgFailedToInsertListing   = "failed to insert listing"
	ErrMsgFailedToDeleteListing   = "failed to delete listing"
	ErrMsgFailedToQueryTradeLogs  = "failed to query trade logs"
	ErrMsgFailedToInsertTradeLog  = "failed to insert trade log"
)
