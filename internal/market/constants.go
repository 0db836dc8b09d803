package market

import "time"

// Defaults
const (
	// DefaultMaxConflictRetries bounds how often a transaction rejected by a
	// concurrent writer is re-run.
	DefaultMaxConflictRetries = 3
	DefaultPlayerCacheSize    = 1000
	DefaultPlayerCacheTTL     = 5 * time.Minute
)

// ==================== Error Messages ====================

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgGetItemFailed           = "failed to get item: %w"
	ErrMsgGetListingFailed        = "failed to get listing: %w"
	ErrMsgGetInventoryFailed      = "failed to get inventory: %w"
	ErrMsgUpdateInventoryFailed   = "failed to update inventory: %w"
	ErrMsgUpdateCashFailed        = "failed to update cash: %w"
	ErrMsgInsertListingFailed     = "failed to insert listing: %w"
	ErrMsgDeleteListingFailed     = "failed to delete listing: %w"
	ErrMsgInsertTradeLogFailed    = "failed to insert trade log: %w"
	ErrMsgQueryTradeLogsFailed    = "failed to query trade logs: %w"
	ErrMsgRetriesExhausted        = "gave up after %d conflicting attempts: %w: %w"
)

// Validation error formats
const (
	ErrMsgInvalidAmountFmt   = "%w: amount must be positive, got %d"
	ErrMsgInvalidPriceFmt    = "%w: price must not be negative, got %d"
	ErrMsgInvalidIDFmt       = "%w: %s must be positive, got %d"
	ErrMsgInvalidPlaceFmt    = "%w: unknown place %q"
	ErrMsgInvalidTradeLogFmt = "%w: trade log must move an item or cash"
	ErrMsgInvalidTimeFmt     = "%w: traded_at %q is not a fixed-width UTC timestamp"
	ErrMsgNeedAmountFmt      = "%w: seller holds %d of item %d, listing needs %d"
	ErrMsgNeedFundsFmt       = "%w: buyer has %d, price is %d"
)

// ==================== Log Messages ====================

const (
	LogMsgListItemCalled      = "ListItem called"
	LogMsgItemListed          = "Item listed"
	LogMsgBuyItemCalled       = "BuyItem called"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgSellerMissingEscrow = "Seller no longer exists, crediting escrow account"
	LogMsgCancelCalled        = "CancelListing called"
	LogMsgListingCancelled    = "Listing cancelled"
	LogMsgTradeRecorded       = "Trade recorded"
	LogMsgConflictRetry       = "Transaction conflict, retrying"
	LogMsgPublishFailed       = "Failed to publish market event"
	LogMsgSnapshotNotCached   = "Player snapshot raced an invalidation, not cached"
)
