package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "market.item_bought")
const (
	// EventTypeItemListed is published after a listing is committed
	EventTypeItemListed = "market.item_listed"

	// EventTypeItemBought is published after a purchase settles
	EventTypeItemBought = "market.item_bought"

	// EventTypeListingCancelled is published after a seller withdraws a listing
	EventTypeListingCancelled = "market.listing_cancelled"

	// EventTypeTradeRecorded is published when a non-market trade is logged
	EventTypeTradeRecorded = "trade.recorded"
)
