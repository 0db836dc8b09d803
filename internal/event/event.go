package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Metadata  Metadata    `json:"metadata,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Market event types
const (
	ItemListed       Type = domain.EventTypeItemListed
	ItemBought       Type = domain.EventTypeItemBought
	ListingCancelled Type = domain.EventTypeListingCancelled
	TradeRecorded    Type = domain.EventTypeTradeRecorded
)

func newEvent(t Type, payload interface{}, metadata Metadata) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		Payload:   payload,
		Metadata:  metadata,
		Timestamp: time.Now().Unix(),
	}
}

// NewItemListedEvent creates a market.item_listed event
func NewItemListedEvent(listing domain.MarketListing) Event {
	return newEvent(ItemListed, domain.ItemListedPayload{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
		ItemID:    listing.ItemID,
		Amount:    listing.Amount,
		Price:     listing.Price,
		ListedAt:  listing.ListedAt,
	}, nil)
}

// NewItemBoughtEvent creates a market.item_bought event
func NewItemBoughtEvent(receipt domain.PurchaseReceipt) Event {
	return newEvent(ItemBought, domain.ItemBoughtPayload{
		ListingID:  receipt.ListingID,
		TradeLogID: receipt.TradeLogID,
		SellerID:   receipt.SellerID,
		BuyerID:    receipt.BuyerID,
		CreditedTo: receipt.CreditedTo,
		ItemID:     receipt.ItemID,
		Amount:     receipt.Amount,
		Price:      receipt.Price,
		TradedAt:   receipt.TradedAt,
	}, Metadata{MetadataKeyEscrowed: receipt.Escrowed()})
}

// NewListingCancelledEvent creates a market.listing_cancelled event
func NewListingCancelledEvent(listing domain.MarketListing) Event {
	return newEvent(ListingCancelled, domain.ListingCancelledPayload{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
		ItemID:    listing.ItemID,
		Amount:    listing.Amount,
	}, nil)
}

// NewTradeRecordedEvent creates a trade.recorded event
func NewTradeRecordedEvent(log domain.TradeLog) Event {
	var cash int64
	if log.CashAmount != nil {
		cash = *log.CashAmount
	}
	return newEvent(TradeRecorded, domain.TradeRecordedPayload{
		TradeLogID: log.ID,
		Place:      log.Place,
		CashAmount: cash,
		TradedAt:   log.TradedAt,
	}, nil)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously and joins
// their errors.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
