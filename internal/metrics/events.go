package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to ledger events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every ledger event type
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ItemListed,
		event.ItemBought,
		event.ListingCancelled,
		event.TradeRecorded,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent updates metrics for one event. Payloads that cannot be decoded
// are counted as handler errors and otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ItemListed:
		ListingsCreated.Inc()

	case event.ItemBought:
		var p domain.ItemBoughtPayload
		if p, err = event.DecodePayload[domain.ItemBoughtPayload](evt.Payload); err == nil {
			escrowed := p.CreditedTo != p.SellerID
			Purchases.WithLabelValues(strconv.FormatBool(escrowed)).Inc()
			CashTransferred.Add(float64(p.Price))
		}

	case event.ListingCancelled:
		ListingsCancelled.Inc()

	case event.TradeRecorded:
		var p domain.TradeRecordedPayload
		if p, err = event.DecodePayload[domain.TradeRecordedPayload](evt.Payload); err == nil {
			TradesRecorded.WithLabelValues(p.Place).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
