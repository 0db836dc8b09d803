package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/NemoBot_Go/internal/event"
)

// StreamedTypes are the bus events forwarded to stream clients.
var StreamedTypes = []event.Type{
	event.ItemListed,
	event.ItemBought,
	event.ListingCancelled,
	event.TradeRecorded,
}

// IsStreamedType reports whether t can be requested in a stream filter.
func IsStreamedType(t string) bool {
	for _, st := range StreamedTypes {
		if string(st) == t {
			return true
		}
	}
	return false
}

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	for _, t := range StreamedTypes {
		s.bus.Subscribe(t, s.forward)
	}
	slog.Info(LogMsgSubscriberReady, "types", StreamedTypes)
}

// forward never fails; a full hub drops the event instead.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	return nil
}
