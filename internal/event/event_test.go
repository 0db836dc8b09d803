package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/testing/leaktest"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(ItemListed, func(ctx context.Context, e Event) error {
		payload, err := DecodePayload[domain.ItemListedPayload](e.Payload)
		require.NoError(t, err)
		assert.Equal(t, int64(9), payload.ListingID)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewItemListedEvent(domain.MarketListing{ID: 9, SellerID: 1, ItemID: 7, Amount: 3, Price: 50}))
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "unheard"}))
}

func TestMemoryBus_PublishJoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(ItemBought, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("handler error")
	})
	bus.Subscribe(ItemBought, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: ItemBought})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewItemBoughtEvent_EscrowMetadata(t *testing.T) {
	e := NewItemBoughtEvent(domain.PurchaseReceipt{ListingID: 1, SellerID: 5, CreditedTo: 99})
	assert.Equal(t, EventSchemaVersion, e.Version)
	assert.Equal(t, true, e.GetMetadataValue(MetadataKeyEscrowed))
	assert.Nil(t, Event{}.GetMetadataValue(MetadataKeyEscrowed))
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"listing_id": 4, "amount": 2}
	payload, err := DecodePayload[domain.ListingCancelledPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, int64(4), payload.ListingID)
	assert.Equal(t, int64(2), payload.Amount)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(2*time.Second, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(2*time.Second, 3))
	assert.Equal(t, time.Second, CalculateRetryDelay(time.Second, 0))
}

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	bus := NewMemoryBus()
	var calls atomic.Int32
	delivered := make(chan struct{})
	bus.Subscribe(ItemListed, func(ctx context.Context, e Event) error {
		if calls.Add(1) < 3 {
			return errors.New("not yet")
		}
		close(delivered)
		return nil
	})

	p := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 5, RetryDelay: time.Millisecond})
	require.NoError(t, p.Publish(context.Background(), Event{Type: ItemListed}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not redelivered")
	}
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestResilientPublisher_DeadLettersAfterExhaustion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	bus := NewMemoryBus()
	bus.Subscribe(ItemBought, func(ctx context.Context, e Event) error {
		return errors.New("always fails")
	})

	p := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 2, RetryDelay: time.Millisecond, DeadLetter: dlw})
	require.NoError(t, p.Publish(context.Background(), NewItemBoughtEvent(domain.PurchaseReceipt{ListingID: 4, BuyerID: 2})))

	require.Eventually(t, func() bool {
		info, err := os.Stat(path)
		return err == nil && info.Size() > 0
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, p.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, ItemBought, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.Contains(t, entry.LastError, "always fails")

	payload, err := DecodePayload[domain.ItemBoughtPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(4), payload.ListingID)
	assert.Equal(t, int64(2), payload.BuyerID)
}

func TestReadDeadLetters_RejectsCorruptLine(t *testing.T) {
	input := `{"schema_version":"1.0","event":{"type":"market.item_bought"},"attempts":3}` + "\n\nnot json\n"

	entries, err := ReadDeadLetters(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Len(t, entries, 1)
}

func TestResilientPublisher_ShutdownStopsPendingRetries(t *testing.T) {
	leaks := leaktest.NewGoroutineChecker(t)
	defer leaks.Check(0, leaktest.DefaultTimeout)

	bus := NewMemoryBus()
	bus.Subscribe(ItemBought, func(ctx context.Context, e Event) error {
		return errors.New("down")
	})

	p := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: time.Hour})
	require.NoError(t, p.Publish(context.Background(), Event{Type: ItemBought}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, p.Shutdown(ctx))

	// After shutdown failures are dead-lettered synchronously.
	assert.NoError(t, p.Publish(context.Background(), Event{Type: ItemBought}))
}
