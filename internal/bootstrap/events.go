package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/NemoBot_Go/internal/config"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/metrics"
	"github.com/osse101/NemoBot_Go/internal/sse"
)

// EventSystem is the in-process bus wrapped by a retrying publisher. Services
// publish through Publisher; DeadLetter must be closed after Publisher shuts
// down.
type EventSystem struct {
	Bus        *event.MemoryBus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem creates the event bus, opens the dead-letter file
// and registers the metrics collector.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}
	deadLetter, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenDeadLetter, err)
	}

	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries: EventDefaultMaxRetries,
		RetryDelay: EventDefaultRetryDelay,
		DeadLetter: deadLetter,
	})

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(publisher); err != nil {
		_ = deadLetter.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher, DeadLetter: deadLetter}, nil
}

// InitializeStream starts the market event stream hub and subscribes it to
// bus.
func InitializeStream(bus event.Bus) *sse.Hub {
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()
	return hub
}
