package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/NemoBot_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	// DeadLetter receives events that exhausted their retries. Optional.
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps a Bus. A failed publish is retried in the
// background with exponential backoff and dead-lettered when retries run out,
// so callers never see subscriber failures.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig

	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
		stop:   make(chan struct{}),
	}
}

// Publish delivers the event. It returns nil once the event is accepted,
// even if the first delivery attempt failed.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	select {
	case <-p.stop:
		p.deadLetter(event, 1, err)
		return nil
	default:
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-p.stop:
			timer.Stop()
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
			p.deadLetter(event, attempt, lastErr)
			return
		case <-timer.C:
		}

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", p.config.MaxRetries)
	p.deadLetter(event, p.config.MaxRetries+1, lastErr)
}

func (p *ResilientPublisher) deadLetter(event Event, attempts int, lastErr error) {
	if p.config.DeadLetter == nil {
		return
	}
	if err := p.config.DeadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFail, "event_type", event.Type, "error", err)
	}
}

// Shutdown stops pending retries, dead-letters their events and waits for
// the background goroutines to exit or ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return fmt.Errorf("%s: %w", LogMsgShutdownTimeout, ctx.Err())
	}
}
