package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/NemoBot_Go/internal/database"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/sse"
)

// Stopper is an HTTP server that can drain in-flight requests.
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Stream             *sse.Hub
	Server             Stopper
	ResilientPublisher *event.ResilientPublisher
	DeadLetter         *event.DeadLetterWriter
	Database           database.Pool
}

// GracefulShutdown stops components in dependency order. Open event streams
// are ended first, since the server waits for them to finish. Then the server
// stops taking requests, the publisher flushes or dead-letters pending
// retries, and finally the files and database they write to are closed.
// Errors are logged and do not stop the sequence. Nil components are skipped.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Stream != nil {
		slog.Info(LogMsgStoppingStream)
		components.Stream.Stop()
	}

	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DeadLetter != nil {
		slog.Info(LogMsgClosingDeadLetter)
		if err := components.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}

	if components.Database != nil {
		slog.Info(LogMsgClosingDatabase)
		if err := components.Database.Close(); err != nil {
			slog.Error(LogMsgDatabaseCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
