package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/NemoBot_Go/internal/config"
	"github.com/osse101/NemoBot_Go/internal/database"
	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/database/schema"
	"github.com/osse101/NemoBot_Go/internal/database/sqlstore"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// Repositories holds the repository implementations used by the application.
type Repositories struct {
	Market repository.Market
}

// OpenDatabase opens the configured store and makes sure every ledger table
// exists.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*record.Store, error) {
	store, err := database.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDatabase, err)
	}
	if err := schema.NewManager(store).Initialize(ctx); err != nil {
		_ = store.DB().Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitSchema, err)
	}
	slog.Info(LogMsgDatabaseReady, "driver", store.Dialect().Name())
	return store, nil
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(store *record.Store) *Repositories {
	return &Repositories{
		Market: sqlstore.NewMarketRepository(store),
	}
}

// NewMarketService builds the ledger service from configuration.
func NewMarketService(cfg *config.Config, repos *Repositories, bus event.Bus) market.Service {
	svc := market.NewService(repos.Market, bus, market.Config{
		EscrowUserID:       cfg.EscrowUserID,
		MaxConflictRetries: cfg.MaxConflictRetries,
		PlayerCacheSize:    cfg.PlayerCacheSize,
		PlayerCacheTTL:     cfg.PlayerCacheTTL,
	})
	slog.Info(LogMsgMarketServiceReady,
		"escrow_user_id", cfg.EscrowUserID,
		"max_conflict_retries", cfg.MaxConflictRetries)
	return svc
}
