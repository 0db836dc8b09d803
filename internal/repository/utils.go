package repository

import (
	"context"
	"errors"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Already committed: nothing to undo
		if !errors.Is(err, record.ErrTxDone) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
