package repository

import (
	"context"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after commit reports closed; that is the normal path
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
