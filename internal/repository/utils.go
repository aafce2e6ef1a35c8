package repository

import (
	"context"
	"errors"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
)

// ErrTxClosed is returned by Tx implementations when Commit or Rollback
// is called on a finished transaction
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after Commit is the normal path for deferred calls
		if errors.Is(err, ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed {
			return
		}
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
