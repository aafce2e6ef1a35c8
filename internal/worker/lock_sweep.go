package worker

import (
	"context"
	"fmt"

	"github.com/osse101/CloverPit_Go/internal/concurrency"
)

// LockSweepJob deletes expired named locks in the background. Operations also
// sweep lazily, so this only bounds how long dead leases sit in the table.
type LockSweepJob struct {
	locks *concurrency.LockManager
}

// NewLockSweepJob creates a sweep job for locks
func NewLockSweepJob(locks *concurrency.LockManager) *LockSweepJob {
	return &LockSweepJob{locks: locks}
}

// Process runs one sweep
func (j *LockSweepJob) Process(ctx context.Context) error {
	if _, err := j.locks.Sweep(ctx); err != nil {
		return fmt.Errorf("%s: %w", LogMsgLockSweepFailed, err)
	}
	return nil
}
