package concurrency

import "time"

// Acquisition polling
const (
	DefaultPollInitialInterval = 10 * time.Millisecond
	DefaultPollMaxInterval     = 250 * time.Millisecond
	DefaultReleaseTimeout      = 2 * time.Second
)

// Log messages
const (
	LogMsgLockAcquired        = "Lock acquired"
	LogMsgLockContention      = "Lock acquisition timed out"
	LogMsgLockReleaseFailed   = "Failed to release lock"
	LogMsgExpiredLocksSwept   = "Expired locks swept"
	LogMsgLockReleasedOnPanic = "Released lock after panic"
)

// Error messages
const (
	ErrMsgTryAcquireFailed = "failed to acquire lock %s: %w"
	ErrMsgReleaseFailed    = "failed to release lock %s: %w"
	ErrMsgSweepFailed      = "failed to sweep expired locks: %w"
	ErrMsgNilLease         = "nil lease"
)
