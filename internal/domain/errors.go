package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lock errors
	ErrMsgLockContention = "operation already in progress"

	// Session errors
	ErrMsgSessionNotFound = "game session not found"
	ErrMsgSessionTerminal = "game is over"

	// Balance errors
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgInsufficientTickets = "insufficient tickets"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Database/System errors
	ErrMsgPersistenceFailure = "persistence failure"
	ErrMsgTxClosed           = "tx is closed"

	// Input errors
	ErrMsgValidationFailure = "validation failed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrLockContention means the named lock could not be acquired within its lease timeout.
	// Callers may retry.
	ErrLockContention = errors.New(ErrMsgLockContention)

	// ErrSessionNotFound means no game session exists for the id.
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// ErrSessionTerminal means the session reached game over and accepts no mutation.
	ErrSessionTerminal = errors.New(ErrMsgSessionTerminal)

	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientTickets = errors.New(ErrMsgInsufficientTickets)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// ErrPersistenceFailure wraps store errors. The transaction has been rolled back.
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)

	// ErrValidationFailure is returned for malformed input before any lock is taken.
	ErrValidationFailure = errors.New(ErrMsgValidationFailure)
)

// IsRetryable reports whether the caller may retry the operation unchanged
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockContention) || errors.Is(err, ErrPersistenceFailure)
}
