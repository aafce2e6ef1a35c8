// Package ratelimit counts requests per identifier in fixed windows.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetIn is the time until the current window closes
	ResetIn time.Duration
}

// Limiter admits at most Limit requests per key per window
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func validate(limit int, window time.Duration) error {
	if limit <= 0 {
		return errors.New(ErrMsgInvalidLimit)
	}
	if window <= 0 {
		return errors.New(ErrMsgInvalidWindow)
	}
	return nil
}

func decide(count, limit int, resetIn time.Duration) Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}
}
