package concurrency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
)

// Store persists named leases. TryAcquire must be a single atomic
// insert-or-take-over-if-expired step.
type Store interface {
	TryAcquire(ctx context.Context, name, holder string, lease time.Duration) (bool, error)
	Release(ctx context.Context, name, holder string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Lease is a held named lock
type Lease struct {
	Name       string
	Holder     string
	AcquiredAt time.Time
	ExpiresAt  time.Time
}

// LockManager hands out named leases backed by a Store
type LockManager struct {
	store           Store
	initialInterval time.Duration
	maxInterval     time.Duration
	newHolder       func() string
}

// Option configures a LockManager
type Option func(*LockManager)

// WithPollIntervals overrides the acquisition backoff intervals
func WithPollIntervals(initial, max time.Duration) Option {
	return func(lm *LockManager) {
		lm.initialInterval = initial
		lm.maxInterval = max
	}
}

// WithHolderFunc overrides how holder ids are generated
func WithHolderFunc(fn func() string) Option {
	return func(lm *LockManager) {
		lm.newHolder = fn
	}
}

// NewLockManager creates a new LockManager
func NewLockManager(store Store, opts ...Option) *LockManager {
	lm := &LockManager{
		store:           store,
		initialInterval: DefaultPollInitialInterval,
		maxInterval:     DefaultPollMaxInterval,
		newHolder:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(lm)
	}
	return lm
}

var errLockHeld = errors.New("lock held")

// Acquire blocks until the named lock is free or leaseTimeout elapses.
// The same duration is used as the lease length.
func (lm *LockManager) Acquire(ctx context.Context, name string, leaseTimeout time.Duration) (*Lease, error) {
	if leaseTimeout <= 0 {
		return nil, fmt.Errorf("%w: lease for %s must be positive", domain.ErrValidationFailure, name)
	}

	holder := lm.newHolder()
	op := operationLabel(name)
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = lm.initialInterval
	b.MaxInterval = lm.maxInterval
	b.MaxElapsedTime = leaseTimeout
	b.Reset()

	err := backoff.Retry(func() error {
		ok, err := lm.store.TryAcquire(ctx, name, holder, leaseTimeout)
		if err != nil {
			return backoff.Permanent(fmt.Errorf(ErrMsgTryAcquireFailed, name, err))
		}
		if !ok {
			return errLockHeld
		}
		return nil
	}, backoff.WithContext(b, ctx))

	metrics.LockWait.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, errLockHeld) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			metrics.LockContention.WithLabelValues(op).Inc()
			logger.FromContext(ctx).Warn(LogMsgLockContention, "lock", name, "waited", time.Since(start))
			if errors.Is(err, errLockHeld) {
				return nil, fmt.Errorf("%w: %s", domain.ErrLockContention, name)
			}
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLockContention, name, err)
		}
		return nil, err
	}

	now := time.Now()
	logger.FromContext(ctx).Debug(LogMsgLockAcquired, "lock", name, "holder", holder)

	return &Lease{
		Name:       name,
		Holder:     holder,
		AcquiredAt: now,
		ExpiresAt:  now.Add(leaseTimeout),
	}, nil
}

// Release gives the lease back. A lease that expired and was taken over is left alone.
func (lm *LockManager) Release(ctx context.Context, lease *Lease) error {
	if lease == nil {
		return errors.New(ErrMsgNilLease)
	}
	if err := lm.store.Release(ctx, lease.Name, lease.Holder); err != nil {
		return fmt.Errorf(ErrMsgReleaseFailed, lease.Name, err)
	}
	return nil
}

// Sweep removes every expired lease and returns how many were removed
func (lm *LockManager) Sweep(ctx context.Context) (int64, error) {
	n, err := lm.store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSweepFailed, err)
	}
	if n > 0 {
		metrics.LocksSwept.Add(float64(n))
		logger.FromContext(ctx).Info(LogMsgExpiredLocksSwept, "count", n)
	}
	return n, nil
}

// WithLock runs fn while holding the named lock. The lock is released on every
// exit path, panics included; release failures are logged.
func (lm *LockManager) WithLock(ctx context.Context, name string, lease time.Duration, fn func(ctx context.Context) error) error {
	l, err := lm.Acquire(ctx, name, lease)
	if err != nil {
		return err
	}

	defer func() {
		// Release even when the caller's context is already done
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultReleaseTimeout)
		defer cancel()

		if rerr := lm.Release(releaseCtx, l); rerr != nil {
			logger.FromContext(ctx).Error(LogMsgLockReleaseFailed, "lock", name, "error", rerr)
		}
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgLockReleasedOnPanic, "lock", name, slog.Any("panic", r))
			panic(r)
		}
	}()

	return fn(ctx)
}

// operationLabel strips the session id suffix from a lock name
func operationLabel(name string) string {
	if i := strings.LastIndex(name, "_"); i > 0 {
		return name[:i]
	}
	return name
}
