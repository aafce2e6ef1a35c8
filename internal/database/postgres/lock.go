package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// LockRepository persists named leases in critical_locks
type LockRepository struct {
	db *pgxpool.Pool
}

// NewLockRepository creates a new LockRepository
func NewLockRepository(db *pgxpool.Pool) *LockRepository {
	return &LockRepository{db: db}
}

// TryAcquire inserts the lock, or takes it over if the current lease expired.
// Zero rows returned means a live holder exists.
func (r *LockRepository) TryAcquire(ctx context.Context, name, holder string, lease time.Duration) (bool, error) {
	var lockedBy string
	err := r.db.QueryRow(ctx, SQLTryAcquireLock, name, holder, float64(lease.Milliseconds())).Scan(&lockedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, wrapErr("acquire lock", err)
	}
	return lockedBy == holder, nil
}

// Release deletes the lock row only if holder owns it
func (r *LockRepository) Release(ctx context.Context, name, holder string) error {
	if _, err := r.db.Exec(ctx, SQLReleaseLock, name, holder); err != nil {
		return wrapErr("release lock", err)
	}
	return nil
}

// DeleteExpired removes every expired lease
func (r *LockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLDeleteExpiredLocks)
	if err != nil {
		return 0, wrapErr("delete expired locks", err)
	}
	return tag.RowsAffected(), nil
}

// GetLock returns the current lease row, or nil when no row exists
func (r *LockRepository) GetLock(ctx context.Context, name string) (*domain.Lock, error) {
	var l domain.Lock
	err := r.db.QueryRow(ctx, SQLGetLock, name).Scan(&l.LockName, &l.LockedBy, &l.LockedAt, &l.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get lock", err)
	}
	return &l, nil
}
