package repository

import (
	"context"
	"time"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// Lock defines the interface for named lease persistence
type Lock interface {
	TryAcquire(ctx context.Context, name, holder string, lease time.Duration) (bool, error)
	Release(ctx context.Context, name, holder string) error
	DeleteExpired(ctx context.Context) (int64, error)
	GetLock(ctx context.Context, name string) (*domain.Lock, error)
}
