package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter keeps per-key windows in a TTL-evicted LRU in process memory
type MemoryLimiter struct {
	mu      sync.Mutex
	windows *expirable.LRU[string, *window]
	limit   int
	period  time.Duration
	now     func() time.Time
}

// MemoryOption configures a MemoryLimiter
type MemoryOption func(*MemoryLimiter)

// WithClock overrides the time source
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter creates a limiter tracking at most maxKeys identifiers
func NewMemoryLimiter(limit int, period time.Duration, maxKeys int, opts ...MemoryOption) (*MemoryLimiter, error) {
	if err := validate(limit, period); err != nil {
		return nil, err
	}
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	l := &MemoryLimiter{
		windows: expirable.NewLRU[string, *window](maxKeys, nil, period),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows.Get(key)
	if !ok || now.Sub(w.start) >= l.period {
		w = &window{start: now}
		l.windows.Add(key, w)
	}
	w.count++

	return decide(w.count, l.limit, w.start.Add(l.period).Sub(now)), nil
}

// Len reports how many identifiers are being tracked
func (l *MemoryLimiter) Len() int {
	return l.windows.Len()
}
