package concurrency

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/testing/leaktest"
)

func newTestManager(store Store) *LockManager {
	return NewLockManager(store, WithPollIntervals(time.Millisecond, 5*time.Millisecond))
}

func TestAcquireRelease(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	ctx := context.Background()

	lease, err := lm.Acquire(ctx, "spin_abc", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "spin_abc", lease.Name)
	assert.NotEmpty(t, lease.Holder)
	assert.True(t, lease.ExpiresAt.After(lease.AcquiredAt))

	holder, ok := store.Holder("spin_abc")
	require.True(t, ok)
	assert.Equal(t, lease.Holder, holder)

	require.NoError(t, lm.Release(ctx, lease))
	_, ok = store.Holder("spin_abc")
	assert.False(t, ok)
}

func TestAcquire_TimesOutWhenHeld(t *testing.T) {
	lm := newTestManager(NewMemoryStore())
	ctx := context.Background()

	_, err := lm.Acquire(ctx, "spin_abc", time.Second)
	require.NoError(t, err)

	start := time.Now()
	_, err = lm.Acquire(ctx, "spin_abc", 50*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockContention)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestAcquire_ExpiredLockDoesNotBlock(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	ctx := context.Background()

	ok, err := store.TryAcquire(ctx, "end_round_abc", "crashed-holder", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	lease, err := lm.Acquire(ctx, "end_round_abc", time.Second)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.NotEqual(t, "crashed-holder", lease.Holder)
}

func TestAcquire_ContextCancelled(t *testing.T) {
	lm := newTestManager(NewMemoryStore())

	_, err := lm.Acquire(context.Background(), "spin_abc", 5*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = lm.Acquire(ctx, "spin_abc", 5*time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockContention)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquire_RejectsNonPositiveLease(t *testing.T) {
	lm := newTestManager(NewMemoryStore())

	_, err := lm.Acquire(context.Background(), "spin_abc", 0)

	assert.ErrorIs(t, err, domain.ErrValidationFailure)
}

func TestRelease_DoesNotStealTakenOverLock(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	ctx := context.Background()

	stale, err := lm.Acquire(ctx, "buy_item_abc", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	fresh, err := lm.Acquire(ctx, "buy_item_abc", time.Second)
	require.NoError(t, err)

	require.NoError(t, lm.Release(ctx, stale))

	holder, ok := store.Holder("buy_item_abc")
	require.True(t, ok)
	assert.Equal(t, fresh.Holder, holder)
}

func TestRelease_NilLease(t *testing.T) {
	lm := newTestManager(NewMemoryStore())
	assert.Error(t, lm.Release(context.Background(), nil))
}

func TestSweep(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	ctx := context.Background()

	_, _ = store.TryAcquire(ctx, "spin_a", "h1", time.Millisecond)
	_, _ = store.TryAcquire(ctx, "spin_b", "h2", time.Millisecond)
	_, _ = store.TryAcquire(ctx, "spin_c", "h3", time.Hour)

	time.Sleep(5 * time.Millisecond)

	n, err := lm.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok := store.Holder("spin_c")
	assert.True(t, ok)
}

func TestWithLock_ReleasesOnError(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	boom := errors.New("boom")

	err := lm.WithLock(context.Background(), "spin_abc", time.Second, func(ctx context.Context) error {
		_, held := store.Holder("spin_abc")
		assert.True(t, held)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, held := store.Holder("spin_abc")
	assert.False(t, held)
}

func TestWithLock_ReleasesOnPanic(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)

	assert.Panics(t, func() {
		_ = lm.WithLock(context.Background(), "spin_abc", time.Second, func(ctx context.Context) error {
			panic("kaboom")
		})
	})

	_, held := store.Holder("spin_abc")
	assert.False(t, held)
}

func TestWithLock_ReleasesWhenContextCancelled(t *testing.T) {
	store := NewMemoryStore()
	lm := newTestManager(store)
	ctx, cancel := context.WithCancel(context.Background())

	err := lm.WithLock(ctx, "spin_abc", time.Second, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	_, held := store.Holder("spin_abc")
	assert.False(t, held)
}

func TestWithLock_SerializesSameName(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	defer checker.Check(2)

	lm := newTestManager(NewMemoryStore())

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
		total   int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lm.WithLock(context.Background(), "spin_abc", 5*time.Second, func(ctx context.Context) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				total++
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen, "only one holder may be inside the critical section")
	assert.Equal(t, workers, total)
}

func TestWithLock_DifferentNamesDoNotBlock(t *testing.T) {
	lm := newTestManager(NewMemoryStore())
	ctx := context.Background()

	err := lm.WithLock(ctx, "spin_a", time.Second, func(ctx context.Context) error {
		return lm.WithLock(ctx, "spin_b", 50*time.Millisecond, func(ctx context.Context) error {
			return nil
		})
	})

	assert.NoError(t, err)
}

func TestOperationLabel(t *testing.T) {
	assert.Equal(t, "game_start", operationLabel("game_start_0123abcd"))
	assert.Equal(t, "spin", operationLabel("spin_0123abcd"))
	assert.Equal(t, "plain", operationLabel("plain"))
}
