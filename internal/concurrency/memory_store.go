package concurrency

import (
	"context"
	"sync"
	"time"
)

type leaseEntry struct {
	holder    string
	expiresAt time.Time
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	locks sync.Map
	now   func() time.Time
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// TryAcquire takes the lock if it is free or its lease has expired
func (s *MemoryStore) TryAcquire(_ context.Context, name, holder string, lease time.Duration) (bool, error) {
	now := s.now()
	entry := &leaseEntry{holder: holder, expiresAt: now.Add(lease)}

	for {
		current, loaded := s.locks.LoadOrStore(name, entry)
		if !loaded {
			return true, nil
		}
		held := current.(*leaseEntry)
		if !held.expiresAt.Before(now) {
			return false, nil
		}
		if s.locks.CompareAndSwap(name, held, entry) {
			return true, nil
		}
	}
}

// Release deletes the lock only if holder still owns it
func (s *MemoryStore) Release(_ context.Context, name, holder string) error {
	current, ok := s.locks.Load(name)
	if !ok {
		return nil
	}
	if current.(*leaseEntry).holder == holder {
		s.locks.CompareAndDelete(name, current)
	}
	return nil
}

// DeleteExpired removes all leases past their expiry
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	now := s.now()
	var n int64
	s.locks.Range(func(key, value any) bool {
		if value.(*leaseEntry).expiresAt.Before(now) && s.locks.CompareAndDelete(key, value) {
			n++
		}
		return true
	})
	return n, nil
}

// Holder returns the current holder of name, if any
func (s *MemoryStore) Holder(name string) (string, bool) {
	current, ok := s.locks.Load(name)
	if !ok {
		return "", false
	}
	return current.(*leaseEntry).holder, true
}
