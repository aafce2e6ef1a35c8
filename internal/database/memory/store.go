// Package memory is a process-local implementation of the game repositories.
// Session rows are locked per transaction and writes are staged until Commit.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// Store holds all game state in memory
type Store struct {
	mu sync.RWMutex

	sessions    map[string]domain.GameSession
	items       map[int]domain.Item
	playerItems map[string]map[int]int
	history     map[string][]domain.HistoryRecord
	syncMeta    map[string]domain.SyncMetadata

	nextItemID    int
	nextHistoryID int64

	rows rowLocks
	now  func() time.Time
}

var (
	_ repository.Game    = (*Store)(nil)
	_ repository.Catalog = (*Store)(nil)
)

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		sessions:    make(map[string]domain.GameSession),
		items:       make(map[int]domain.Item),
		playerItems: make(map[string]map[int]int),
		history:     make(map[string][]domain.HistoryRecord),
		syncMeta:    make(map[string]domain.SyncMetadata),
		now:         time.Now,
	}
}

// rowLocks hands out one context-aware mutex per session id. An entry lives
// only while some transaction holds or waits for it.
type rowLocks struct {
	mu    sync.Mutex
	locks map[string]*rowLock
}

type rowLock struct {
	ch   chan struct{}
	refs int
}

func (r *rowLocks) acquireRef(key string) *rowLock {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks == nil {
		r.locks = make(map[string]*rowLock)
	}
	l, ok := r.locks[key]
	if !ok {
		l = &rowLock{ch: make(chan struct{}, 1)}
		r.locks[key] = l
	}
	l.refs++
	return l
}

func (r *rowLocks) releaseRef(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		return
	}
	l.refs--
	if l.refs <= 0 {
		delete(r.locks, key)
	}
}

func (r *rowLocks) lock(ctx context.Context, key string) error {
	l := r.acquireRef(key)
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		r.releaseRef(key)
		return fmt.Errorf("%w: waiting for row lock on %s: %w", domain.ErrPersistenceFailure, key, ctx.Err())
	}
}

func (r *rowLocks) unlock(key string) {
	r.mu.Lock()
	l, ok := r.locks[key]
	r.mu.Unlock()
	if !ok {
		return
	}
	<-l.ch
	r.releaseRef(key)
}

func (r *rowLocks) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

// BeginTx starts a new transaction
func (s *Store) BeginTx(ctx context.Context) (repository.GameTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistenceFailure, err)
	}
	return newGameTx(s), nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (*domain.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return &session, nil
}

func (s *Store) GetPlayerItems(_ context.Context, sessionID string) ([]domain.PlayerItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.playerItemsLocked(sessionID, nil, nil), nil
}

// playerItemsLocked joins owned quantities plus staged increments with the catalog.
// Caller holds s.mu.
func (s *Store) playerItemsLocked(sessionID string, staged map[int]int, filter func(domain.Item) bool) []domain.PlayerItem {
	quantities := make(map[int]int, len(s.playerItems[sessionID])+len(staged))
	for id, q := range s.playerItems[sessionID] {
		quantities[id] += q
	}
	for id, q := range staged {
		quantities[id] += q
	}

	out := make([]domain.PlayerItem, 0, len(quantities))
	for id, q := range quantities {
		it, ok := s.items[id]
		if !ok || (filter != nil && !filter(it)) {
			continue
		}
		out = append(out, domain.PlayerItem{Item: it, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return itemLess(out[i].Item, out[j].Item) })
	return out
}

func (s *Store) GetItemByID(_ context.Context, id int) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, id)
	}
	return &it, nil
}

// ListItems returns the catalog ordered by rarity, then price
func (s *Store) ListItems(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return itemLess(out[i], out[j]) })
	return out, nil
}

// ListHistory returns every spin recorded for a session, oldest first
func (s *Store) ListHistory(_ context.Context, sessionID string) ([]domain.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.HistoryRecord(nil), s.history[sessionID]...), nil
}

func itemLess(a, b domain.Item) bool {
	if a.Rarity != b.Rarity {
		return a.Rarity < b.Rarity
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.ID < b.ID
}

// ============================================================================
// Catalog
// ============================================================================

func (s *Store) InsertItem(_ context.Context, item *domain.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Name == item.Name {
			return 0, fmt.Errorf("%w: item %q already exists", domain.ErrPersistenceFailure, item.Name)
		}
	}

	s.nextItemID++
	stored := *item
	stored.ID = s.nextItemID
	s.items[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) UpdateItem(_ context.Context, itemID int, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
	}
	stored := *item
	stored.ID = itemID
	s.items[itemID] = stored
	return nil
}

var errNoSyncMetadata = errors.New("no sync metadata")

func (s *Store) GetSyncMetadata(_ context.Context, configName string) (*domain.SyncMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.syncMeta[configName]
	if !ok {
		return nil, fmt.Errorf("%w for %s", errNoSyncMetadata, configName)
	}
	return &m, nil
}

func (s *Store) UpsertSyncMetadata(_ context.Context, m *domain.SyncMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncMeta[m.ConfigName] = *m
	return nil
}
