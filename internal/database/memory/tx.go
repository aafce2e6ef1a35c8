package memory

import (
	"context"
	"fmt"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

type gameTx struct {
	s *Store

	held     []string
	sessions map[string]domain.GameSession
	created  map[string]bool
	itemAdds map[string]map[int]int
	history  []domain.HistoryRecord
	done     bool
}

func newGameTx(s *Store) *gameTx {
	return &gameTx{
		s:        s,
		sessions: make(map[string]domain.GameSession),
		created:  make(map[string]bool),
		itemAdds: make(map[string]map[int]int),
	}
}

func (t *gameTx) holds(sessionID string) bool {
	for _, id := range t.held {
		if id == sessionID {
			return true
		}
	}
	return false
}

// lockRow takes the session's row lock once per transaction
func (t *gameTx) lockRow(ctx context.Context, sessionID string) error {
	if t.holds(sessionID) {
		return nil
	}
	if err := t.s.rows.lock(ctx, sessionID); err != nil {
		return err
	}
	t.held = append(t.held, sessionID)
	return nil
}

func (t *gameTx) release() {
	for _, id := range t.held {
		t.s.rows.unlock(id)
	}
	t.held = nil
	t.done = true
}

func (t *gameTx) Commit(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	defer t.release()

	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range t.created {
		if _, exists := s.sessions[id]; exists {
			return fmt.Errorf("%w: session %s already exists", domain.ErrPersistenceFailure, id)
		}
	}

	for id, session := range t.sessions {
		s.sessions[id] = session
	}
	for sessionID, adds := range t.itemAdds {
		owned := s.playerItems[sessionID]
		if owned == nil {
			owned = make(map[int]int)
			s.playerItems[sessionID] = owned
		}
		for itemID, q := range adds {
			owned[itemID] += q
		}
	}
	for _, rec := range t.history {
		s.nextHistoryID++
		rec.ID = s.nextHistoryID
		s.history[rec.SessionID] = append(s.history[rec.SessionID], rec)
	}
	return nil
}

func (t *gameTx) Rollback(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *gameTx) CreateSession(ctx context.Context, session *domain.GameSession) error {
	if t.done {
		return repository.ErrTxClosed
	}
	if err := t.lockRow(ctx, session.SessionID); err != nil {
		return err
	}

	t.s.mu.RLock()
	_, exists := t.s.sessions[session.SessionID]
	t.s.mu.RUnlock()
	if exists || t.created[session.SessionID] {
		return fmt.Errorf("%w: session %s already exists", domain.ErrPersistenceFailure, session.SessionID)
	}

	t.created[session.SessionID] = true
	t.sessions[session.SessionID] = *session
	return nil
}

// GetSessionForUpdate blocks until no other transaction holds the row
func (t *gameTx) GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	if t.done {
		return nil, repository.ErrTxClosed
	}
	if err := t.lockRow(ctx, sessionID); err != nil {
		return nil, err
	}

	if staged, ok := t.sessions[sessionID]; ok {
		return &staged, nil
	}
	return t.s.GetSession(ctx, sessionID)
}

func (t *gameTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	if t.done {
		return repository.ErrTxClosed
	}
	if err := t.lockRow(ctx, session.SessionID); err != nil {
		return err
	}
	if _, staged := t.sessions[session.SessionID]; !staged {
		if _, err := t.s.GetSession(ctx, session.SessionID); err != nil {
			return err
		}
	}

	session.UpdatedAt = t.s.now()
	t.sessions[session.SessionID] = *session
	return nil
}

func (t *gameTx) GetMultiplierItems(_ context.Context, sessionID string) ([]domain.PlayerItem, error) {
	if t.done {
		return nil, repository.ErrTxClosed
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.s.playerItemsLocked(sessionID, t.itemAdds[sessionID], func(it domain.Item) bool {
		return it.EffectType == domain.EffectTypeMultiplier
	}), nil
}

func (t *gameTx) AddPlayerItem(_ context.Context, sessionID string, itemID int) (int, error) {
	if t.done {
		return 0, repository.ErrTxClosed
	}

	t.s.mu.RLock()
	_, itemExists := t.s.items[itemID]
	_, sessionExists := t.s.sessions[sessionID]
	owned := t.s.playerItems[sessionID][itemID]
	t.s.mu.RUnlock()

	if !itemExists {
		return 0, fmt.Errorf("%w: add player item: item %d does not exist", domain.ErrPersistenceFailure, itemID)
	}
	if !sessionExists && !t.created[sessionID] {
		return 0, fmt.Errorf("%w: add player item: session %s does not exist", domain.ErrPersistenceFailure, sessionID)
	}

	adds := t.itemAdds[sessionID]
	if adds == nil {
		adds = make(map[int]int)
		t.itemAdds[sessionID] = adds
	}
	adds[itemID]++
	return owned + adds[itemID], nil
}

func (t *gameTx) AppendHistory(_ context.Context, record *domain.HistoryRecord) error {
	if t.done {
		return repository.ErrTxClosed
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = t.s.now()
	}
	t.history = append(t.history, *record)
	return nil
}
