package game

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/repository"
	"github.com/osse101/CloverPit_Go/internal/slots"
)

// MockRepository implements repository.Game for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.GameTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GameTx), args.Error(1)
}

func (m *MockRepository) GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameSession), args.Error(1)
}

func (m *MockRepository) GetPlayerItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerItem), args.Error(1)
}

func (m *MockRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRepository) ListHistory(ctx context.Context, sessionID string) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

// MockTx implements repository.GameTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) CreateSession(ctx context.Context, session *domain.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockTx) GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameSession), args.Error(1)
}

func (m *MockTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockTx) GetMultiplierItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerItem), args.Error(1)
}

func (m *MockTx) AddPlayerItem(ctx context.Context, sessionID string, itemID int) (int, error) {
	args := m.Called(ctx, sessionID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) AppendHistory(ctx context.Context, record *domain.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// stubRandom replays a grid cell by cell and always earns the same tickets
type stubRandom struct {
	mu      sync.Mutex
	symbols []domain.Symbol
	next    int
	tickets int
}

func newStubRandom(grid domain.Grid, tickets int) *stubRandom {
	r := &stubRandom{tickets: tickets}
	for _, row := range grid {
		r.symbols = append(r.symbols, row[:]...)
	}
	return r
}

func (r *stubRandom) UniformSymbol() domain.Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()
	sym := r.symbols[r.next%len(r.symbols)]
	r.next++
	return sym
}

func (r *stubRandom) UniformInt(_, _ int) int {
	return r.tickets
}

var _ slots.Random = (*stubRandom)(nil)

// losingGrid matches no pattern
func losingGrid() domain.Grid {
	c, l, o, b, d := slots.SymbolCherry, slots.SymbolLemon, slots.SymbolOrange, slots.SymbolBell, slots.SymbolDiamond
	return domain.Grid{
		{c, l, o, b, d},
		{o, b, d, c, l},
		{d, c, l, o, b},
	}
}

// topRowSevensGrid wins the top row with three sevens and nothing else
func topRowSevensGrid() domain.Grid {
	grid := losingGrid()
	grid[0][0], grid[0][1], grid[0][2] = slots.SymbolSeven, slots.SymbolSeven, slots.SymbolSeven
	return grid
}
