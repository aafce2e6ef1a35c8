package repository

import (
	"context"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// Game defines the interface for game session persistence
type Game interface {
	BeginTx(ctx context.Context) (GameTx, error)

	GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error)
	GetPlayerItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListHistory(ctx context.Context, sessionID string) ([]domain.HistoryRecord, error)
}

// GameTx defines the interface for game session transactions.
// GetSessionForUpdate holds an exclusive row lock until Commit or Rollback.
type GameTx interface {
	Tx
	CreateSession(ctx context.Context, session *domain.GameSession) error
	GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error)
	UpdateSession(ctx context.Context, session *domain.GameSession) error
	GetMultiplierItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error)
	// AddPlayerItem creates the row with quantity 1 or increments it, returning the new quantity
	AddPlayerItem(ctx context.Context, sessionID string, itemID int) (int, error)
	AppendHistory(ctx context.Context, record *domain.HistoryRecord) error
}
