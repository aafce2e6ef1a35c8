package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/repository"
)

// GameRepository implements repository.Game for PostgreSQL
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// BeginTx starts a new transaction
func (r *GameRepository) BeginTx(ctx context.Context) (repository.GameTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrPersistenceFailure, ErrMsgFailedToBeginTransaction, err)
	}
	return &gameTx{tx: tx}, nil
}

// GetSession reads a session without locking
func (r *GameRepository) GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, SQLGetSession, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		return nil, wrapErr("get session", err)
	}
	return s, nil
}

// GetPlayerItems returns owned items joined with the catalog
func (r *GameRepository) GetPlayerItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error) {
	rows, err := r.db.Query(ctx, SQLGetPlayerItems, sessionID)
	if err != nil {
		return nil, wrapErr("get player items", err)
	}
	items, err := collectPlayerItems(rows)
	if err != nil {
		return nil, wrapErr("scan player items", err)
	}
	return items, nil
}

// GetItemByID returns a catalog item
func (r *GameRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, SQLGetItemByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, id)
		}
		return nil, wrapErr("get item by id", err)
	}
	return it, nil
}

// ListItems returns the catalog ordered by rarity, then price
func (r *GameRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, SQLListItems)
	if err != nil {
		return nil, wrapErr("list items", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, wrapErr("scan items", err)
	}
	return items, nil
}

// ListHistory returns every spin recorded for a session, oldest first
func (r *GameRepository) ListHistory(ctx context.Context, sessionID string) ([]domain.HistoryRecord, error) {
	rows, err := r.db.Query(ctx, SQLListHistory, sessionID)
	if err != nil {
		return nil, wrapErr("list history", err)
	}
	defer rows.Close()

	records := make([]domain.HistoryRecord, 0)
	for rows.Next() {
		var (
			rec  domain.HistoryRecord
			grid []byte
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Round, &grid, &rec.MoneyChange, &rec.MoneyAfter, &rec.DebtAfter, &rec.CreatedAt); err != nil {
			return nil, wrapErr("scan history", err)
		}
		if err := json.Unmarshal(grid, &rec.Grid); err != nil {
			return nil, wrapErr("decode history grid", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list history", err)
	}
	return records, nil
}

type gameTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *gameTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
		}
		return wrapErr("commit transaction", err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *gameTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
	}
	return err
}

func (t *gameTx) CreateSession(ctx context.Context, session *domain.GameSession) error {
	_, err := t.tx.Exec(ctx, SQLInsertSession,
		session.SessionID,
		session.PlayerName,
		session.Money,
		session.Debt,
		session.Round,
		session.Tickets,
		session.GameOver,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: session %s already exists: %w", domain.ErrPersistenceFailure, session.SessionID, err)
		}
		return wrapErr("insert session", err)
	}
	return nil
}

// GetSessionForUpdate reads the session under SELECT ... FOR UPDATE
func (t *gameTx) GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	s, err := scanSession(t.tx.QueryRow(ctx, SQLGetSessionForUpdate, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		return nil, wrapErr("get session for update", err)
	}
	return s, nil
}

func (t *gameTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	err := t.tx.QueryRow(ctx, SQLUpdateSession,
		session.SessionID,
		session.Money,
		session.Debt,
		session.Round,
		session.Tickets,
		session.GameOver,
	).Scan(&session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, session.SessionID)
		}
		return wrapErr("update session", err)
	}
	return nil
}

func (t *gameTx) GetMultiplierItems(ctx context.Context, sessionID string) ([]domain.PlayerItem, error) {
	rows, err := t.tx.Query(ctx, SQLGetMultiplierItems, sessionID)
	if err != nil {
		return nil, wrapErr("get multiplier items", err)
	}
	items, err := collectPlayerItems(rows)
	if err != nil {
		return nil, wrapErr("scan multiplier items", err)
	}
	return items, nil
}

func (t *gameTx) AddPlayerItem(ctx context.Context, sessionID string, itemID int) (int, error) {
	var quantity int
	if err := t.tx.QueryRow(ctx, SQLUpsertPlayerItem, sessionID, itemID).Scan(&quantity); err != nil {
		return 0, wrapErr("add player item", err)
	}
	return quantity, nil
}

func (t *gameTx) AppendHistory(ctx context.Context, record *domain.HistoryRecord) error {
	grid, err := json.Marshal(record.Grid)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalGrid, err)
	}

	err = t.tx.QueryRow(ctx, SQLInsertHistory,
		record.SessionID,
		record.Round,
		grid,
		record.MoneyChange,
		record.MoneyAfter,
		record.DebtAfter,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return wrapErr("append history", err)
	}
	return nil
}
