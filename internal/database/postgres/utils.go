package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// wrapErr tags store failures with ErrPersistenceFailure. Deadlocks and lock
// timeouts keep their SQLSTATE in the message.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeDeadlockDetected, PgErrorCodeLockNotAvailable:
			return fmt.Errorf("%w: failed to %s (sqlstate %s): %w", domain.ErrPersistenceFailure, op, pgErr.Code, err)
		}
	}
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrPersistenceFailure, op, err)
}

// isUniqueViolation reports whether err is a unique constraint failure
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func scanSession(row pgx.Row) (*domain.GameSession, error) {
	var s domain.GameSession
	err := row.Scan(
		&s.SessionID,
		&s.PlayerName,
		&s.Money,
		&s.Debt,
		&s.Round,
		&s.Tickets,
		&s.GameOver,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		it         domain.Item
		effectType string
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Rarity, &it.Price, &effectType, &it.EffectValue); err != nil {
		return nil, err
	}
	it.EffectType = domain.EffectType(effectType)
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func collectPlayerItems(rows pgx.Rows) ([]domain.PlayerItem, error) {
	defer rows.Close()

	items := make([]domain.PlayerItem, 0)
	for rows.Next() {
		var (
			pi         domain.PlayerItem
			effectType string
		)
		err := rows.Scan(
			&pi.ID, &pi.Name, &pi.Description, &pi.Rarity, &pi.Price,
			&effectType, &pi.EffectValue, &pi.Quantity,
		)
		if err != nil {
			return nil, err
		}
		pi.EffectType = domain.EffectType(effectType)
		items = append(items, pi)
	}
	return items, rows.Err()
}
