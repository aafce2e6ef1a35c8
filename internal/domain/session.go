package domain

import (
	"math"
	"time"
)

// GameSession is one player run
type GameSession struct {
	SessionID  string    `json:"session_id"`
	PlayerName string    `json:"player_name"`
	Money      int64     `json:"money"`
	Debt       float64   `json:"debt"`
	Round      int       `json:"round"`
	Tickets    int       `json:"tickets"`
	GameOver   bool      `json:"game_over"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoundDebt rounds a debt to cents, half away from zero, as NUMERIC(14,2) stores it
func RoundDebt(debt float64) float64 {
	return math.Round(debt*DebtScale) / DebtScale
}

// NewGameSession returns a session with the starting balance
func NewGameSession(sessionID, playerName string, now time.Time) *GameSession {
	return &GameSession{
		SessionID:  sessionID,
		PlayerName: playerName,
		Money:      StartingMoney,
		Debt:       StartingDebt,
		Round:      StartingRound,
		Tickets:    StartingTickets,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HistoryRecord is the append-only audit row written for every spin
type HistoryRecord struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Round       int       `json:"round"`
	Grid        Grid      `json:"spin_result"`
	MoneyChange int64     `json:"money_change"`
	MoneyAfter  int64     `json:"money_after"`
	DebtAfter   float64   `json:"debt_after"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lock is a persisted named lease
type Lock struct {
	LockName  string    `json:"lock_name"`
	LockedBy  string    `json:"locked_by"`
	LockedAt  time.Time `json:"locked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the lease is inert at the given instant
func (l Lock) Expired(now time.Time) bool {
	return l.ExpiresAt.Before(now)
}
