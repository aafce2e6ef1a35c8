package domain

import "time"

// New session defaults
const (
	StartingMoney   int64   = 100
	StartingDebt    float64 = 50
	StartingRound           = 1
	StartingTickets         = 0
)

// Spin economy
const (
	SpinCost          int64 = 10
	MinTicketsPerSpin       = 0
	MaxTicketsPerSpin       = 3
)

// Round progression
const (
	DebtGrowthFactor     = 1.5
	BonusTicketsBase     = 3
	BonusTicketsPerRound = 2

	// DebtScale matches the two decimal places of game_sessions.debt
	DebtScale = 100
)

// Player name limits (in runes)
const (
	PlayerNameMinLength = 1
	PlayerNameMaxLength = 50
)

// SessionIDLength is the length of a hex-encoded session id
const SessionIDLength = 32

// Lock name prefixes. Lock names are "<prefix>_<sessionID>".
const (
	LockPrefixGameStart = "game_start"
	LockPrefixSpin      = "spin"
	LockPrefixEndRound  = "end_round"
	LockPrefixBuyItem   = "buy_item"
)

// Lease timeouts per operation
const (
	LeaseGameStart = 5 * time.Second
	LeaseSpin      = 10 * time.Second
	LeaseEndRound  = 10 * time.Second
	LeaseBuyItem   = 10 * time.Second
)

// LockName builds the operation-scoped lock name for a session
func LockName(prefix, sessionID string) string {
	return prefix + "_" + sessionID
}
