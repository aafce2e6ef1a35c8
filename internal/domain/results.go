package domain

// StartResult is returned when a new game is created
type StartResult struct {
	SessionID  string  `json:"session_id"`
	PlayerName string  `json:"player_name"`
	Money      int64   `json:"money"`
	Debt       float64 `json:"debt"`
	Round      int     `json:"round"`
	Tickets    int     `json:"tickets"`
}

// SpinResult is returned by a committed spin
type SpinResult struct {
	Grid          Grid      `json:"result"`
	WinLines      []WinLine `json:"win_lines"`
	Payout        int64     `json:"win_amount"`
	Multiplier    float64   `json:"multiplier"`
	BetAmount     int64     `json:"bet_amount"`
	NetChange     int64     `json:"net_change"`
	NewMoney      int64     `json:"new_money"`
	TicketsEarned int       `json:"tickets_earned"`
	NewTickets    int       `json:"new_tickets"`
}

// EndRoundResult is returned by EndRound. Only FinalRound is set on game over.
type EndRoundResult struct {
	GameOver     bool     `json:"game_over"`
	Message      string   `json:"message"`
	FinalRound   int      `json:"final_round,omitempty"`
	NewRound     *int     `json:"new_round,omitempty"`
	NewMoney     *int64   `json:"new_money,omitempty"`
	NewDebt      *float64 `json:"new_debt,omitempty"`
	BonusTickets *int     `json:"bonus_tickets,omitempty"`
	NewTickets   *int     `json:"new_tickets,omitempty"`
}

// BuyItemResult is returned by a committed purchase
type BuyItemResult struct {
	Item       Item    `json:"item"`
	Quantity   int     `json:"quantity"`
	NewTickets int     `json:"new_tickets"`
	NewMoney   int64   `json:"new_money"`
	NewDebt    float64 `json:"new_debt"`
}

// GameState is the read-only view of a session
type GameState struct {
	Session GameSession  `json:"game"`
	Items   []PlayerItem `json:"items"`
}
