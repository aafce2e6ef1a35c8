package domain

// Symbol is one reel face
type Symbol string

// Grid dimensions
const (
	GridRows = 3
	GridCols = 5
)

// Grid is the 3x5 spin result, indexed [row][col]
type Grid [GridRows][GridCols]Symbol

// Position addresses one grid cell
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WinLine is one matched pattern in a spin
type WinLine struct {
	Name      string     `json:"name"`
	Symbol    Symbol     `json:"symbol"`
	Count     int        `json:"count"`
	Amount    int64      `json:"amount"`
	Positions []Position `json:"positions"`
}

// SpinOutcome is the evaluated grid
type SpinOutcome struct {
	Grid       Grid      `json:"grid"`
	WinLines   []WinLine `json:"win_lines"`
	RawPayout  int64     `json:"raw_payout"`
	Multiplier float64   `json:"multiplier"`
	Payout     int64     `json:"payout"`
}
