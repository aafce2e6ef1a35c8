// Package slots generates and scores 3x5 slot grids.
package slots

import (
	"math"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// Engine generates grids and scores them against Patterns
type Engine struct {
	rng Random
}

// NewEngine creates an Engine. A nil rng uses NewRandom.
func NewEngine(rng Random) *Engine {
	if rng == nil {
		rng = NewRandom()
	}
	return &Engine{rng: rng}
}

// GenerateGrid fills every cell independently
func (e *Engine) GenerateGrid() domain.Grid {
	var g domain.Grid
	for r := 0; r < domain.GridRows; r++ {
		for c := 0; c < domain.GridCols; c++ {
			g[r][c] = e.rng.UniformSymbol()
		}
	}
	return g
}

// RollTickets returns the tickets earned by one spin
func (e *Engine) RollTickets() int {
	return e.rng.UniformInt(domain.MinTicketsPerSpin, domain.MaxTicketsPerSpin)
}

// Spin generates a grid and evaluates it
func (e *Engine) Spin(items []domain.PlayerItem) domain.SpinOutcome {
	return Evaluate(e.GenerateGrid(), items)
}

// Evaluate scores grid. The multiplier comes from the owned items.
func Evaluate(grid domain.Grid, items []domain.PlayerItem) domain.SpinOutcome {
	lines := MatchLines(grid)

	var raw int64
	for _, l := range lines {
		raw += l.Amount
	}

	mult := AggregateMultiplier(items)

	return domain.SpinOutcome{
		Grid:       grid,
		WinLines:   lines,
		RawPayout:  raw,
		Multiplier: mult,
		Payout:     floor(float64(raw) * mult),
	}
}

// MatchLines returns every winning line in pattern order
func MatchLines(grid domain.Grid) []domain.WinLine {
	lines := make([]domain.WinLine, 0)
	for _, pat := range Patterns {
		if l, ok := matchPattern(grid, pat); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// matchPattern counts the run of identical symbols from the first position
func matchPattern(grid domain.Grid, pat Pattern) (domain.WinLine, bool) {
	if len(pat.Positions) < MinMatchLength {
		return domain.WinLine{}, false
	}
	for _, pos := range pat.Positions {
		if !inBounds(pos) {
			return domain.WinLine{}, false
		}
	}

	first := pat.Positions[0]
	symbol := grid[first.Row][first.Col]

	count := 1
	for _, pos := range pat.Positions[1:] {
		if grid[pos.Row][pos.Col] != symbol {
			break
		}
		count++
	}
	if count < MinMatchLength {
		return domain.WinLine{}, false
	}

	positions := make([]domain.Position, count)
	copy(positions, pat.Positions[:count])

	return domain.WinLine{
		Name:      pat.Name,
		Symbol:    symbol,
		Count:     count,
		Amount:    LinePayout(symbol, count),
		Positions: positions,
	}, true
}

func inBounds(pos domain.Position) bool {
	return pos.Row >= 0 && pos.Row < domain.GridRows && pos.Col >= 0 && pos.Col < domain.GridCols
}

// LinePayout is floor(base * m) where m depends on the run length
func LinePayout(symbol domain.Symbol, count int) int64 {
	base, ok := BaseAmounts[symbol]
	if !ok {
		base = DefaultBaseAmount
	}

	var m float64
	switch {
	case count >= 5:
		m = MultiplierFive
	case count == 4:
		m = MultiplierFour
	case count == 3:
		m = MultiplierThree
	default:
		return 0
	}
	return floor(float64(base) * m)
}

// floor truncates toward negative infinity, absorbing binary rounding error
// so that 100 * (1 + 0.2 + 0.2) pays 140
func floor(v float64) int64 {
	return int64(math.Floor(v + floorEpsilon))
}

// AggregateMultiplier is 1 + sum((factor - 1) * quantity) over multiplier items
func AggregateMultiplier(items []domain.PlayerItem) float64 {
	mult := 1.0
	for _, it := range items {
		effect, err := it.Effect()
		if err != nil {
			continue
		}
		if m, ok := effect.(domain.MultiplierEffect); ok {
			mult += (m.Factor - 1) * float64(it.Quantity)
		}
	}
	return math.Round(mult*multiplierPrecision) / multiplierPrecision
}
