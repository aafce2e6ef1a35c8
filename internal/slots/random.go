package slots

import (
	"math/rand/v2"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// Random is the engine's source of randomness
type Random interface {
	UniformSymbol() domain.Symbol
	// UniformInt returns an integer in [min, max]
	UniformInt(min, max int) int
}

type mathRandom struct{}

// NewRandom returns the default math/rand backed source
func NewRandom() Random {
	return mathRandom{}
}

func (mathRandom) UniformSymbol() domain.Symbol {
	return Symbols[rand.IntN(len(Symbols))] //nolint:gosec // game randomness, not security critical
}

func (mathRandom) UniformInt(min, max int) int {
	if min >= max {
		return min
	}
	return min + rand.IntN(max-min+1) //nolint:gosec // game randomness, not security critical
}
