package slots

import "github.com/osse101/CloverPit_Go/internal/domain"

// Reel symbols
const (
	SymbolCherry  domain.Symbol = "🍒"
	SymbolLemon   domain.Symbol = "🍋"
	SymbolOrange  domain.Symbol = "🍊"
	SymbolBell    domain.Symbol = "🔔"
	SymbolDiamond domain.Symbol = "💎"
	SymbolStar    domain.Symbol = "⭐"
	SymbolSeven   domain.Symbol = "7️⃣"
)

// Symbols is the reel strip; every face is equally likely
var Symbols = []domain.Symbol{
	SymbolCherry,
	SymbolLemon,
	SymbolOrange,
	SymbolBell,
	SymbolDiamond,
	SymbolStar,
	SymbolSeven,
}

// BaseAmounts is the payout for a three-symbol line
var BaseAmounts = map[domain.Symbol]int64{
	SymbolSeven:   1000,
	SymbolDiamond: 500,
	SymbolStar:    200,
	SymbolBell:    100,
	SymbolOrange:  50,
	SymbolLemon:   50,
	SymbolCherry:  50,
}

// DefaultBaseAmount pays symbols missing from BaseAmounts
const DefaultBaseAmount int64 = 50

// Line length thresholds and their payout multipliers
const (
	MinMatchLength = 3

	MultiplierThree = 1.0
	MultiplierFour  = 1.5
	MultiplierFive  = 2.0
)

const (
	floorEpsilon        = 1e-9
	multiplierPrecision = 1e6
)
