package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

// scriptedRandom replays symbols in order and returns a fixed int
type scriptedRandom struct {
	symbols []domain.Symbol
	next    int
	ticket  int
}

func (s *scriptedRandom) UniformSymbol() domain.Symbol {
	sym := s.symbols[s.next%len(s.symbols)]
	s.next++
	return sym
}

func (s *scriptedRandom) UniformInt(min, max int) int {
	if s.ticket < min {
		return min
	}
	if s.ticket > max {
		return max
	}
	return s.ticket
}

// gridFrom builds a grid from three rows of symbols
func gridFrom(rows [3][5]domain.Symbol) domain.Grid {
	return domain.Grid(rows)
}

// losingGrid has no winning line at all and contains no sevens or stars
func losingGrid() domain.Grid {
	c, l, o, b, d := SymbolCherry, SymbolLemon, SymbolOrange, SymbolBell, SymbolDiamond
	return gridFrom([3][5]domain.Symbol{
		{c, l, o, b, d},
		{o, b, d, c, l},
		{d, c, l, o, b},
	})
}

func TestLosingGridHasNoLines(t *testing.T) {
	out := Evaluate(losingGrid(), nil)

	assert.Empty(t, out.WinLines)
	assert.Equal(t, int64(0), out.Payout)
	assert.Equal(t, 1.0, out.Multiplier)
}

func TestTopRowRunLengths(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantPaid  int64
		wantCells int
	}{
		{"three sevens pay x1.0", 3, 1000, 3},
		{"four sevens pay x1.5", 4, 1500, 4},
		{"five sevens pay x2.0", 5, 2000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := losingGrid()
			for c := 0; c < tt.count; c++ {
				g[0][c] = SymbolSeven
			}

			lines := MatchLines(g)
			var top *domain.WinLine
			for i := range lines {
				if lines[i].Name == "상단 가로" {
					top = &lines[i]
				}
			}
			require.NotNil(t, top, "top row should win")
			assert.Equal(t, tt.count, top.Count)
			assert.Equal(t, tt.wantPaid, top.Amount)
			assert.Len(t, top.Positions, tt.wantCells)
			for i, pos := range top.Positions {
				assert.Equal(t, domain.Position{Row: 0, Col: i}, pos)
			}
		})
	}
}

func TestLinePayout(t *testing.T) {
	assert.Equal(t, int64(1000), LinePayout(SymbolSeven, 3))
	assert.Equal(t, int64(750), LinePayout(SymbolDiamond, 4))
	assert.Equal(t, int64(400), LinePayout(SymbolStar, 5))
	assert.Equal(t, int64(150), LinePayout(SymbolBell, 4))
	assert.Equal(t, int64(75), LinePayout(SymbolCherry, 4))
	assert.Equal(t, int64(100), LinePayout(SymbolOrange, 5))
	assert.Equal(t, int64(50), LinePayout("🍉", 3), "unknown symbols use the default base")
	assert.Equal(t, int64(0), LinePayout(SymbolSeven, 2))
}

func TestPrefixRunOnly(t *testing.T) {
	g := losingGrid()
	// Middle row: first two differ, last three match; prefix run is 1
	g[1] = [5]domain.Symbol{SymbolCherry, SymbolLemon, SymbolSeven, SymbolSeven, SymbolSeven}

	assert.Empty(t, MatchLines(g))
}

func TestColumnAndDiagonalPatterns(t *testing.T) {
	s := SymbolStar
	c, l, o, b := SymbolCherry, SymbolLemon, SymbolOrange, SymbolBell
	g := gridFrom([3][5]domain.Symbol{
		{s, l, o, b, c},
		{s, s, b, l, o},
		{s, c, s, o, b},
	})

	lines := MatchLines(g)
	names := make([]string, len(lines))
	for i, ln := range lines {
		names[i] = ln.Name
	}

	assert.Equal(t, []string{"좌측1 세로", "좌상→우하", "V자형", "지그재그2"}, names)
	for _, ln := range lines {
		assert.Equal(t, s, ln.Symbol)
		assert.Equal(t, 3, ln.Count)
		assert.Equal(t, int64(200), ln.Amount)
	}
}

func TestAllCellsSameMatchesEveryPattern(t *testing.T) {
	var g domain.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = SymbolCherry
		}
	}

	out := Evaluate(g, nil)
	require.Len(t, out.WinLines, len(Patterns))

	var want int64
	for i, pat := range Patterns {
		ln := out.WinLines[i]
		assert.Equal(t, pat.Name, ln.Name, "lines follow pattern order")
		assert.Equal(t, len(pat.Positions), ln.Count)
		want += ln.Amount
	}
	assert.Equal(t, want, out.RawPayout)
	assert.Equal(t, want, out.Payout)

	// Diamond is four cells long and pays x1.5
	assert.Equal(t, "마름모", out.WinLines[12].Name)
	assert.Equal(t, 4, out.WinLines[12].Count)
	assert.Equal(t, int64(75), out.WinLines[12].Amount)
}

func TestShortOrOutOfBoundsPatternsNeverMatch(t *testing.T) {
	var g domain.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = SymbolSeven
		}
	}

	_, ok := matchPattern(g, Pattern{Name: "short", Positions: []domain.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}})
	assert.False(t, ok)

	_, ok = matchPattern(g, Pattern{Name: "oob", Positions: []domain.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 3, Col: 1}}})
	assert.False(t, ok)

	_, ok = matchPattern(g, Pattern{Name: "negative", Positions: []domain.Position{{Row: 0, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: 2}}})
	assert.False(t, ok)
}

func TestAggregateMultiplier(t *testing.T) {
	clover := domain.Item{ID: 1, EffectType: domain.EffectTypeMultiplier, EffectValue: 1.2}
	horseshoe := domain.Item{ID: 2, EffectType: domain.EffectTypeMultiplier, EffectValue: 1.2}
	pouch := domain.Item{ID: 3, EffectType: domain.EffectTypeBonusMoney, EffectValue: 50}

	tests := []struct {
		name  string
		items []domain.PlayerItem
		want  float64
	}{
		{"no items", nil, 1.0},
		{"two distinct x1.2 items", []domain.PlayerItem{{Item: clover, Quantity: 1}, {Item: horseshoe, Quantity: 1}}, 1.4},
		{"stacked quantity", []domain.PlayerItem{{Item: clover, Quantity: 3}}, 1.6},
		{"non multiplier ignored", []domain.PlayerItem{{Item: pouch, Quantity: 5}}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AggregateMultiplier(tt.items), 1e-9)
		})
	}
}

func TestMultiplierAppliedAsFloor(t *testing.T) {
	clover := domain.Item{ID: 1, EffectType: domain.EffectTypeMultiplier, EffectValue: 1.2}
	items := []domain.PlayerItem{{Item: clover, Quantity: 2}}

	g := losingGrid()
	// Top row three stars: 200
	g[0][0], g[0][1], g[0][2] = SymbolStar, SymbolStar, SymbolStar

	out := Evaluate(g, items)
	require.Len(t, out.WinLines, 1)
	assert.Equal(t, int64(200), out.RawPayout)
	assert.Equal(t, int64(280), out.Payout)

	// 50 x 1.33 = 66.5 floors to 66
	odd := []domain.PlayerItem{{Item: domain.Item{EffectType: domain.EffectTypeMultiplier, EffectValue: 1.33}, Quantity: 1}}
	g[0][0], g[0][1], g[0][2] = SymbolOrange, SymbolOrange, SymbolOrange
	out = Evaluate(g, odd)
	assert.Equal(t, int64(66), out.Payout)
}

func TestEngineUsesInjectedRandom(t *testing.T) {
	rng := &scriptedRandom{symbols: []domain.Symbol{SymbolSeven}, ticket: 2}
	e := NewEngine(rng)

	out := e.Spin(nil)
	for r := range out.Grid {
		for c := range out.Grid[r] {
			assert.Equal(t, SymbolSeven, out.Grid[r][c])
		}
	}
	assert.Equal(t, 15, rng.next, "one draw per cell")
	assert.Len(t, out.WinLines, len(Patterns))
	assert.Equal(t, 2, e.RollTickets())
}

func TestDefaultRandomStaysInRange(t *testing.T) {
	rng := NewRandom()
	valid := make(map[domain.Symbol]bool, len(Symbols))
	for _, s := range Symbols {
		valid[s] = true
	}

	for i := 0; i < 500; i++ {
		assert.True(t, valid[rng.UniformSymbol()])
		n := rng.UniformInt(domain.MinTicketsPerSpin, domain.MaxTicketsPerSpin)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 3)
	}
}
