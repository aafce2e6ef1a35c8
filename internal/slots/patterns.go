package slots

import "github.com/osse101/CloverPit_Go/internal/domain"

// Pattern is a named ordered path through the grid
type Pattern struct {
	Name      string
	Positions []domain.Position
}

func p(row, col int) domain.Position {
	return domain.Position{Row: row, Col: col}
}

func row(r int) []domain.Position {
	return []domain.Position{p(r, 0), p(r, 1), p(r, 2), p(r, 3), p(r, 4)}
}

func col(c int) []domain.Position {
	return []domain.Position{p(0, c), p(1, c), p(2, c)}
}

// Patterns are evaluated in this order, which is also the order of reported win lines
var Patterns = []Pattern{
	{Name: "상단 가로", Positions: row(0)},
	{Name: "중간 가로", Positions: row(1)},
	{Name: "하단 가로", Positions: row(2)},

	{Name: "좌측1 세로", Positions: col(0)},
	{Name: "좌측2 세로", Positions: col(1)},
	{Name: "중앙 세로", Positions: col(2)},
	{Name: "우측1 세로", Positions: col(3)},
	{Name: "우측2 세로", Positions: col(4)},

	{Name: "좌상→우하", Positions: []domain.Position{p(0, 0), p(1, 1), p(2, 2)}},
	{Name: "우상→좌하", Positions: []domain.Position{p(0, 4), p(1, 3), p(2, 2)}},

	{Name: "V자형", Positions: []domain.Position{p(0, 0), p(1, 1), p(2, 2), p(1, 3), p(0, 4)}},
	{Name: "역V자형", Positions: []domain.Position{p(2, 0), p(1, 1), p(0, 2), p(1, 3), p(2, 4)}},
	{Name: "마름모", Positions: []domain.Position{p(0, 2), p(1, 1), p(1, 3), p(2, 2)}},
	{Name: "지그재그1", Positions: []domain.Position{p(0, 0), p(1, 1), p(0, 2), p(1, 3), p(0, 4)}},
	{Name: "지그재그2", Positions: []domain.Position{p(2, 0), p(1, 1), p(2, 2), p(1, 3), p(2, 4)}},
}
