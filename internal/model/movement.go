package model

// movement is the per-kind move shape: where a piece may land, which cells
// it passes over on the way, and how the move is written in history.
type movement interface {
	deltas() []Cell
	path(from, to Cell) []Cell
	direction(from, to Cell) Direction
}

var movements = map[PieceKind]movement{
	P1: step{},
	P2: step{},
	P3: step{},
	H1: orthogonalJump{},
	H2: diagonalJump{},
}

func (k PieceKind) movement() movement {
	if m, ok := movements[k]; ok {
		return m
	}
	return immobile{}
}

// step moves one cell along a single axis and never passes over anything.
type step struct{}

func (step) deltas() []Cell {
	return []Cell{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
}

func (step) path(from, to Cell) []Cell { return nil }

func (step) direction(from, to Cell) Direction { return axialDirection(from, to) }

// orthogonalJump moves exactly two cells along a single axis.
type orthogonalJump struct{}

func (orthogonalJump) deltas() []Cell {
	return []Cell{{Row: -2}, {Row: 2}, {Col: -2}, {Col: 2}}
}

func (orthogonalJump) path(from, to Cell) []Cell {
	var cells []Cell
	switch {
	case from.Row == to.Row:
		for col := min(from.Col, to.Col) + 1; col < max(from.Col, to.Col); col++ {
			cells = append(cells, Cell{Row: from.Row, Col: col})
		}
	case from.Col == to.Col:
		for row := min(from.Row, to.Row) + 1; row < max(from.Row, to.Row); row++ {
			cells = append(cells, Cell{Row: row, Col: from.Col})
		}
	}
	return cells
}

func (orthogonalJump) direction(from, to Cell) Direction { return axialDirection(from, to) }

// diagonalJump moves exactly two cells along both axes at once.
type diagonalJump struct{}

func (diagonalJump) deltas() []Cell {
	return []Cell{{Row: -2, Col: -2}, {Row: -2, Col: 2}, {Row: 2, Col: -2}, {Row: 2, Col: 2}}
}

func (diagonalJump) path(from, to Cell) []Cell {
	if abs(to.Row-from.Row) != 2 || abs(to.Col-from.Col) != 2 {
		return nil
	}
	return []Cell{{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}}
}

func (diagonalJump) direction(from, to Cell) Direction {
	switch {
	case to.Row < from.Row && to.Col < from.Col:
		return ForwardLeft
	case to.Row < from.Row && to.Col > from.Col:
		return ForwardRight
	case to.Row > from.Row && to.Col < from.Col:
		return BackwardLeft
	case to.Row > from.Row && to.Col > from.Col:
		return BackwardRight
	}
	return ""
}

type immobile struct{}

func (immobile) deltas() []Cell                    { return nil }
func (immobile) path(from, to Cell) []Cell         { return nil }
func (immobile) direction(from, to Cell) Direction { return "" }

// axialDirection checks the row axis first; rows grow backward.
func axialDirection(from, to Cell) Direction {
	switch {
	case to.Row < from.Row:
		return Forward
	case to.Row > from.Row:
		return Backward
	case to.Col < from.Col:
		return Left
	case to.Col > from.Col:
		return Right
	}
	return ""
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
