package model

import (
	"encoding/json"
	"fmt"
)

const BoardSize = 5

type PieceKind string

const (
	P1 PieceKind = "P1"
	P2 PieceKind = "P2"
	P3 PieceKind = "P3"
	H1 PieceKind = "H1"
	H2 PieceKind = "H2"
)

// Kinds lists every piece kind in palette order.
var Kinds = []PieceKind{P1, P2, P3, H1, H2}

func (k PieceKind) Valid() bool {
	_, ok := movements[k]
	return ok
}

// Piece is an immutable value; moving a piece re-places it on the board.
type Piece struct {
	Owner Player    `json:"player"`
	Kind  PieceKind `json:"type"`
}

func (p Piece) Valid() bool {
	return p.Owner.Valid() && p.Kind.Valid()
}

func (p Piece) String() string {
	return string(p.Owner) + "-" + string(p.Kind)
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a value type: copying a Board copies the whole grid, so a
// transition never aliases the board it was computed from.
type Board struct {
	cells [BoardSize][BoardSize]Piece
}

// NewBoard builds the initial board from a setup placement.
func NewBoard(placement map[Cell]Piece) (Board, error) {
	var b Board
	for cell, piece := range placement {
		if !cell.InBounds() {
			return Board{}, fmt.Errorf("place %s at %s: %w", piece, cell, ErrCellOutOfBounds)
		}
		if !piece.Valid() {
			return Board{}, fmt.Errorf("place %s at %s: %w", piece, cell, ErrUnknownPiece)
		}
		b.cells[cell.Row][cell.Col] = piece
	}
	return b, nil
}

// At returns the piece on c. Out-of-bounds cells are empty.
func (b Board) At(c Cell) (Piece, bool) {
	if !c.InBounds() {
		return Piece{}, false
	}
	p := b.cells[c.Row][c.Col]
	return p, p.Owner != ""
}

// Pieces returns every occupied cell with its piece.
func (b Board) Pieces() map[Cell]Piece {
	out := make(map[Cell]Piece)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.cells[row][col]; p.Owner != "" {
				out[Cell{Row: row, Col: col}] = p
			}
		}
	}
	return out
}

func (b Board) Count(owner Player) int {
	n := 0
	for row := range b.cells {
		for _, p := range b.cells[row] {
			if p.Owner == owner {
				n++
			}
		}
	}
	return n
}

func (b Board) with(c Cell, p Piece) Board {
	b.cells[c.Row][c.Col] = p
	return b
}

func (b Board) without(c Cell) Board {
	b.cells[c.Row][c.Col] = Piece{}
	return b
}

// ApplyMove relocates the piece on from to to, clearing from and removing
// every enemy on the mover's path. Legality is checked by the caller.
func (b Board) ApplyMove(from, to Cell) Board {
	piece, ok := b.At(from)
	if !ok || !to.InBounds() {
		return b
	}
	next := b
	for _, c := range piece.Kind.movement().path(from, to) {
		if p, ok := next.At(c); ok && p.Owner != piece.Owner {
			next = next.without(c)
		}
	}
	return next.without(from).with(to, piece)
}

// MarshalJSON encodes the board as rows of cells, null for empty, which is
// the grid shape the client renders.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for row := range rows {
		rows[row] = make([]*Piece, BoardSize)
		for col := range rows[row] {
			if p := b.cells[row][col]; p.Owner != "" {
				rows[row][col] = &p
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("board has %d rows: %w", len(rows), ErrCellOutOfBounds)
	}
	placement := make(map[Cell]Piece)
	for row, cols := range rows {
		if len(cols) != BoardSize {
			return fmt.Errorf("row %d has %d cells: %w", row, len(cols), ErrCellOutOfBounds)
		}
		for col, p := range cols {
			if p != nil {
				placement[Cell{Row: row, Col: col}] = *p
			}
		}
	}
	next, err := NewBoard(placement)
	if err != nil {
		return err
	}
	*b = next
	return nil
}
