package model

import "fmt"

// Palette is the set of pieces a side places during setup. Placing a
// palette piece does not use it up.
func Palette(side Player) []Piece {
	pieces := make([]Piece, 0, len(Kinds))
	for _, k := range Kinds {
		pieces = append(pieces, Piece{Owner: side, Kind: k})
	}
	return pieces
}

// Setup is the placement grid built before play starts.
type Setup struct {
	placement map[Cell]Piece
}

func NewSetup() *Setup {
	return &Setup{placement: make(map[Cell]Piece)}
}

func (s *Setup) Place(c Cell, p Piece) error {
	if !c.InBounds() {
		return fmt.Errorf("place at %s: %w", c, ErrCellOutOfBounds)
	}
	if !p.Valid() {
		return fmt.Errorf("place %s: %w", p, ErrUnknownPiece)
	}
	if _, ok := s.placement[c]; ok {
		return fmt.Errorf("place at %s: %w", c, ErrCellOccupied)
	}
	s.placement[c] = p
	return nil
}

// Remove clears c and reports whether it held a piece.
func (s *Setup) Remove(c Cell) bool {
	if _, ok := s.placement[c]; !ok {
		return false
	}
	delete(s.placement, c)
	return true
}

func (s *Setup) At(c Cell) (Piece, bool) {
	p, ok := s.placement[c]
	return p, ok
}

func (s *Setup) Len() int {
	return len(s.placement)
}

// Board freezes the placement. Place already rejected anything NewBoard
// would, so the error is impossible here.
func (s *Setup) Board() Board {
	b, _ := NewBoard(s.placement)
	return b
}
