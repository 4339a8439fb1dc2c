package model

// MoveResult is the outcome of an accepted move: the next board and what
// it cost the opponent.
type MoveResult struct {
	Board    Board
	Record   MoveRecord
	Captured []CapturedPiece
}

// LegalMoves returns the cells the piece on origin may move to. Candidates
// must be on the board and not hold a piece of the mover's own side.
func LegalMoves(b Board, origin Cell) []Cell {
	piece, ok := b.At(origin)
	if !ok {
		return []Cell{}
	}
	moves := []Cell{}
	for _, d := range piece.Kind.movement().deltas() {
		target := origin.Add(d)
		if !target.InBounds() {
			continue
		}
		if occupant, ok := b.At(target); ok && occupant.Owner == piece.Owner {
			continue
		}
		moves = append(moves, target)
	}
	return moves
}

func IsLegalMove(b Board, from, to Cell) bool {
	for _, c := range LegalMoves(b, from) {
		if c == to {
			return true
		}
	}
	return false
}

// AttemptMove validates and applies a move. It reports false, leaving b
// untouched, when to is not a legal destination or an ally sits on the
// mover's path.
func AttemptMove(b Board, from, to Cell) (MoveResult, bool) {
	if !IsLegalMove(b, from, to) {
		return MoveResult{}, false
	}
	piece, _ := b.At(from)

	captured := []CapturedPiece{}
	for _, c := range piece.Kind.movement().path(from, to) {
		occupant, ok := b.At(c)
		if !ok {
			continue
		}
		if occupant.Owner == piece.Owner {
			return MoveResult{}, false
		}
		captured = append(captured, CapturedPiece{Piece: occupant, Cell: c})
	}
	if occupant, ok := b.At(to); ok {
		captured = append(captured, CapturedPiece{Piece: occupant, Cell: to})
	}

	return MoveResult{
		Board:    b.ApplyMove(from, to),
		Record:   EncodeMove(piece.Kind, from, to),
		Captured: captured,
	}, true
}
