package model

import "encoding/json"

// Direction is the axis-relative heading of a move, used only for history.
type Direction string

const (
	Forward       Direction = "F"
	Backward      Direction = "B"
	Left          Direction = "L"
	Right         Direction = "R"
	ForwardLeft   Direction = "FL"
	ForwardRight  Direction = "FR"
	BackwardLeft  Direction = "BL"
	BackwardRight Direction = "BR"
)

// MoveRecord is one history entry, written "{kind}:{direction}".
type MoveRecord struct {
	Kind      PieceKind `json:"kind"`
	Direction Direction `json:"direction"`
}

func EncodeMove(kind PieceKind, from, to Cell) MoveRecord {
	return MoveRecord{
		Kind:      kind,
		Direction: kind.movement().direction(from, to),
	}
}

func (r MoveRecord) String() string {
	return string(r.Kind) + ":" + string(r.Direction)
}

func (r MoveRecord) MarshalJSON() ([]byte, error) {
	type record MoveRecord
	return json.Marshal(struct {
		record
		Notation string `json:"notation"`
	}{record(r), r.String()})
}

type CapturedPiece struct {
	Piece Piece `json:"piece"`
	Cell  Cell  `json:"cell"`
}

// Ply is a confirmed move as broadcast to the room.
type Ply struct {
	Side     Player          `json:"side"`
	From     Cell            `json:"from"`
	To       Cell            `json:"to"`
	Record   MoveRecord      `json:"record"`
	Captured []CapturedPiece `json:"captured"`
}

type SimpleMove struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

// History is the append-only move log. It is never read back to rebuild a
// board.
type History struct {
	records []MoveRecord
}

func (h *History) Append(r MoveRecord) {
	h.records = append(h.records, r)
}

func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of the log in submission order.
func (h *History) Records() []MoveRecord {
	out := make([]MoveRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *History) Notation() []string {
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.String()
	}
	return out
}
