package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAxialDirections(t *testing.T) {
	from := Cell{Row: 2, Col: 2}
	tests := []struct {
		to   Cell
		want Direction
	}{
		{Cell{Row: 1, Col: 2}, Forward},
		{Cell{Row: 3, Col: 2}, Backward},
		{Cell{Row: 2, Col: 1}, Left},
		{Cell{Row: 2, Col: 3}, Right},
	}
	for _, kind := range []PieceKind{P1, P2, P3} {
		for _, tt := range tests {
			r := EncodeMove(kind, from, tt.to)
			require.Equal(t, tt.want, r.Direction)
			require.NotEmpty(t, r.Direction)
			require.Equal(t, string(kind)+":"+string(tt.want), r.String())
		}
	}
}

func TestH1Directions(t *testing.T) {
	from := Cell{Row: 2, Col: 2}
	require.Equal(t, "H1:F", EncodeMove(H1, from, Cell{Row: 0, Col: 2}).String())
	require.Equal(t, "H1:B", EncodeMove(H1, from, Cell{Row: 4, Col: 2}).String())
	require.Equal(t, "H1:L", EncodeMove(H1, from, Cell{Row: 2, Col: 0}).String())
	require.Equal(t, "H1:R", EncodeMove(H1, from, Cell{Row: 2, Col: 4}).String())
}

func TestH2Directions(t *testing.T) {
	from := Cell{Row: 2, Col: 2}
	require.Equal(t, "H2:FL", EncodeMove(H2, from, Cell{Row: 0, Col: 0}).String())
	require.Equal(t, "H2:FR", EncodeMove(H2, from, Cell{Row: 0, Col: 4}).String())
	require.Equal(t, "H2:BL", EncodeMove(H2, from, Cell{Row: 4, Col: 0}).String())
	require.Equal(t, "H2:BR", EncodeMove(H2, from, Cell{Row: 4, Col: 4}).String())
}

func TestUnknownKindHasNoDirection(t *testing.T) {
	r := EncodeMove(PieceKind("K"), Cell{Row: 2, Col: 2}, Cell{Row: 1, Col: 2})
	require.Empty(t, r.Direction)
}

func TestHistoryAppendOnly(t *testing.T) {
	var h History
	require.Equal(t, 0, h.Len())

	h.Append(MoveRecord{Kind: P1, Direction: Forward})
	h.Append(MoveRecord{Kind: H2, Direction: BackwardLeft})

	records := h.Records()
	require.Equal(t, []MoveRecord{{P1, Forward}, {H2, BackwardLeft}}, records)
	require.Equal(t, []string{"P1:F", "H2:BL"}, h.Notation())

	records[0] = MoveRecord{Kind: H1, Direction: Right}
	require.Equal(t, "P1:F", h.Notation()[0], "Records must return a copy")
}

func TestMoveRecordJSON(t *testing.T) {
	data, err := json.Marshal(MoveRecord{Kind: H1, Direction: Left})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"H1","direction":"L","notation":"H1:L"}`, string(data))

	var back MoveRecord
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, MoveRecord{Kind: H1, Direction: Left}, back)
}
