package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, controllers ...Player) *Engine {
	t.Helper()
	return NewEngine(mustBoard(t, map[Cell]Piece{
		{Row: 4, Col: 0}: {Owner: PlayerA, Kind: P1},
		{Row: 4, Col: 2}: {Owner: PlayerA, Kind: H1},
		{Row: 4, Col: 4}: {Owner: PlayerA, Kind: H2},
		{Row: 3, Col: 2}: {Owner: PlayerA, Kind: P2},
		{Row: 3, Col: 3}: {Owner: PlayerB, Kind: P3},
		{Row: 0, Col: 0}: {Owner: PlayerB, Kind: P1},
	}), controllers...)
}

func TestEngineDefaultsToSideA(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.Controls(PlayerA))
	require.False(t, e.Controls(PlayerB))

	require.False(t, e.Select(PlayerB, Cell{Row: 0, Col: 0}))
	_, ok := e.Selection(PlayerB)
	require.False(t, ok)

	_, ok = e.AttemptMove(PlayerB, Cell{Row: 0, Col: 0}, Cell{Row: 1, Col: 0})
	require.False(t, ok)
	require.Empty(t, e.History())
}

func TestEngineSelect(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.Select(PlayerA, Cell{Row: 4, Col: 0}))
	sel, ok := e.Selection(PlayerA)
	require.True(t, ok)
	require.Equal(t, Piece{Owner: PlayerA, Kind: P1}, sel.Piece)
	require.Equal(t, Cell{Row: 4, Col: 0}, sel.Origin)
	require.ElementsMatch(t, []Cell{{3, 0}, {4, 1}}, sel.Targets)

	// Enemy piece, empty cell and off-board all leave nothing selected.
	for _, c := range []Cell{{3, 3}, {2, 2}, {7, 7}} {
		require.True(t, e.Select(PlayerA, Cell{Row: 4, Col: 0}))
		require.False(t, e.Select(PlayerA, c))
		_, ok := e.Selection(PlayerA)
		require.False(t, ok, "select %s", c)
	}
}

func TestEngineClickMoves(t *testing.T) {
	e := newTestEngine(t)
	before := e.Board()

	_, moved := e.Click(PlayerA, Cell{Row: 4, Col: 0})
	require.False(t, moved)
	_, ok := e.Selection(PlayerA)
	require.True(t, ok)

	ply, moved := e.Click(PlayerA, Cell{Row: 3, Col: 0})
	require.True(t, moved)
	require.Equal(t, PlayerA, ply.Side)
	require.Equal(t, "P1:F", ply.Record.String())
	require.Empty(t, ply.Captured)

	_, ok = e.Selection(PlayerA)
	require.False(t, ok, "a confirmed move returns to idle")
	require.NotEqual(t, before, e.Board())
	require.Equal(t, []string{"P1:F"}, e.Notation())
}

func TestEngineClickInvalidTargetDeselects(t *testing.T) {
	e := newTestEngine(t)
	before := e.Board()

	e.Click(PlayerA, Cell{Row: 4, Col: 0})
	_, moved := e.Click(PlayerA, Cell{Row: 0, Col: 4})
	require.False(t, moved)
	_, ok := e.Selection(PlayerA)
	require.False(t, ok)
	require.Equal(t, before, e.Board())
	require.Empty(t, e.History())
}

func TestEngineClickOriginDeselects(t *testing.T) {
	e := newTestEngine(t)
	e.Click(PlayerA, Cell{Row: 4, Col: 0})
	e.Click(PlayerA, Cell{Row: 4, Col: 0})
	_, ok := e.Selection(PlayerA)
	require.False(t, ok)
}

func TestEngineDeselect(t *testing.T) {
	e := newTestEngine(t)
	before := e.Board()
	require.True(t, e.Select(PlayerA, Cell{Row: 4, Col: 2}))

	e.Deselect(PlayerA)
	_, ok := e.Selection(PlayerA)
	require.False(t, ok)
	require.Equal(t, before, e.Board())

	// With nothing selected the next click selects again.
	e.Click(PlayerA, Cell{Row: 4, Col: 0})
	sel, ok := e.Selection(PlayerA)
	require.True(t, ok)
	require.Equal(t, Cell{Row: 4, Col: 0}, sel.Origin)
}

func TestEngineClickOwnPieceReselects(t *testing.T) {
	e := newTestEngine(t)

	e.Click(PlayerA, Cell{Row: 4, Col: 0})
	_, moved := e.Click(PlayerA, Cell{Row: 4, Col: 4})
	require.False(t, moved)

	sel, ok := e.Selection(PlayerA)
	require.True(t, ok)
	require.Equal(t, H2, sel.Piece.Kind)
	require.ElementsMatch(t, []Cell{{2, 2}}, sel.Targets)
}

func TestEngineClickAllyBlockedHero(t *testing.T) {
	e := newTestEngine(t)
	before := e.Board()

	// H1 on (4,2) may target (2,2), but its own P2 sits on (3,2).
	e.Click(PlayerA, Cell{Row: 4, Col: 2})
	sel, _ := e.Selection(PlayerA)
	require.Contains(t, sel.Targets, Cell{Row: 2, Col: 2})

	_, moved := e.Click(PlayerA, Cell{Row: 2, Col: 2})
	require.False(t, moved)
	_, ok := e.Selection(PlayerA)
	require.False(t, ok)
	require.Equal(t, before, e.Board())
	require.Empty(t, e.History())
}

func TestEngineHeroCaptureThroughClick(t *testing.T) {
	e := newTestEngine(t)

	e.Click(PlayerA, Cell{Row: 4, Col: 4})
	ply, moved := e.Click(PlayerA, Cell{Row: 2, Col: 2})
	require.True(t, moved)
	require.Equal(t, "H2:FL", ply.Record.String())
	require.Equal(t, []CapturedPiece{{Piece: Piece{Owner: PlayerB, Kind: P3}, Cell: Cell{Row: 3, Col: 3}}}, ply.Captured)
	require.Equal(t, 1, e.Board().Count(PlayerB))
}

func TestEngineHistoryCountsOnlyConfirmedMoves(t *testing.T) {
	e := newTestEngine(t)

	moves := []struct {
		from, to Cell
		ok       bool
	}{
		{Cell{Row: 4, Col: 0}, Cell{Row: 3, Col: 0}, true},
		{Cell{Row: 3, Col: 0}, Cell{Row: 1, Col: 0}, false},
		{Cell{Row: 3, Col: 0}, Cell{Row: 2, Col: 0}, true},
		{Cell{Row: 4, Col: 2}, Cell{Row: 2, Col: 2}, false},
		{Cell{Row: 3, Col: 2}, Cell{Row: 3, Col: 1}, true},
		{Cell{Row: 4, Col: 2}, Cell{Row: 2, Col: 2}, true},
	}
	for i, m := range moves {
		_, ok := e.AttemptMove(PlayerA, m.from, m.to)
		require.Equal(t, m.ok, ok, "move %d", i)
	}
	require.Equal(t, []string{"P1:F", "P1:F", "P2:L", "H1:F"}, e.Notation())
	require.Len(t, e.History(), 4)
}

func TestEngineSidesSelectIndependently(t *testing.T) {
	e := newTestEngine(t, PlayerA, PlayerB)

	require.True(t, e.Select(PlayerA, Cell{Row: 4, Col: 0}))
	require.True(t, e.Select(PlayerB, Cell{Row: 0, Col: 0}))
	require.False(t, e.Select(PlayerA, Cell{Row: 0, Col: 0}), "A may not pick up B's piece")

	require.True(t, e.Select(PlayerA, Cell{Row: 4, Col: 0}))
	_, moved := e.Click(PlayerB, Cell{Row: 1, Col: 0})
	require.True(t, moved)

	_, ok := e.Selection(PlayerA)
	require.False(t, ok, "a move clears stale selections")
}
