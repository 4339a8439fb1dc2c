package model

// Selection is the piece a side has picked up together with the cells it
// may move to.
type Selection struct {
	Piece   Piece  `json:"piece"`
	Origin  Cell   `json:"origin"`
	Targets []Cell `json:"targets"`
}

func (s Selection) allows(c Cell) bool {
	for _, t := range s.Targets {
		if t == c {
			return true
		}
	}
	return false
}

// Engine drives play on a single board: selection, move confirmation and
// history. It is per-session state and is not safe for concurrent use; the
// owner serializes calls.
//
// Only controller sides may select pieces. A local engine controls side A
// alone; a relayed room controls both sides, one per connected client.
type Engine struct {
	board       Board
	history     History
	controllers map[Player]bool
	selections  map[Player]Selection
}

// NewEngine starts play on b. With no controllers given only side A is
// selectable.
func NewEngine(b Board, controllers ...Player) *Engine {
	if len(controllers) == 0 {
		controllers = []Player{PlayerA}
	}
	e := &Engine{
		board:       b,
		controllers: make(map[Player]bool),
		selections:  make(map[Player]Selection),
	}
	for _, p := range controllers {
		if p.Valid() {
			e.controllers[p] = true
		}
	}
	return e
}

func (e *Engine) Board() Board {
	return e.board
}

func (e *Engine) History() []MoveRecord {
	return e.history.Records()
}

func (e *Engine) Notation() []string {
	return e.history.Notation()
}

func (e *Engine) LegalMoves(origin Cell) []Cell {
	return LegalMoves(e.board, origin)
}

func (e *Engine) Selection(side Player) (Selection, bool) {
	s, ok := e.selections[side]
	return s, ok
}

func (e *Engine) Controls(side Player) bool {
	return e.controllers[side]
}

// Select picks up the piece on c for side. Anything other than one of the
// side's own pieces clears the selection instead.
func (e *Engine) Select(side Player, c Cell) bool {
	delete(e.selections, side)
	piece, ok := e.board.At(c)
	if !ok || !e.controllers[side] || piece.Owner != side {
		return false
	}
	e.selections[side] = Selection{
		Piece:   piece,
		Origin:  c,
		Targets: LegalMoves(e.board, c),
	}
	return true
}

// Deselect drops side's selection without touching the board.
func (e *Engine) Deselect(side Player) {
	delete(e.selections, side)
}

// Click is a single board interaction. With nothing selected it selects.
// With a selection, a legal target confirms the move; another own piece
// re-selects; any other cell deselects.
func (e *Engine) Click(side Player, c Cell) (Ply, bool) {
	sel, ok := e.selections[side]
	if !ok {
		e.Select(side, c)
		return Ply{}, false
	}
	if sel.allows(c) {
		return e.AttemptMove(side, sel.Origin, c)
	}
	if p, ok := e.board.At(c); ok && p.Owner == side && c != sel.Origin {
		e.Select(side, c)
		return Ply{}, false
	}
	e.Deselect(side)
	return Ply{}, false
}

// AttemptMove confirms a move for side. A rejected move changes nothing
// except dropping side's selection.
func (e *Engine) AttemptMove(side Player, from, to Cell) (Ply, bool) {
	delete(e.selections, side)
	piece, ok := e.board.At(from)
	if !ok || !e.controllers[side] || piece.Owner != side {
		return Ply{}, false
	}
	res, ok := AttemptMove(e.board, from, to)
	if !ok {
		return Ply{}, false
	}
	e.board = res.Board
	e.history.Append(res.Record)
	// Targets held by the other side were computed against the old board.
	clear(e.selections)
	return Ply{
		Side:     side,
		From:     from,
		To:       to,
		Record:   res.Record,
		Captured: res.Captured,
	}, true
}
