package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/herogrid-backend/internal/ws"
	"github.com/rs/zerolog/log"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Phase string

const (
	PhaseSetup Phase = "setup"
	PhasePlay  Phase = "play"
)

type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*client // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*client),
	}
}

func (gc *GameConnections) snapshot() map[string]*client {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	out := make(map[string]*client, len(gc.connections))
	for id, c := range gc.connections {
		out[id] = c
	}
	return out
}

// Game is one room: two seats, a setup grid and, once started, the engine
// that owns the board. Every room has its own engine.
type Game struct {
	ID          string
	Name        string
	mu          sync.Mutex
	phase       Phase
	setup       *Setup
	engine      *Engine
	host        *Participant
	guest       *Participant
	lastMove    *Ply
	connections *GameConnections
}

type GameState struct {
	ID          string   `json:"roomId"`
	Name        string   `json:"room"`
	Phase       Phase    `json:"phase"`
	Board       Board    `json:"board"`
	MoveHistory []string `json:"moveHistory"`
	Players     struct {
		Host  *ClientParticipant `json:"host"`
		Guest *ClientParticipant `json:"guest"`
	} `json:"players"`
	LastMove *Ply `json:"lastMove"`
}

// Inbound websocket payloads.
type WSPlace struct {
	Cell Cell      `json:"cell"`
	Kind PieceKind `json:"kind"`
}

type WSCell struct {
	Cell Cell `json:"cell"`
}

type WSMove = SimpleMove

func NewGame(id, name string) *Game {
	return &Game{
		ID:          id,
		Name:        name,
		phase:       PhaseSetup,
		setup:       NewSetup(),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats a player. The first becomes host, the second guest.
// Once play has started a vacated host seat stays empty: side A belongs to
// whoever set it up.
func (g *Game) AddPlayer(id, user string) (Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.participant(id) != nil {
		return "", fmt.Errorf("add %s: %w", user, ErrAlreadySeated)
	}
	if g.host == nil && g.phase == PhaseSetup {
		g.host = &Participant{ID: id, User: user, Role: RoleHost}
		return RoleHost, nil
	}
	if g.guest == nil {
		g.guest = &Participant{ID: id, User: user, Role: RoleGuest}
		return RoleGuest, nil
	}
	return "", ErrGameFull
}

// RemovePlayer frees the player's seat and returns how many remain.
func (g *Game) RemovePlayer(id string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.host != nil && g.host.ID == id {
		g.host = nil
	}
	if g.guest != nil && g.guest.ID == id {
		g.guest = nil
	}
	return g.playerCount()
}

func (g *Game) playerCount() int {
	n := 0
	if g.host != nil {
		n++
	}
	if g.guest != nil {
		n++
	}
	return n
}

func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerCount()
}

func (g *Game) participant(id string) *Participant {
	if g.host != nil && g.host.ID == id {
		return g.host
	}
	if g.guest != nil && g.guest.ID == id {
		return g.guest
	}
	return nil
}

func (g *Game) Participant(id string) (Participant, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.participant(id)
	if p == nil {
		return Participant{}, false
	}
	return *p, true
}

func (g *Game) Participants() []Participant {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Participant
	for _, p := range []*Participant{g.host, g.guest} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (g *Game) IsPlayerInGame(id string) bool {
	_, ok := g.Participant(id)
	return ok
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() GameState {
	s := GameState{
		ID:          g.ID,
		Name:        g.Name,
		Phase:       g.phase,
		MoveHistory: []string{},
		LastMove:    g.lastMove,
	}
	if g.engine != nil {
		s.Board = g.engine.Board()
		s.MoveHistory = g.engine.Notation()
	} else {
		s.Board = g.setup.Board()
	}
	if g.host != nil {
		c := g.host.Client()
		s.Players.Host = &c
	}
	if g.guest != nil {
		c := g.guest.Client()
		s.Players.Guest = &c
	}
	return s
}

// seat returns the side the player controls, or an error if it may not act
// in the given phase.
func (g *Game) seat(id string, phase Phase) (Player, error) {
	p := g.participant(id)
	if p == nil {
		return "", ErrNotInGame
	}
	if g.phase != phase {
		return "", fmt.Errorf("%s during %s: %w", phase, g.phase, ErrWrongPhase)
	}
	return p.Role.Side(), nil
}

// Place puts one of the player's own palette pieces on the setup grid.
func (g *Game) Place(id string, c Cell, kind PieceKind) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.seat(id, PhaseSetup)
	if err != nil {
		return err
	}
	return g.setup.Place(c, Piece{Owner: side, Kind: kind})
}

// Remove takes one of the player's own pieces back off the setup grid.
func (g *Game) Remove(id string, c Cell) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.seat(id, PhaseSetup)
	if err != nil {
		return err
	}
	p, ok := g.setup.At(c)
	if !ok {
		return nil
	}
	if p.Owner != side {
		return ErrNotYourPiece
	}
	g.setup.Remove(c)
	return nil
}

// Start ends setup. Each seat controls its own side from here on.
func (g *Game) Start(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.participant(id)
	if p == nil {
		return ErrNotInGame
	}
	if p.Role != RoleHost {
		return ErrNotHost
	}
	if g.phase != PhaseSetup {
		return fmt.Errorf("start during %s: %w", g.phase, ErrWrongPhase)
	}
	g.engine = NewEngine(g.setup.Board(), PlayerA, PlayerB)
	g.phase = PhasePlay
	return nil
}

// Select picks up a piece for the player. The bool is false when the cell
// does not hold one of the player's pieces; the selection is then cleared.
func (g *Game) Select(id string, c Cell) (Selection, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.seat(id, PhasePlay)
	if err != nil {
		return Selection{}, false, err
	}
	if !g.engine.Select(side, c) {
		return Selection{}, false, nil
	}
	sel, _ := g.engine.Selection(side)
	return sel, true, nil
}

// Click forwards one board click to the engine. It returns the resulting
// ply when the click confirmed a move, and the player's selection after it.
func (g *Game) Click(id string, c Cell) (*Ply, *Selection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.seat(id, PhasePlay)
	if err != nil {
		return nil, nil, err
	}
	ply, moved := g.engine.Click(side, c)
	if moved {
		g.lastMove = &ply
		return &ply, nil, nil
	}
	if sel, ok := g.engine.Selection(side); ok {
		return nil, &sel, nil
	}
	return nil, nil, nil
}

// MakeMove applies a relayed move for the player. Rejected moves return
// false and leave the board as it was.
func (g *Game) MakeMove(id string, move WSMove) (Ply, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.seat(id, PhasePlay)
	if err != nil {
		return Ply{}, false, err
	}
	ply, ok := g.engine.AttemptMove(side, move.From, move.To)
	if !ok {
		return Ply{}, false, nil
	}
	g.lastMove = &ply
	return ply, true, nil
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if old, exists := g.connections.connections[playerID]; exists {
		// The newest connection wins; a reload should not lock the player out.
		old.conn.Close()
	}
	g.connections.connections[playerID] = &client{conn: conn}
	g.connections.mu.Unlock()

	log.Debug().Str("gameId", g.ID).Str("playerId", playerID).Msg("Registered connection")
	return g.SendState(playerID)
}

// UnregisterConnection drops the player's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if c, exists := g.connections.connections[playerID]; exists && c.conn == conn {
		delete(g.connections.connections, playerID)
		log.Debug().Str("gameId", g.ID).Str("playerId", playerID).Msg("Unregistered connection")
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// Broadcast writes msg to every connected player. Connections that fail
// are dropped.
func (g *Game) Broadcast(msg ws.Message) {
	for playerID, c := range g.connections.snapshot() {
		if err := c.send(msg); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Str("playerId", playerID).Msg("Failed to send message")
			g.UnregisterConnection(playerID, c.conn)
		}
	}
}

// SendTo writes msg to one player. A player without a connection is skipped.
func (g *Game) SendTo(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	c, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := c.send(msg); err != nil {
		g.UnregisterConnection(playerID, c.conn)
		return fmt.Errorf("send to %s: %w", playerID, err)
	}
	return nil
}

func (g *Game) stateMessage() (ws.Message, error) {
	return ws.NewMessage(ws.MessageTypeGameState, g.GetState())
}

func (g *Game) BroadcastState() error {
	msg, err := g.stateMessage()
	if err != nil {
		return err
	}
	g.Broadcast(msg)
	return nil
}

func (g *Game) SendState(playerID string) error {
	msg, err := g.stateMessage()
	if err != nil {
		return err
	}
	return g.SendTo(playerID, msg)
}

func (g *Game) BroadcastMove(ply Ply) error {
	msg, err := ws.NewMessage(ws.MessageTypeMoveMade, ply)
	if err != nil {
		return err
	}
	g.Broadcast(msg)
	return g.BroadcastState()
}

// Close tells every connected player the room is gone and disconnects them.
func (g *Game) Close(reason string) {
	payload, _ := json.Marshal(ws.RoomClosedPayload{Message: reason})
	msg := ws.Message{Type: ws.MessageTypeRoomClosed, Payload: payload}

	g.connections.mu.Lock()
	conns := g.connections.connections
	g.connections.connections = make(map[string]*client)
	g.connections.mu.Unlock()

	for playerID, c := range conns {
		if err := c.send(msg); err != nil {
			log.Debug().Err(err).Str("gameId", g.ID).Str("playerId", playerID).Msg("Failed to notify room close")
		}
		c.conn.Close()
	}
}
