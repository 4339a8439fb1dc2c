// service/game_manager.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/herogrid-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GameManager is the room registry: rooms by id and by name, the players
// seated in them, and the matchmaking queue.
type GameManager struct {
	games            map[string]*model.Game
	roomIDs          map[string]string // room name -> game id
	users            map[string]string // player id -> user name
	seats            map[string]string // player id -> game id
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
	newID            func() string
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		roomIDs:          make(map[string]string),
		users:            make(map[string]string),
		seats:            make(map[string]string),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		newID:            newRoomID,
	}
}

func newRoomID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func validName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// inRoom reports whether the player is seated or user is already used by
// someone seated. Callers hold gm.mu.
func (gm *GameManager) inRoom(playerID, user string) bool {
	if _, seated := gm.seats[playerID]; seated {
		return true
	}
	for _, u := range gm.users {
		if u == user {
			return true
		}
	}
	return false
}

// userTaken extends inRoom to players waiting for a match. Callers hold
// gm.mu.
func (gm *GameManager) userTaken(playerID, user string) bool {
	return gm.inRoom(playerID, user) || gm.queue.Contains(playerID) || gm.queue.ContainsUser(user)
}

func (gm *GameManager) seat(game *model.Game, playerID, user string) (model.Role, error) {
	role, err := game.AddPlayer(playerID, user)
	if err != nil {
		return "", err
	}
	gm.users[playerID] = user
	gm.seats[playerID] = game.ID
	return role, nil
}

// CreateRoom opens a room named room with the caller as host.
func (gm *GameManager) CreateRoom(playerID, user, room string) (*model.Game, error) {
	if !validName(user) || !validName(room) {
		return nil, ErrInvalidName
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.roomIDs[room]; exists {
		return nil, ErrRoomExists
	}
	if gm.userTaken(playerID, user) {
		return nil, ErrUserExists
	}

	game := model.NewGame(gm.newID(), room)
	if _, err := gm.seat(game, playerID, user); err != nil {
		return nil, err
	}
	gm.games[game.ID] = game
	gm.roomIDs[room] = game.ID

	log.Info().Str("gameId", game.ID).Str("room", room).Str("user", user).Msg("Room created")
	return game, nil
}

// JoinRoom seats the caller as guest of the room named room.
func (gm *GameManager) JoinRoom(playerID, user, room string) (*model.Game, model.Role, error) {
	if !validName(user) || !validName(room) {
		return nil, "", ErrInvalidName
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.userTaken(playerID, user) {
		return nil, "", ErrUserExists
	}
	id, exists := gm.roomIDs[room]
	game := gm.games[id]
	if !exists || game == nil {
		return nil, "", ErrRoomNotFound
	}
	if game.PlayerCount() >= 2 {
		return nil, "", ErrRoomFull
	}

	role, err := gm.seat(game, playerID, user)
	if errors.Is(err, model.ErrGameFull) {
		return nil, "", ErrRoomFull
	}
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("gameId", game.ID).Str("room", room).Str("user", user).Msg("Room joined")
	return game, role, nil
}

// CloseRoom closes the room when the caller hosts it; a guest just leaves.
func (gm *GameManager) CloseRoom(playerID, gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	p, ok := game.Participant(playerID)
	if !ok {
		return model.ErrNotInGame
	}
	if p.Role == model.RoleHost {
		gm.deleteRoom(gameID)
		return nil
	}
	gm.LeaveRoom(playerID)
	return nil
}

// LeaveRoom frees the caller's seat. The last one out deletes the room.
func (gm *GameManager) LeaveRoom(playerID string) {
	gm.mu.Lock()
	gameID, seated := gm.seats[playerID]
	game := gm.games[gameID]
	delete(gm.seats, playerID)
	delete(gm.users, playerID)
	gm.mu.Unlock()

	if !seated || game == nil {
		return
	}
	remaining := game.RemovePlayer(playerID)
	log.Info().Str("gameId", gameID).Str("playerId", playerID).Int("remaining", remaining).Msg("Player left room")
	if remaining == 0 {
		gm.deleteRoom(gameID)
		return
	}
	if err := game.BroadcastState(); err != nil {
		log.Error().Err(err).Str("gameId", gameID).Msg("Failed to broadcast state")
	}
}

func (gm *GameManager) deleteRoom(gameID string) {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return
	}
	for _, p := range game.Participants() {
		delete(gm.seats, p.ID)
		delete(gm.users, p.ID)
	}
	delete(gm.roomIDs, game.Name)
	delete(gm.games, gameID)
	gm.mu.Unlock()

	game.Close(RoomClosedMessage)
	log.Info().Str("gameId", gameID).Str("room", game.Name).Msg("Room closed")
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return game, nil
}

func (gm *GameManager) RoomCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) JoinMatchmaking(playerID, user string) error {
	if !validName(user) {
		return ErrInvalidName
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.queue.Contains(playerID) {
		return fmt.Errorf("join matchmaking: %w", model.ErrAlreadyQueued)
	}
	if gm.userTaken(playerID, user) {
		return ErrUserExists
	}
	if err := gm.queue.AddPlayer(playerID, user); err != nil {
		return fmt.Errorf("join matchmaking: %w", err)
	}
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets ch without closing it; the
// registering side owns the channel.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.MatchOnce() {
			}
		}
	}
}

// MatchOnce pairs the two longest-waiting players into a new room. It
// reports whether the queue changed, so callers can loop until it is false.
func (gm *GameManager) MatchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	host, guest, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	// Entries that got a seat or lost their name while waiting are dropped;
	// a valid partner keeps its place at the head of the queue.
	pair := make([]model.QueuedPlayer, 0, 2)
	for _, p := range []model.QueuedPlayer{host, guest} {
		if gm.inRoom(p.ID, p.User) || (len(pair) == 1 && pair[0].User == p.User) {
			log.Warn().Str("playerId", p.ID).Str("user", p.User).Msg("Dropping stale matchmaking entry")
			gm.dropMatchmakingChannel(p.ID)
			continue
		}
		pair = append(pair, p)
	}
	if len(pair) < 2 {
		for _, p := range pair {
			gm.queue.Requeue(p)
		}
		return true
	}
	host, guest = pair[0], pair[1]

	game := model.NewGame(gm.newID(), "")
	game.Name = "match-" + game.ID
	for _, p := range []model.QueuedPlayer{host, guest} {
		role, err := gm.seat(game, p.ID, p.User)
		if err != nil {
			log.Error().Err(err).Str("playerId", p.ID).Msg("Failed to seat matched player")
			continue
		}
		gm.sendMatchFound(p.ID, model.MatchFoundEvent{GameID: game.ID, Room: game.Name, Role: role})
	}
	gm.games[game.ID] = game
	gm.roomIDs[game.Name] = game.ID

	log.Info().Str("gameId", game.ID).Str("host", host.User).Str("guest", guest.User).Msg("Match found")
	return true
}

// dropMatchmakingChannel closes the player's channel without a match.
// Callers hold gm.mu.
func (gm *GameManager) dropMatchmakingChannel(playerID string) {
	if ch, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(ch)
	}
}

// sendMatchFound hands the event to the player's channel, if any, and then
// closes it. Callers hold gm.mu.
func (gm *GameManager) sendMatchFound(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- mustJSON(event):
	default:
		log.Warn().Str("playerId", playerID).Msg("Matchmaking channel not ready")
	}
	close(ch)
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}
