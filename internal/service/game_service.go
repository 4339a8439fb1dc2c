package service

import (
	"github.com/benbeisheim/herogrid-backend/internal/model"
	"github.com/benbeisheim/herogrid-backend/internal/ws"
	"github.com/rs/zerolog/log"
)

// GameService turns room commands into game transitions and relays the
// results to the room's connections.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateRoom(playerID, user, room string) (*model.Game, error) {
	return gs.gameManager.CreateRoom(playerID, user, room)
}

func (gs *GameService) JoinRoom(playerID, user, room string) (*model.Game, model.Role, error) {
	game, role, err := gs.gameManager.JoinRoom(playerID, user, room)
	if err != nil {
		return nil, "", err
	}
	gs.broadcastState(game)
	return game, role, nil
}

func (gs *GameService) CloseRoom(gameID, playerID string) error {
	return gs.gameManager.CloseRoom(playerID, gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) JoinMatchmaking(playerID, user string) error {
	return gs.gameManager.JoinMatchmaking(playerID, user)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) Place(gameID, playerID string, place model.WSPlace) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.Place(playerID, place.Cell, place.Kind); err != nil {
		return err
	}
	gs.broadcastState(game)
	return nil
}

func (gs *GameService) Remove(gameID, playerID string, cell model.Cell) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.Remove(playerID, cell); err != nil {
		return err
	}
	gs.broadcastState(game)
	return nil
}

func (gs *GameService) Start(gameID, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.Start(playerID); err != nil {
		return err
	}
	log.Info().Str("gameId", gameID).Msg("Game started")
	gs.broadcastState(game)
	return nil
}

// Select answers with the player's selection, or a null payload when the
// cell did not hold one of its pieces.
func (gs *GameService) Select(gameID, playerID string, cell model.Cell) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	sel, ok, err := game.Select(playerID, cell)
	if err != nil {
		return err
	}
	if !ok {
		return gs.sendSelection(game, playerID, nil)
	}
	return gs.sendSelection(game, playerID, &sel)
}

func (gs *GameService) Click(gameID, playerID string, cell model.Cell) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	ply, sel, err := game.Click(playerID, cell)
	if err != nil {
		return err
	}
	if ply != nil {
		gs.relayMove(game, playerID, *ply)
		return nil
	}
	return gs.sendSelection(game, playerID, sel)
}

// HandleMove applies a move. A rejected move is not an error: the sender
// just gets the unchanged state back.
func (gs *GameService) HandleMove(gameID, playerID string, move model.WSMove) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	ply, ok, err := game.MakeMove(playerID, move)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug().Str("gameId", gameID).Str("playerId", playerID).
			Stringer("from", move.From).Stringer("to", move.To).Msg("Move rejected")
		return game.SendState(playerID)
	}
	gs.relayMove(game, playerID, ply)
	return nil
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

// SendError reports a failed command to the player that sent it.
func (gs *GameService) SendError(gameID, playerID, errorMsg string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	if err := game.SendTo(playerID, msg); err != nil {
		log.Debug().Err(err).Str("gameId", gameID).Str("playerId", playerID).Msg("Failed to send error")
	}
}

func (gs *GameService) relayMove(game *model.Game, playerID string, ply model.Ply) {
	log.Info().Str("gameId", game.ID).Str("playerId", playerID).
		Str("move", ply.Record.String()).Int("captured", len(ply.Captured)).Msg("Move applied")
	if err := game.BroadcastMove(ply); err != nil {
		log.Error().Err(err).Str("gameId", game.ID).Msg("Failed to broadcast move")
	}
}

func (gs *GameService) broadcastState(game *model.Game) {
	if err := game.BroadcastState(); err != nil {
		log.Error().Err(err).Str("gameId", game.ID).Msg("Failed to broadcast state")
	}
}

func (gs *GameService) sendSelection(game *model.Game, playerID string, sel *model.Selection) error {
	msg, err := ws.NewMessage(ws.MessageTypeSelection, sel)
	if err != nil {
		return err
	}
	return game.SendTo(playerID, msg)
}
