package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/herogrid-backend/internal/model"
	"github.com/benbeisheim/herogrid-backend/internal/service"
	"github.com/benbeisheim/herogrid-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the read loop of one player's room connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("roomId")
	playerID := c.Locals("playerID").(string)
	logger := log.With().Str("gameId", gameID).Str("playerId", playerID).Logger()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn().Err(err).Msg("Failed to register connection")
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("Connection closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug().Err(err).Msg("Unparseable message")
			wsc.gameService.SendError(gameID, playerID, "invalid message")
			continue
		}

		if msg.Type == ws.MessageTypeClose {
			if err := wsc.gameService.CloseRoom(gameID, playerID); err != nil {
				wsc.gameService.SendError(gameID, playerID, err.Error())
				continue
			}
			c.Close()
			return
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("Message failed")
			wsc.gameService.SendError(gameID, playerID, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypePlace:
		var place model.WSPlace
		if err := json.Unmarshal(msg.Payload, &place); err != nil {
			return err
		}
		return wsc.gameService.Place(gameID, playerID, place)

	case ws.MessageTypeRemove:
		var cell model.WSCell
		if err := json.Unmarshal(msg.Payload, &cell); err != nil {
			return err
		}
		return wsc.gameService.Remove(gameID, playerID, cell.Cell)

	case ws.MessageTypeStart:
		return wsc.gameService.Start(gameID, playerID)

	case ws.MessageTypeSelect:
		var cell model.WSCell
		if err := json.Unmarshal(msg.Payload, &cell); err != nil {
			return err
		}
		return wsc.gameService.Select(gameID, playerID, cell.Cell)

	case ws.MessageTypeClick:
		var cell model.WSCell
		if err := json.Unmarshal(msg.Payload, &cell); err != nil {
			return err
		}
		return wsc.gameService.Click(gameID, playerID, cell.Cell)

	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits for the player's match and forwards it.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// Replaced by a newer matchmaking connection.
			c.Close()
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warn().Err(err).Str("playerId", playerID).Msg("Failed to send match")
		}
		c.Close()
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

// sendError writes straight to c; only for connections no game has
// registered yet.
func (wsc *WebSocketController) sendError(c model.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(msg)
}
