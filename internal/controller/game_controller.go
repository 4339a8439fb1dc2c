package controller

import (
	"errors"

	"github.com/benbeisheim/herogrid-backend/internal/model"
	"github.com/benbeisheim/herogrid-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type roomRequest struct {
	User string `json:"user"`
	Room string `json:"room"`
}

func (gc *GameController) CreateRoom(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	playerID := c.Locals("playerID").(string)

	game, err := gc.gameService.CreateRoom(playerID, req.User, req.Room)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Room created",
		"room":    game.ID,
		"role":    model.RoleHost,
	})
}

func (gc *GameController) JoinRoom(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	playerID := c.Locals("playerID").(string)

	game, role, err := gc.gameService.JoinRoom(playerID, req.User, req.Room)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Room joined",
		"room":    game.ID,
		"role":    role,
	})
}

func (gc *GameController) CloseRoom(c *fiber.Ctx) error {
	gameID := c.Params("roomId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.CloseRoom(gameID, playerID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Room closed",
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("roomId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID, req.User); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	if !gc.gameService.LeaveMatchmaking(playerID) {
		return errorJSON(c, fiber.StatusNotFound, "not in matchmaking")
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

// statusFor maps service and model errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrRoomExists),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrAlreadySeated),
		errors.Is(err, model.ErrCellOccupied),
		errors.Is(err, model.ErrWrongPhase):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotInGame),
		errors.Is(err, model.ErrNotHost),
		errors.Is(err, model.ErrNotYourPiece):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, model.ErrCellOutOfBounds),
		errors.Is(err, model.ErrUnknownPiece):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return errorJSON(c, status, "internal error")
	}
	return errorJSON(c, status, err.Error())
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
