package model

import "errors"

var (
	ErrCellOutOfBounds = errors.New("cell out of bounds")
	ErrCellOccupied    = errors.New("cell occupied")
	ErrUnknownPiece    = errors.New("unknown piece")
	ErrNotYourPiece    = errors.New("not your piece")
	ErrGameFull        = errors.New("game is full")
	ErrWrongPhase      = errors.New("wrong game phase")
	ErrNotHost         = errors.New("only the host can do that")
	ErrNotInGame       = errors.New("player not in game")
	ErrAlreadySeated   = errors.New("player already seated")
)
