package service

import "errors"

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrUserExists   = errors.New("user already exists")
	ErrRoomNotFound = errors.New("room does not exist")
	ErrRoomFull     = errors.New("room is full")
	ErrInvalidName  = errors.New("user and room names are required")
)

// RoomClosedMessage is what participants are told when the host closes.
const RoomClosedMessage = "The room has been closed by the host."
