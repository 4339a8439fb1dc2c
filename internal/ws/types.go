package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

// Client to server.
const (
	MessageTypePlace  MessageType = "place"
	MessageTypeRemove MessageType = "remove"
	MessageTypeStart  MessageType = "start"
	MessageTypeSelect MessageType = "select"
	MessageTypeClick  MessageType = "click"
	MessageTypeMove   MessageType = "move"
	MessageTypeClose  MessageType = "close"
)

// Server to client.
const (
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeSelection  MessageType = "selection"
	MessageTypeMoveMade   MessageType = "moveMade"
	MessageTypeRoomClosed MessageType = "roomClosed"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type RoomClosedPayload struct {
	Message string `json:"message"`
}
