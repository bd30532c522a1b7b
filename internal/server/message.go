package server

import (
	"encoding/json"
	"time"

	"github.com/nmoreno/brisca/internal/deck"
	"github.com/nmoreno/brisca/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	Username   string `json:"username"`
	MaxPlayers int    `json:"max_players"`
}

type JoinRoomData struct {
	RoomID   string `json:"room_id"`
	Username string `json:"username"`
}

type LeaveRoomData struct {
	RoomID string `json:"room_id"`
}

type StartGameData struct {
	RoomID string `json:"room_id"`
}

type AddBotData struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type PlayCardData struct {
	RoomID string    `json:"room_id"`
	Card   deck.Card `json:"card"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	RoomID string        `json:"room_id"`
	Room   game.RoomInfo `json:"room"`
}

type RoomJoinedData struct {
	RoomID string        `json:"room_id"`
	Room   game.RoomInfo `json:"room"`
}

type RoomLeftData struct {
	RoomID string `json:"room_id"`
}

type RoomUpdateData struct {
	Room game.RoomInfo `json:"room"`
}

// RoomSummary holds lightweight room metadata for the lobby listing
type RoomSummary struct {
	ID          string    `json:"id"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	Started     bool      `json:"started"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoomListData struct {
	Rooms []RoomSummary `json:"rooms"`
}

// game_state messages carry a game.PublicState payload and private_state
// messages a game.PrivateState; both already define their wire shape
