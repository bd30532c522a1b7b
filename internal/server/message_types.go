package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for the client-server room protocol
const (
	// Client to server messages
	MessageTypeCreateRoom MessageType = "create_room"
	MessageTypeJoinRoom   MessageType = "join_room"
	MessageTypeLeaveRoom  MessageType = "leave_room"
	MessageTypeListRooms  MessageType = "list_rooms"
	MessageTypeStartGame  MessageType = "start_game"
	MessageTypeAddBot     MessageType = "add_bot"
	MessageTypePlayCard   MessageType = "play_card"

	// Server to client messages
	MessageTypeError        MessageType = "error"
	MessageTypeRoomCreated  MessageType = "room_created"
	MessageTypeRoomJoined   MessageType = "room_joined"
	MessageTypeRoomLeft     MessageType = "room_left"
	MessageTypeRoomUpdate   MessageType = "room_update"
	MessageTypeRoomList     MessageType = "room_list"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypePrivateState MessageType = "private_state"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
