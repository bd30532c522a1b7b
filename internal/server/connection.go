package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/nmoreno/brisca/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// Connection represents a WebSocket connection to a client. The connection
// id doubles as the opaque player identifier inside rooms.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	id        string
	roomID    string
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, id string, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		id:     id,
		server: server,
		logger: logger.WithPrefix("conn").With("conn", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// ID returns the connection's opaque identifier
func (c *Connection) ID() string {
	return c.id
}

// Room returns the id of the room this connection is in, if any
func (c *Connection) Room() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client. Malformed
// payloads are normalized to a rejection error, never a fault.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create room data")
			return
		}
		c.handleCreateRoom(data)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		var data LeaveRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave room data")
			return
		}
		c.handleLeaveRoom(data)

	case MessageTypeListRooms:
		c.handleListRooms()

	case MessageTypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start game data")
			return
		}
		c.handleStartGame(data)

	case MessageTypeAddBot:
		var data AddBotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse add bot data")
			return
		}
		c.handleAddBot(data)

	case MessageTypePlayCard:
		var data PlayCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse play card data")
			return
		}
		c.handlePlayCard(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the requesting client only
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

// errorCode maps game errors onto stable wire codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrRoomFull):
		return "room_full"
	case errors.Is(err, game.ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, game.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, game.ErrNotStarted):
		return "not_started"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, game.ErrPlayerNotInRoom):
		return "player_not_in_room"
	default:
		return "request_failed"
	}
}

// room resolves the room a request targets, preferring the explicit id and
// falling back to the connection's current room
func (c *Connection) room(roomID string) (*game.Room, bool) {
	if roomID == "" {
		roomID = c.Room()
	}
	if roomID == "" {
		return nil, false
	}
	return c.server.registry.Get(roomID)
}

func (c *Connection) handleCreateRoom(data CreateRoomData) {
	c.logger.Info("create room request", "username", data.Username, "max_players", data.MaxPlayers)

	if c.Room() != "" {
		c.sendError("already_in_room", "Leave the current room first")
		return
	}

	name := data.Username
	if name == "" {
		name = "Player"
	}

	room := c.server.registry.CreateRoom(data.MaxPlayers)
	if _, err := room.AddPlayer(c.id, name); err != nil {
		c.server.registry.Remove(room.ID())
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.SetRoom(room.ID())

	response, _ := NewMessage(MessageTypeRoomCreated, RoomCreatedData{
		RoomID: room.ID(),
		Room:   room.Info(),
	})
	_ = c.SendMessage(response) // Ignore send errors
	c.server.broadcastRoomUpdate(room)
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("join room request", "room", data.RoomID, "username", data.Username)

	if c.Room() != "" {
		c.sendError("already_in_room", "Leave the current room first")
		return
	}

	room, ok := c.server.registry.Get(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found")
		return
	}

	name := data.Username
	if name == "" {
		name = "Player"
	}

	if _, err := room.AddPlayer(c.id, name); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.SetRoom(room.ID())

	response, _ := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID: room.ID(),
		Room:   room.Info(),
	})
	_ = c.SendMessage(response) // Ignore send errors
	c.server.broadcastRoomUpdate(room)
}

func (c *Connection) handleLeaveRoom(data LeaveRoomData) {
	c.logger.Info("leave room request", "room", data.RoomID)

	room, ok := c.room(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found")
		return
	}

	changed := room.RemovePlayerByID(c.id)
	c.SetRoom("")

	response, _ := NewMessage(MessageTypeRoomLeft, RoomLeftData{RoomID: room.ID()})
	_ = c.SendMessage(response) // Ignore send errors

	if !changed {
		return
	}
	if !room.HasHumans() {
		c.server.registry.Remove(room.ID())
		return
	}
	c.server.broadcastRoomUpdate(room)
	if room.Started() {
		c.server.broadcastGameState(room)
	}
}

func (c *Connection) handleListRooms() {
	response, _ := NewMessage(MessageTypeRoomList, RoomListData{
		Rooms: c.server.registry.List(),
	})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleStartGame(data StartGameData) {
	c.logger.Info("start game request", "room", data.RoomID)

	room, ok := c.room(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found")
		return
	}

	if err := room.StartGame(); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	// seat zero may be a bot; let bots open the game before broadcasting
	room.ResolveBotTurns()
	c.server.broadcastGameState(room)
}

func (c *Connection) handleAddBot(data AddBotData) {
	c.logger.Info("add bot request", "room", data.RoomID, "name", data.Name)

	room, ok := c.room(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found")
		return
	}

	name := data.Name
	if name == "" {
		name = "Bot"
	}

	if _, err := room.AddBot(name); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.server.broadcastRoomUpdate(room)
}

func (c *Connection) handlePlayCard(data PlayCardData) {
	c.logger.Info("play card request", "room", data.RoomID, "card", data.Card.String())

	room, ok := c.room(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found")
		return
	}

	if err := room.PlayCard(c.id, data.Card); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.server.broadcastGameState(room)

	// let any bots next in the turn order answer, then show the result
	room.ResolveBotTurns()
	c.server.broadcastGameState(room)
}
