package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/nmoreno/brisca/internal/game"
	"github.com/nmoreno/brisca/internal/roomid"
)

// Server is the WebSocket front door. It owns the connection set and the
// room registry, and relays room state back to members after every
// state-changing operation. All game logic lives in internal/game; the
// server only routes intents and broadcasts snapshots.
type Server struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	registry    *RoomRegistry
	idgen       *roomid.Generator
	staticDir   string
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server around the given registry.
// staticDir, when non-empty, is served at the root for the browser client.
func NewServer(logger *log.Logger, registry *RoomRegistry, staticDir string) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		registry:    registry,
		idgen:       roomid.NewGenerator(nil),
		staticDir:   staticDir,
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}

	go s.run()
	return s
}

// Registry returns the room registry the server routes intents to
func (s *Server) Registry() *RoomRegistry {
	return s.registry
}

// Handler returns the HTTP handler serving the WebSocket endpoint, the
// health check and (optionally) the static browser client
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	return mux
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	s.logger.Info("starting websocket server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and closes the open ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "conn", conn.ID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, known := s.connections[conn]
			if known {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if known {
				// room cleanup happens outside the connection lock:
				// broadcasting to the remaining members needs it
				s.dropFromRoom(conn)
				_ = conn.Close() // Ignore close errors during unregistration
				s.logger.Info("client disconnected", "conn", conn.ID(), "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// dropFromRoom removes a disconnected player from its room, tells the
// remaining members, and drops the room once no humans are left
func (s *Server) dropFromRoom(conn *Connection) {
	roomID := conn.Room()
	if roomID == "" {
		return
	}
	room, ok := s.registry.Get(roomID)
	if !ok {
		return
	}

	if !room.RemovePlayerByID(conn.ID()) {
		return
	}
	s.logger.Info("cleaned up disconnected player", "conn", conn.ID(), "room", roomID)

	if !room.HasHumans() {
		s.registry.Remove(roomID)
		return
	}
	s.broadcastRoomUpdate(room)
	if room.Started() {
		s.broadcastGameState(room)
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.idgen.Generate(), s, s.logger)
	s.register <- client
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// BroadcastToRoom sends a message to all connections in a specific room
func (s *Server) BroadcastToRoom(roomID string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if conn.Room() == roomID {
			if err := conn.SendMessage(msg); err != nil {
				s.logger.Error("failed to send message to client", "error", err, "conn", conn.ID())
			} else {
				count++
			}
		}
	}

	s.logger.Debug("broadcast to room", "room", roomID, "type", msg.Type, "recipients", count)
}

// SendToConn sends a message to the connection with the given id
func (s *Server) SendToConn(connID string, msg *Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.ID() == connID {
			return conn.SendMessage(msg)
		}
	}

	return fmt.Errorf("connection not found: %s", connID)
}

// broadcastRoomUpdate pushes the lobby view to everyone in the room
func (s *Server) broadcastRoomUpdate(room *game.Room) {
	msg, err := NewMessage(MessageTypeRoomUpdate, RoomUpdateData{Room: room.Info()})
	if err != nil {
		s.logger.Error("failed to create room update message", "error", err)
		return
	}
	s.BroadcastToRoom(room.ID(), msg)
}

// broadcastGameState pushes the public snapshot to everyone in the room and
// a private snapshot to each human member individually
func (s *Server) broadcastGameState(room *game.Room) {
	msg, err := NewMessage(MessageTypeGameState, room.PublicState())
	if err != nil {
		s.logger.Error("failed to create game state message", "error", err)
		return
	}
	s.BroadcastToRoom(room.ID(), msg)

	for _, p := range room.Players() {
		if p.IsBot {
			continue
		}
		private, err := room.PrivateState(p.ID)
		if err != nil {
			continue // the player left between the snapshot and now
		}
		privateMsg, err := NewMessage(MessageTypePrivateState, private)
		if err != nil {
			s.logger.Error("failed to create private state message", "error", err)
			continue
		}
		_ = s.SendToConn(p.ID, privateMsg) // Ignore send errors, the reader may be gone
	}
}
