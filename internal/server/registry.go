package server

import (
	"fmt"
	rand "math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/nmoreno/brisca/internal/game"
	"github.com/nmoreno/brisca/internal/randutil"
	"github.com/nmoreno/brisca/internal/roomid"
)

// roomEntry couples a room with registry-level metadata
type roomEntry struct {
	room      *game.Room
	createdAt time.Time
}

// RoomRegistry owns the in-memory room table. It is instance-scoped rather
// than global so tests can run several registries side by side, and the
// clock is injected so creation times are controllable.
type RoomRegistry struct {
	base   *log.Logger
	logger *log.Logger
	clock  quartz.Clock
	idgen  *roomid.Generator

	mu    sync.RWMutex
	rooms map[string]*roomEntry
	seeds *rand.Rand
}

// NewRoomRegistry constructs an empty registry. The seeds rng derives an
// independent rng per room so games replay deterministically from the
// server seed. A nil clock falls back to the real one.
func NewRoomRegistry(logger *log.Logger, clock quartz.Clock, seeds *rand.Rand) *RoomRegistry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &RoomRegistry{
		base:   logger,
		logger: logger.WithPrefix("registry"),
		clock:  clock,
		idgen:  roomid.NewGenerator(nil),
		rooms:  make(map[string]*roomEntry),
		seeds:  seeds,
	}
}

// CreateRoom makes a new room under a generated id
func (rr *RoomRegistry) CreateRoom(maxPlayers int) *game.Room {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	id := rr.idgen.Generate()
	for _, taken := rr.rooms[id]; taken; _, taken = rr.rooms[id] {
		id = rr.idgen.Generate()
	}
	return rr.createLocked(id, maxPlayers)
}

// CreateRoomWithID makes a new room under a caller-chosen id. Used to
// pre-provision rooms from config files.
func (rr *RoomRegistry) CreateRoomWithID(id string, maxPlayers int) (*game.Room, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if _, taken := rr.rooms[id]; taken {
		return nil, fmt.Errorf("room %q already exists", id)
	}
	return rr.createLocked(id, maxPlayers), nil
}

func (rr *RoomRegistry) createLocked(id string, maxPlayers int) *game.Room {
	room := game.NewRoom(id, maxPlayers, randutil.New(rr.seeds.Int64()), rr.base)
	rr.rooms[id] = &roomEntry{room: room, createdAt: rr.clock.Now()}
	rr.logger.Info("room created", "room", id, "max_players", room.MaxPlayers())
	return room
}

// Get retrieves a room by id
func (rr *RoomRegistry) Get(id string) (*game.Room, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	entry, ok := rr.rooms[id]
	if !ok {
		return nil, false
	}
	return entry.room, true
}

// Remove deletes a room by id and reports whether it existed
func (rr *RoomRegistry) Remove(id string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if _, ok := rr.rooms[id]; !ok {
		return false
	}
	delete(rr.rooms, id)
	rr.logger.Info("room removed", "room", id)
	return true
}

// Len returns the number of live rooms
func (rr *RoomRegistry) Len() int {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return len(rr.rooms)
}

// List returns lobby summaries for every room, oldest first
func (rr *RoomRegistry) List() []RoomSummary {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(rr.rooms))
	for id, entry := range rr.rooms {
		info := entry.room.Info()
		summaries = append(summaries, RoomSummary{
			ID:          id,
			PlayerCount: len(info.Players),
			MaxPlayers:  info.MaxPlayers,
			Started:     info.Started,
			CreatedAt:   entry.createdAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}
