package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreno/brisca/internal/randutil"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRegistryCreateGetRemove(t *testing.T) {
	registry := NewRoomRegistry(testLogger(), nil, randutil.New(1))

	room := registry.CreateRoom(4)
	require.NotEmpty(t, room.ID())
	assert.Equal(t, 1, registry.Len())

	got, ok := registry.Get(room.ID())
	require.True(t, ok)
	assert.Same(t, room, got)

	assert.True(t, registry.Remove(room.ID()))
	assert.False(t, registry.Remove(room.ID()))
	_, ok = registry.Get(room.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryCreateRoomWithID(t *testing.T) {
	registry := NewRoomRegistry(testLogger(), nil, randutil.New(1))

	room, err := registry.CreateRoomWithID("mesa1", 6)
	require.NoError(t, err)
	assert.Equal(t, "mesa1", room.ID())

	_, err = registry.CreateRoomWithID("mesa1", 6)
	assert.Error(t, err)
}

func TestRegistryListSortedByCreation(t *testing.T) {
	mock := quartz.NewMock(t)
	registry := NewRoomRegistry(testLogger(), mock, randutil.New(1))

	start := mock.Now()
	first := registry.CreateRoom(2)
	mock.Advance(time.Minute)
	second := registry.CreateRoom(3)

	rooms := registry.List()
	require.Len(t, rooms, 2)
	assert.Equal(t, first.ID(), rooms[0].ID)
	assert.Equal(t, second.ID(), rooms[1].ID)
	assert.True(t, rooms[0].CreatedAt.Equal(start))
	assert.True(t, rooms[1].CreatedAt.Equal(start.Add(time.Minute)))
	assert.Equal(t, 2, rooms[0].MaxPlayers)
	assert.Equal(t, 3, rooms[1].MaxPlayers)
	assert.False(t, rooms[0].Started)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRoomRegistry(testLogger(), nil, randutil.New(1))
	b := NewRoomRegistry(testLogger(), nil, randutil.New(2))

	room := a.CreateRoom(4)
	_, ok := b.Get(room.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}
