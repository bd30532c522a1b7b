package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigMissingFile(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Empty(t, cfg.Rooms)
}

func TestLoadServerConfig(t *testing.T) {
	content := `
server {
  address    = ":9000"
  log_level  = "debug"
  static_dir = "web"
}

room "mesa1" {
  max_players = 4
  bots        = ["Lola", "Paco"]
}

room "mesa2" {
  max_players = 2
}
`
	path := filepath.Join(t.TempDir(), "brisca.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "web", cfg.Server.StaticDir)

	require.Len(t, cfg.Rooms, 2)
	assert.Equal(t, "mesa1", cfg.Rooms[0].Name)
	assert.Equal(t, 4, cfg.Rooms[0].MaxPlayers)
	assert.Equal(t, []string{"Lola", "Paco"}, cfg.Rooms[0].Bots)
	assert.Equal(t, "mesa2", cfg.Rooms[1].Name)
	assert.Empty(t, cfg.Rooms[1].Bots)
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}
