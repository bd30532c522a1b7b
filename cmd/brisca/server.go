package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nmoreno/brisca/cmd/brisca/shared"
	"github.com/nmoreno/brisca/internal/randutil"
	"github.com/nmoreno/brisca/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Addr      string `kong:"default=':8080',help='Server address'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
	Config    string `kong:"default='brisca.hcl',help='Path to HCL config file'"`
	StaticDir string `kong:"help='Directory with the browser client, served at /'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}

	// flags win over config file values
	addr := c.Addr
	if addr == ":8080" && cfg.Server.Address != "" {
		addr = cfg.Server.Address
	}
	staticDir := c.StaticDir
	if staticDir == "" {
		staticDir = cfg.Server.StaticDir
	}
	if !c.Debug && cfg.Server.LogLevel != "" {
		logger.SetLevel(shared.ParseLevel(cfg.Server.LogLevel))
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", seed)
	}
	rng := randutil.New(seed)

	registry := server.NewRoomRegistry(logger, nil, rng)
	if err := provisionRooms(registry, cfg.Rooms); err != nil {
		return err
	}

	s := server.NewServer(logger, registry, staticDir)

	logger.Info("starting brisca server",
		"address", addr,
		"rooms", registry.Len(),
		"static_dir", staticDir,
	)

	ctx := shared.SetupSignalHandler(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// provisionRooms creates the rooms declared in the config file, bots seated
// and waiting for humans
func provisionRooms(registry *server.RoomRegistry, rooms []server.RoomConfig) error {
	for _, rc := range rooms {
		room, err := registry.CreateRoomWithID(rc.Name, rc.MaxPlayers)
		if err != nil {
			return err
		}
		for _, name := range rc.Bots {
			if _, err := room.AddBot(name); err != nil {
				return err
			}
		}
	}
	return nil
}
