// Command blockworld-server hosts the game server on a websocket endpoint
// for remote clients.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xlab/closer"

	"blockworld/internal/config"
	"blockworld/internal/gamedata"
	"blockworld/internal/network/ws"
	"blockworld/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	logger := log.New(os.Stderr, "blockworld-server ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	data := gamedata.Builtin()
	if cfg.DataDir != "" {
		data, err = gamedata.Load(cfg.DataDir)
		if err != nil {
			logger.Fatal(err)
		}
	}

	endpoint := ws.NewServer(logger)

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.New(endpoint, data, logger, server.Config{
		ViewRadius:           cfg.ViewRadius,
		MaxChunkSendsPerTick: server.DefaultConfig().MaxChunkSendsPerTick,
	})
	go srv.Run(ctx, cfg.TickInterval())

	go func() {
		defer closer.Close()
		if err := endpoint.ListenAndServe(cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Println(err)
		}
	}()

	closer.Bind(func() {
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := endpoint.Shutdown(shutdownCtx); err != nil {
			logger.Println(err)
		}
		logger.Println("server stopped")
	})
	closer.Hold()
}
