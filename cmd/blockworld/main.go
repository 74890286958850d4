// Command blockworld runs the client core headless. By default it hosts an
// integrated single-player session, the game server and client in one
// process joined by an in-process channel pair; with -connect it joins a
// remote server over a websocket instead. The client walks a slow circle
// over the terrain so the whole pipeline (streaming, meshing, collision)
// is exercised.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xlab/closer"

	"blockworld/internal/client"
	"blockworld/internal/config"
	"blockworld/internal/gamedata"
	"blockworld/internal/network"
	"blockworld/internal/network/ws"
	"blockworld/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	connect := flag.String("connect", "", "join a remote server at host:port instead of hosting")
	flag.Parse()

	logger := log.New(os.Stderr, "blockworld ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var endpoint network.Client
	var closeEndpoint func()
	if *connect != "" {
		wc, err := ws.Dial(*connect, logger)
		if err != nil {
			logger.Fatal(err)
		}
		endpoint, closeEndpoint = wc, wc.Close
	} else {
		data := gamedata.Builtin()
		if cfg.DataDir != "" {
			data, err = gamedata.Load(cfg.DataDir)
			if err != nil {
				logger.Fatal(err)
			}
		}

		clientEnd, serverEnd := network.NewLocalPair()
		srv := server.New(serverEnd, data, logger, server.Config{
			ViewRadius:           cfg.ViewRadius,
			MaxChunkSendsPerTick: server.DefaultConfig().MaxChunkSendsPerTick,
		})
		go srv.Run(ctx, cfg.TickInterval())
		endpoint, closeEndpoint = clientEnd, clientEnd.Close
	}

	sink := client.NewMeshStore()
	sess := client.NewSession(endpoint, sink, logger)

	done := make(chan struct{})
	go func() {
		defer closer.Close()
		runSession(ctx, sess, sink, cfg, logger)
		close(done)
	}()

	closer.Bind(func() {
		cancel()
		closeEndpoint()
		<-done
		logger.Println("session ended")
	})
	closer.Hold()
}

// runSession drives the client at the configured tick rate until the
// context ends or the session hits a terminal error.
func runSession(ctx context.Context, sess *client.Session, sink *client.MeshStore, cfg config.Settings, logger *log.Logger) {
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := sess.Tick(wanderInput(tick, cfg)); err != nil {
			logger.Printf("session: %v", err)
			return
		}

		tick++
		if tick%(cfg.TickRate*5) == 0 {
			p := sess.Player()
			logger.Printf("pos=(%.1f %.1f %.1f) chunks=%d meshes=%d tris=%d",
				p.Pos.X(), p.Pos.Y(), p.Pos.Z(),
				sess.World().ChunkCount(), sink.Len(), sink.TriangleCount())
		}
	}
}

// wanderInput steers the player along a slow circle at walking speed.
func wanderInput(tick int, cfg config.Settings) client.Input {
	yaw := float64(tick) / float64(cfg.TickRate*30) * 2 * math.Pi
	speed := 4.3 / float64(cfg.TickRate) // blocks per tick
	return client.Input{
		Move: mgl64.Vec3{math.Cos(yaw) * speed, 0, math.Sin(yaw) * speed},
		Yaw:  yaw,
	}
}
