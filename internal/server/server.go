// Package server hosts the authoritative side of the synchronization
// channel: it greets clients with the static game data and streams chunk
// snapshots around their reported positions. Terrain content is a fixed
// flat slab; generation proper belongs to a collaborator.
package server

import (
	"context"
	"log"
	"sort"
	"time"

	"blockworld/internal/gamedata"
	"blockworld/internal/network"
	"blockworld/internal/world"
)

// Config tunes chunk streaming.
type Config struct {
	// ViewRadius is the streamed cube radius around a player, in chunks.
	ViewRadius int
	// MaxChunkSendsPerTick bounds outgoing chunk messages per tick per
	// player, keeping tick latency flat while a player explores.
	MaxChunkSendsPerTick int
}

// DefaultConfig returns the tuning used by the integrated session.
func DefaultConfig() Config {
	return Config{ViewRadius: 2, MaxChunkSendsPerTick: 16}
}

type playerState struct {
	x, y, z float64
	hasPos  bool
	sent    map[world.ChunkPos]bool
}

// GameServer drives one server endpoint. Like the client session it is
// single-threaded: all state is confined to the goroutine calling Step.
type GameServer struct {
	endpoint network.Server
	data     *gamedata.Data
	log      *log.Logger
	cfg      Config

	store   *world.World
	terrain func(pos world.ChunkPos) *world.Chunk
	players map[network.PlayerID]*playerState
}

// New creates a game server around a channel endpoint.
func New(endpoint network.Server, data *gamedata.Data, logger *log.Logger, cfg Config) *GameServer {
	g := &GameServer{
		endpoint: endpoint,
		data:     data,
		log:      logger,
		cfg:      cfg,
		store:    world.New(),
		players:  make(map[network.PlayerID]*playerState),
	}
	g.terrain = g.flatSlab
	return g
}

// Run steps the server at the given tick rate until ctx is done.
func (g *GameServer) Run(ctx context.Context, tickRate time.Duration) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Step()
		}
	}
}

// Step runs one server tick: drain client events, then stream chunks.
func (g *GameServer) Step() {
	for {
		ev := g.endpoint.ReceiveEvent()
		if _, none := ev.(network.NoEvent); none {
			break
		}
		g.handleEvent(ev)
	}
	for id, p := range g.players {
		g.streamChunks(id, p)
	}
}

func (g *GameServer) handleEvent(ev network.ServerEvent) {
	switch e := ev.(type) {
	case network.ClientConnected:
		g.log.Printf("client %d connected", e.ID)
		g.players[e.ID] = &playerState{sent: make(map[world.ChunkPos]bool)}
		g.endpoint.Send(e.ID, network.GameData{Data: g.data})

	case network.ClientDisconnected:
		g.log.Printf("client %d disconnected", e.ID)
		delete(g.players, e.ID)

	case network.ClientMessage:
		p := g.players[e.ID]
		if p == nil {
			return
		}
		if sp, ok := e.Msg.(network.SetPos); ok {
			p.x, p.y, p.z = sp.X, sp.Y, sp.Z
			p.hasPos = true
		}
	}
}

// streamChunks pushes chunks inside the player's view cube that were not
// sent yet, nearest first, bounded per tick.
func (g *GameServer) streamChunks(id network.PlayerID, p *playerState) {
	if !p.hasPos {
		return
	}
	center := world.ChunkPos{
		X: floorDiv(p.x, world.ChunkSize),
		Y: floorDiv(p.y, world.ChunkSize),
		Z: floorDiv(p.z, world.ChunkSize),
	}

	r := int64(g.cfg.ViewRadius)
	var pending []world.ChunkPos
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				pos := center.Offset(dx, dy, dz)
				if !p.sent[pos] {
					pending = append(pending, pos)
				}
			}
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return chunkDist(pending[i], center) < chunkDist(pending[j], center)
	})

	quota := g.cfg.MaxChunkSendsPerTick
	for _, pos := range pending {
		if quota == 0 {
			break
		}
		quota--
		p.sent[pos] = true
		g.endpoint.Send(id, network.ChunkData{Chunk: g.chunkAt(pos)})
	}
}

// chunkAt returns the authoritative chunk, building it on first use.
func (g *GameServer) chunkAt(pos world.ChunkPos) *world.Chunk {
	if c := g.store.GetChunk(pos); c != nil {
		return c
	}
	c := g.terrain(pos)
	g.store.SetChunk(c)
	return c
}

// flatSlab is the built-in terrain: grass at y=0 over dirt and stone.
func (g *GameServer) flatSlab(pos world.ChunkPos) *world.Chunk {
	grass, _ := g.data.Blocks.GetIDByName("grass")
	dirt, _ := g.data.Blocks.GetIDByName("dirt")
	stone, _ := g.data.Blocks.GetIDByName("stone")

	c := world.NewChunk(pos)
	_, baseY, _ := pos.BlockOrigin()
	for ly := 0; ly < world.ChunkSize; ly++ {
		wy := baseY + int64(ly)
		var id world.BlockID
		switch {
		case wy > 0:
			continue
		case wy == 0:
			id = world.BlockID(grass)
		case wy >= -3:
			id = world.BlockID(dirt)
		default:
			id = world.BlockID(stone)
		}
		for lx := 0; lx < world.ChunkSize; lx++ {
			for lz := 0; lz < world.ChunkSize; lz++ {
				c.SetBlock(lx, ly, lz, id)
			}
		}
	}
	return c
}

func chunkDist(a, b world.ChunkPos) int64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

func floorDiv(f float64, size int64) int64 {
	v := int64(f)
	if f < 0 && float64(v) != f {
		v--
	}
	q := v / size
	if v%size != 0 && v < 0 {
		q--
	}
	return q
}
