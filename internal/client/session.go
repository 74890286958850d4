package client

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"blockworld/internal/gamedata"
	"blockworld/internal/meshing"
	"blockworld/internal/network"
	"blockworld/internal/physics"
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
	"blockworld/internal/world"
)

// Session errors. All of them are terminal for the world instance; the
// caller owns the decision to end the session or surface the failure.
var (
	// ErrDisconnected reports that the server ended the session. There is
	// no reconnect logic in the core.
	ErrDisconnected = errors.New("client: server disconnected")
	// ErrUnknownBlockID reports a chunk referencing a block id outside
	// the registry: a protocol desync. Rendering must not continue with
	// substituted geometry.
	ErrUnknownBlockID = errors.New("client: chunk references unregistered block id")
	// ErrChunkBeforeGameData reports a chunk arriving before the static
	// game data, which the protocol sends first.
	ErrChunkBeforeGameData = errors.New("client: chunk received before game data")
)

// Input is the per-tick movement intent, produced by the input collaborator.
type Input struct {
	// Move is the requested displacement for this tick, in block units.
	Move mgl64.Vec3
	// Yaw and Pitch set the view orientation.
	Yaw, Pitch float64
}

// Session is the per-tick driver of the client core. It is the only writer
// of the world replica and the only invoker of the mesher; everything it
// owns is confined to the goroutine calling Tick.
type Session struct {
	client network.Client
	sink   MeshSink
	log    *log.Logger

	world  *world.World
	data   *gamedata.Data
	player Player

	dirty map[world.ChunkPos]struct{}
	buf   meshing.MeshBuffer

	slowMeshThreshold time.Duration
}

// NewSession creates a session around a connected channel endpoint.
func NewSession(c network.Client, sink MeshSink, logger *log.Logger) *Session {
	return &Session{
		client: c,
		sink:   sink,
		log:    logger,
		world:  world.New(),
		player: Player{
			Pos:  mgl64.Vec3{0.1, 1.0, 0.1},
			Size: DefaultPlayerSize,
		},
		dirty:             make(map[world.ChunkPos]struct{}),
		slowMeshThreshold: 10 * time.Millisecond,
	}
}

// World exposes the replica for read-only collaborators.
func (s *Session) World() *world.World {
	return s.world
}

// Data returns the static game data, or nil before it arrived.
func (s *Session) Data() *gamedata.Data {
	return s.data
}

// Player returns the current player state.
func (s *Session) Player() *Player {
	return &s.player
}

// Ready reports whether the session received its game data.
func (s *Session) Ready() bool {
	return s.data != nil
}

// Tick runs one scheduler tick: drain pending events, apply chunk deltas
// and collect the dirty set, re-mesh dirty chunks, resolve player motion
// and report the resulting position. Any returned error is terminal.
func (s *Session) Tick(in Input) error {
	profiling.ResetTick()

	if err := s.drainEvents(); err != nil {
		return err
	}
	s.meshDirtyChunks()
	s.movePlayer(in)
	return nil
}

// drainEvents empties the channel queue. The loop is bounded by the number
// of queued messages, never by I/O.
func (s *Session) drainEvents() error {
	for {
		switch ev := s.client.ReceiveEvent().(type) {
		case network.NoEvent:
			return nil
		case network.Connected:
			s.log.Println("session connected")
		case network.Disconnected:
			return ErrDisconnected
		case network.ServerMessage:
			if err := s.handleMessage(ev.Msg); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handleMessage(msg network.ToClient) error {
	switch m := msg.(type) {
	case network.GameData:
		if s.data != nil {
			// The protocol sends game data exactly once; a repeat is a
			// no-op, not an error.
			return nil
		}
		if err := m.Data.Validate(); err != nil {
			return fmt.Errorf("client: bad game data: %w", err)
		}
		s.data = m.Data
		s.log.Printf("received game data: %d blocks, %d items", m.Data.Blocks.Len(), m.Data.Items.Len())
		return nil

	case network.ChunkData:
		if s.data == nil {
			return ErrChunkBeforeGameData
		}
		c := m.Chunk
		if int(c.MaxBlockID()) >= len(s.data.Meshes) {
			return fmt.Errorf("%w: id %d at chunk %v", ErrUnknownBlockID, c.MaxBlockID(), c.Pos)
		}
		s.world.SetChunk(c)
		// A new chunk can change the visible faces of every chunk that
		// touches it, so all 26 neighbors go dirty with it.
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					s.dirty[c.Pos.Offset(dx, dy, dz)] = struct{}{}
				}
			}
		}
		return nil
	}
	return nil
}

// meshDirtyChunks re-meshes every dirty chunk that is present in the
// store, at most once, and clears the dirty set. Positions are processed
// in sorted order so a tick's publications are deterministic.
func (s *Session) meshDirtyChunks() {
	if len(s.dirty) == 0 {
		return
	}
	positions := make([]world.ChunkPos, 0, len(s.dirty))
	for pos := range s.dirty {
		if s.world.HasChunk(pos) {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})

	start := time.Now()
	for _, pos := range positions {
		c := s.world.GetChunk(pos)
		occl := meshing.BuildOcclusion(s.world, pos, s.data.Meshes)
		meshing.BuildChunkMesh(c, occl, s.data.Meshes, &s.buf)

		mesh := &ChunkMesh{
			Pos:      pos,
			Vertices: append([]meshing.Vertex(nil), s.buf.Vertices...),
			Indices:  append([]uint32(nil), s.buf.Indices...),
		}
		ox, oy, oz := pos.BlockOrigin()
		mesh.Origin = mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
		s.sink.SetChunkMesh(mesh)
	}
	if d := time.Since(start); d > s.slowMeshThreshold {
		s.log.Printf("meshing %d chunks took %s (%s)", len(positions), d, profiling.TopN(3))
	}

	for pos := range s.dirty {
		delete(s.dirty, pos)
	}
}

// movePlayer resolves the requested displacement against the replica and
// reports the result. Before game data arrives there is no solidity
// information, so the player stays put and nothing is sent.
func (s *Session) movePlayer(in Input) {
	s.player.Yaw = in.Yaw
	s.player.Pitch = in.Pitch
	if s.data == nil {
		return
	}

	resolved := physics.Resolve(
		&worldCollider{world: s.world, meshes: s.data.Meshes},
		s.player.Box(),
		in.Move,
	)
	s.player.Pos = s.player.Pos.Add(resolved)

	s.client.Send(network.SetPos{
		X: s.player.Pos[0],
		Y: s.player.Pos[1],
		Z: s.player.Pos[2],
	})
}

// worldCollider adapts the replica plus mesh descriptors to the physics
// solidity predicate. Unknown chunks are not solid.
type worldCollider struct {
	world  *world.World
	meshes []registry.BlockMesh
}

func (c *worldCollider) IsBlockFull(x, y, z int64) bool {
	id := c.world.GetBlock(x, y, z)
	return int(id) < len(c.meshes) && c.meshes[id].IsOpaque()
}
