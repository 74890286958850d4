package network

import (
	"blockworld/internal/gamedata"
	"blockworld/internal/world"
)

// ToClient is a message from the server to a client. Ownership transfers
// to the receiver on send.
type ToClient interface {
	toClient()
}

// ToServer is a message from a client to the server.
type ToServer interface {
	toServer()
}

// GameData carries the static registries, meshes and texture atlas.
// Sent exactly once, at session start; a repeat is ignored by the client.
type GameData struct {
	Data *gamedata.Data
}

// ChunkData carries a full chunk snapshot. Sent any number of times; the
// latest received snapshot for a position unconditionally replaces the
// previous one, there is no sequence numbering.
type ChunkData struct {
	Chunk *world.Chunk
}

// SetPos reports the client's position after local collision resolution,
// in block-length units. Sent at most once per client tick.
type SetPos struct {
	X, Y, Z float64
}

func (GameData) toClient()  {}
func (ChunkData) toClient() {}

func (SetPos) toServer() {}
