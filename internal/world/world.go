package world

// World is the client's partial replica of the server world: a mapping from
// chunk position to the latest received chunk. Chunks the server has not
// pushed yet simply read as air.
type World struct {
	chunks map[ChunkPos]*Chunk
}

// New creates an empty world.
func New() *World {
	return &World{
		chunks: make(map[ChunkPos]*Chunk),
	}
}

// SetChunk inserts or replaces the chunk at its own position.
// Last write wins; there is no diffing against the previous version.
func (w *World) SetChunk(c *Chunk) {
	w.chunks[c.Pos] = c
}

// GetChunk returns the chunk at pos, or nil if it was never received.
func (w *World) GetChunk(pos ChunkPos) *Chunk {
	return w.chunks[pos]
}

// HasChunk reports whether the chunk at pos is known.
func (w *World) HasChunk(pos ChunkPos) bool {
	_, ok := w.chunks[pos]
	return ok
}

// ChunkCount returns the number of currently known chunks.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// GetBlock returns the block at world block coordinates, or air if the
// containing chunk is absent.
func (w *World) GetBlock(x, y, z int64) BlockID {
	pos := ChunkPos{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}
	c := w.chunks[pos]
	if c == nil {
		return AirBlock
	}
	return c.GetBlock(
		int(mod(x, ChunkSize)),
		int(mod(y, ChunkSize)),
		int(mod(z, ChunkSize)),
	)
}

// IsAir reports whether the block at world coordinates is air (or unknown).
func (w *World) IsAir(x, y, z int64) bool {
	return w.GetBlock(x, y, z) == AirBlock
}

// floorDiv divides rounding toward negative infinity. Plain integer
// division truncates toward zero, which mis-addresses blocks on negative
// axes.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns the Euclidean remainder, always in [0, b).
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
