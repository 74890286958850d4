package world

// BlockID identifies a registered block type. 0 is always air.
type BlockID uint16

// AirBlock is the reserved identifier for empty space.
const AirBlock BlockID = 0

const (
	// ChunkSize is the side length of a chunk in blocks.
	ChunkSize = 32
	// ChunkVolume is the number of blocks in a chunk.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkPos identifies a chunk in chunk-grid units.
type ChunkPos struct {
	X, Y, Z int64
}

// Offset returns the chunk position translated by (dx, dy, dz) chunks.
func (p ChunkPos) Offset(dx, dy, dz int64) ChunkPos {
	return ChunkPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// BlockOrigin returns the world-space block coordinate of the chunk's
// (0,0,0) corner.
func (p ChunkPos) BlockOrigin() (int64, int64, int64) {
	return p.X * ChunkSize, p.Y * ChunkSize, p.Z * ChunkSize
}

// Chunk is a fixed cube of block ids at a chunk position. Once a chunk has
// been handed to the World it is treated as immutable: a fresher version
// arriving from the server replaces it wholesale, it is never patched.
type Chunk struct {
	Pos    ChunkPos
	blocks [ChunkVolume]BlockID
}

// NewChunk creates an all-air chunk at the given position.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos}
}

// NewChunkFromBlocks creates a chunk from a full block array, as decoded
// from a network snapshot.
func NewChunkFromBlocks(pos ChunkPos, blocks [ChunkVolume]BlockID) *Chunk {
	return &Chunk{Pos: pos, blocks: blocks}
}

// blockIndex converts local coordinates (each in [0, ChunkSize)) to a flat
// index. Out-of-range locals are a programming error, not a runtime
// condition; the array access will panic.
func blockIndex(x, y, z int) int {
	return x*ChunkSize*ChunkSize + y*ChunkSize + z
}

// GetBlock returns the block at local coordinates.
func (c *Chunk) GetBlock(x, y, z int) BlockID {
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock sets the block at local coordinates. Only the server side and
// tests build chunk contents; the client never mutates a stored chunk.
func (c *Chunk) SetBlock(x, y, z int, id BlockID) {
	c.blocks[blockIndex(x, y, z)] = id
}

// Fill sets every block in the chunk to id.
func (c *Chunk) Fill(id BlockID) {
	for i := range c.blocks {
		c.blocks[i] = id
	}
}

// Blocks returns a copy of the chunk's block array.
func (c *Chunk) Blocks() [ChunkVolume]BlockID {
	return c.blocks
}

// MaxBlockID returns the largest block id present in the chunk. Used to
// validate a received chunk against the registry before it is applied.
func (c *Chunk) MaxBlockID() BlockID {
	var max BlockID
	for _, id := range c.blocks {
		if id > max {
			max = id
		}
	}
	return max
}
