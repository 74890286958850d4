package meshing

import (
	"blockworld/internal/registry"
	"blockworld/internal/world"
)

// ChunkOcclusion is a read-only sample of the six face-adjacent chunks,
// reduced to the opacity of the boundary plane touching this chunk. The
// mesher only ever samples one block past a face (the in-plane coordinates
// stay inside the chunk), so edge and corner neighbors never occlude
// anything and are not captured. An absent neighbor samples as
// non-occluding, so boundary faces fail open and get drawn.
//
// The snapshot is built once per dirty chunk per tick and never refers back
// to the live world, which keeps the mesher a pure function of its inputs.
type ChunkOcclusion struct {
	// planes[f] holds the projected opacity of the neighbor across face f,
	// row-major over the in-plane axes in x,y,z order. nil means the
	// neighbor chunk is unknown.
	planes [6][]bool
}

// faceIndex maps a neighbor direction with exactly one non-zero axis to a
// plane slot.
func faceIndex(dx, dy, dz int) int {
	switch {
	case dx > 0:
		return 0
	case dx < 0:
		return 1
	case dy > 0:
		return 2
	case dy < 0:
		return 3
	case dz > 0:
		return 4
	default:
		return 5
	}
}

// outOffset maps a local coordinate just outside the chunk to a neighbor
// direction: -1, 0 or +1 per axis.
func outOffset(c int) int {
	switch {
	case c < 0:
		return -1
	case c >= world.ChunkSize:
		return 1
	default:
		return 0
	}
}

// BuildOcclusion samples the world around pos. Opacity is decided by the
// block mesh descriptors; ids outside the descriptor list count as
// non-occluding (the session rejects such chunks before they are stored).
func BuildOcclusion(w *world.World, pos world.ChunkPos, meshes []registry.BlockMesh) *ChunkOcclusion {
	occl := &ChunkOcclusion{}

	opaque := func(id world.BlockID) bool {
		if int(id) >= len(meshes) {
			return false
		}
		return meshes[id].IsOpaque()
	}

	for _, d := range [6][3]int{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	} {
		nb := w.GetChunk(pos.Offset(int64(d[0]), int64(d[1]), int64(d[2])))
		if nb == nil {
			continue
		}
		occl.planes[faceIndex(d[0], d[1], d[2])] = projectFace(nb, d[0], d[1], d[2], opaque)
	}
	return occl
}

// projectFace extracts the opacity of the neighbor's boundary plane facing
// this chunk.
func projectFace(nb *world.Chunk, dx, dy, dz int, opaque func(world.BlockID) bool) []bool {
	// The neighbor layer touching this chunk sits at 0 when the neighbor
	// is in the positive direction, at ChunkSize-1 otherwise.
	fix := func(d int) int {
		if d > 0 {
			return 0
		}
		return world.ChunkSize - 1
	}

	out := make([]bool, world.ChunkSize*world.ChunkSize)
	for a := 0; a < world.ChunkSize; a++ {
		for b := 0; b < world.ChunkSize; b++ {
			var x, y, z int
			switch {
			case dx != 0:
				x, y, z = fix(dx), a, b
			case dy != 0:
				x, y, z = a, fix(dy), b
			default:
				x, y, z = a, b, fix(dz)
			}
			out[a*world.ChunkSize+b] = opaque(nb.GetBlock(x, y, z))
		}
	}
	return out
}

// IsOpaque reports whether the cell at chunk-local coordinates, which must
// lie outside the chunk on exactly one axis, is occluding. Unknown
// neighbors report false.
func (o *ChunkOcclusion) IsOpaque(x, y, z int) bool {
	dx, dy, dz := outOffset(x), outOffset(y), outOffset(z)
	plane := o.planes[faceIndex(dx, dy, dz)]
	if plane == nil {
		return false
	}

	idx := 0
	if dx == 0 {
		idx = idx*world.ChunkSize + x
	}
	if dy == 0 {
		idx = idx*world.ChunkSize + y
	}
	if dz == 0 {
		idx = idx*world.ChunkSize + z
	}
	return plane[idx]
}
