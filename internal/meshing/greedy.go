package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"blockworld/internal/profiling"
	"blockworld/internal/registry"
	"blockworld/internal/world"
)

// Vertex is one mesh vertex in chunk-local coordinates. The chunk's world
// offset is applied by the render collaborator, not baked into the mesh.
type Vertex struct {
	Pos    mgl32.Vec3
	UV     mgl32.Vec2
	Normal mgl32.Vec3
}

// MeshBuffer is caller-owned scratch the mesher clears and refills instead
// of reallocating. Meshing runs once per dirty chunk per tick and the
// allocation churn dominates otherwise.
type MeshBuffer struct {
	Vertices []Vertex
	Indices  []uint32
	mask     [world.ChunkSize * world.ChunkSize]world.BlockID
}

// Reset empties the buffer, keeping capacity.
func (b *MeshBuffer) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// faceDirs is the fixed sweep order: +X, -X, +Y, -Y, +Z, -Z. Output
// determinism depends on this order never changing.
var faceDirs = [6]struct {
	axis int
	sign int
	face registry.Face
}{
	{0, +1, registry.FaceEast},
	{0, -1, registry.FaceWest},
	{1, +1, registry.FaceTop},
	{1, -1, registry.FaceBottom},
	{2, +1, registry.FaceNorth},
	{2, -1, registry.FaceSouth},
}

// planeAxes gives the two in-plane axes (u, v) for each normal axis, and
// the sign of (u cross v) projected on the normal axis, which decides the
// outward winding below.
var planeAxes = [3]struct {
	u, v  int
	cross int
}{
	{1, 2, +1}, // X normal: plane is Y-Z
	{0, 2, -1}, // Y normal: plane is X-Z
	{0, 1, +1}, // Z normal: plane is X-Y
}

// BuildChunkMesh converts one chunk plus its neighbor occlusion sample into
// a greedy-meshed quad list: visible faces only, coplanar same-block runs
// merged into maximal rectangles, 4 vertices and 6 indices per quad with
// outward-facing winding.
//
// For a fixed chunk and occlusion snapshot the output is byte-identical
// across calls: layers are swept in axis order and masks are scanned
// row-major.
func BuildChunkMesh(c *world.Chunk, occl *ChunkOcclusion, meshes []registry.BlockMesh, buf *MeshBuffer) {
	defer profiling.Track("meshing.BuildChunkMesh")()
	buf.Reset()
	for _, dir := range faceDirs {
		buildDirection(c, occl, meshes, buf, dir.axis, dir.sign, dir.face)
	}
}

func buildDirection(c *world.Chunk, occl *ChunkOcclusion, meshes []registry.BlockMesh, buf *MeshBuffer, axis, sign int, face registry.Face) {
	const size = world.ChunkSize
	ua, va := planeAxes[axis].u, planeAxes[axis].v

	opaque := func(id world.BlockID) bool {
		return int(id) < len(meshes) && meshes[id].IsOpaque()
	}

	var p [3]int
	for layer := 0; layer < size; layer++ {
		// A mask cell holds the block id whose face is visible at that
		// cell, or air for no face: the block on the near side must be
		// opaque and the block one step along the normal must not be.
		// The far sample may fall in a neighbor chunk; unknown neighbors
		// sample as non-opaque so the face is drawn rather than hidden.
		for u := 0; u < size; u++ {
			for v := 0; v < size; v++ {
				p[axis], p[ua], p[va] = layer, u, v
				id := c.GetBlock(p[0], p[1], p[2])
				if !opaque(id) {
					buf.mask[u*size+v] = world.AirBlock
					continue
				}
				p[axis] = layer + sign
				var farOpaque bool
				if p[axis] >= 0 && p[axis] < size {
					farOpaque = opaque(c.GetBlock(p[0], p[1], p[2]))
				} else {
					farOpaque = occl.IsOpaque(p[0], p[1], p[2])
				}
				if farOpaque {
					buf.mask[u*size+v] = world.AirBlock
				} else {
					buf.mask[u*size+v] = id
				}
			}
		}

		// Greedy merge: scan row-major, grow the run along v while ids
		// match, then grow along u while the whole row matches, then
		// clear the merged cells.
		for i := 0; i < size*size; {
			id := buf.mask[i]
			if id == world.AirBlock {
				i++
				continue
			}
			u0 := i / size
			v0 := i % size

			width := 1
			for v0+width < size && buf.mask[u0*size+v0+width] == id {
				width++
			}

			height := 1
		growU:
			for u0+height < size {
				for v := v0; v < v0+width; v++ {
					if buf.mask[(u0+height)*size+v] != id {
						break growU
					}
				}
				height++
			}

			emitQuad(buf, meshes[id].Textures[face], axis, sign, layer, u0, v0, height, width)

			for u := u0; u < u0+height; u++ {
				for v := v0; v < v0+width; v++ {
					buf.mask[u*size+v] = world.AirBlock
				}
			}
		}
	}
}

// emitQuad appends one merged rectangle as 4 vertices and 2 triangles.
// The quad lies in the plane perpendicular to axis, covering
// [u0, u0+du) x [v0, v0+dv) of the layer.
func emitQuad(buf *MeshBuffer, tex registry.TextureRect, axis, sign, layer, u0, v0, du, dv int) {
	ua, va := planeAxes[axis].u, planeAxes[axis].v

	plane := float32(layer)
	if sign > 0 {
		plane++
	}

	var normal mgl32.Vec3
	normal[axis] = float32(sign)

	corner := func(u, v int) mgl32.Vec3 {
		var pos mgl32.Vec3
		pos[axis] = plane
		pos[ua] = float32(u)
		pos[va] = float32(v)
		return pos
	}
	uv := func(u, v int) mgl32.Vec2 {
		// The rect tiles across merged cells; a unit face spans exactly
		// the atlas rectangle.
		return mgl32.Vec2{
			tex.X + tex.Width*float32(v-v0),
			tex.Y + tex.Height*float32(u-u0),
		}
	}

	u1, v1 := u0+du, v0+dv

	// Corner order (CCW seen from outside): when the in-plane cross
	// product points along the outward normal, walk the u edge first,
	// otherwise the v edge first.
	var quad [4][2]int
	if planeAxes[axis].cross*sign > 0 {
		quad = [4][2]int{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
	} else {
		quad = [4][2]int{{u0, v0}, {u0, v1}, {u1, v1}, {u1, v0}}
	}

	base := uint32(len(buf.Vertices))
	for _, q := range quad {
		buf.Vertices = append(buf.Vertices, Vertex{
			Pos:    corner(q[0], q[1]),
			UV:     uv(q[0], q[1]),
			Normal: normal,
		})
	}
	buf.Indices = append(buf.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}
