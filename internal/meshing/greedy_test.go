package meshing

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"blockworld/internal/registry"
	"blockworld/internal/world"
)

const stone world.BlockID = 1

func testMeshes() []registry.BlockMesh {
	tex := registry.TextureRect{X: 0.25, Y: 0.5, Width: 0.25, Height: 0.25}
	return []registry.BlockMesh{
		registry.EmptyMesh(),
		registry.FullCubeMesh([6]registry.TextureRect{tex, tex, tex, tex, tex, tex}),
	}
}

func quadCount(buf *MeshBuffer) int {
	return len(buf.Indices) / 6
}

func TestSingleBlockSixFaces(t *testing.T) {
	c := world.NewChunk(world.ChunkPos{})
	c.SetBlock(5, 5, 5, stone)

	var buf MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, testMeshes(), &buf)

	if got := quadCount(&buf); got != 6 {
		t.Fatalf("isolated block: %d quads, want 6", got)
	}
	if len(buf.Vertices) != 24 {
		t.Fatalf("isolated block: %d vertices, want 24", len(buf.Vertices))
	}
}

func TestSingleBlockOutwardWinding(t *testing.T) {
	c := world.NewChunk(world.ChunkPos{})
	c.SetBlock(5, 5, 5, stone)

	var buf MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, testMeshes(), &buf)

	for i := 0; i+2 < len(buf.Indices); i += 3 {
		a := buf.Vertices[buf.Indices[i]]
		b := buf.Vertices[buf.Indices[i+1]]
		d := buf.Vertices[buf.Indices[i+2]]
		tri := b.Pos.Sub(a.Pos).Cross(d.Pos.Sub(a.Pos))
		if tri.Dot(a.Normal) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", i/3, a.Normal)
		}
	}
}

func TestFlatLayerMergesToSingleQuad(t *testing.T) {
	c := world.NewChunk(world.ChunkPos{})
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			c.SetBlock(x, 0, z, stone)
		}
	}

	var buf MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, testMeshes(), &buf)

	// One merged quad per face of the slab: top, bottom, four sides.
	if got := quadCount(&buf); got != 6 {
		t.Fatalf("32x32 slab: %d quads, want 6", got)
	}

	// The top face must be a single 32x32 rectangle at y=1.
	topQuads := 0
	for i := 0; i < len(buf.Vertices); i += 4 {
		if buf.Vertices[i].Normal == (mgl32.Vec3{0, 1, 0}) {
			topQuads++
		}
	}
	if topQuads != 1 {
		t.Fatalf("slab top: %d quads, want 1 merged quad", topQuads)
	}
}

func TestFullChunkNoNeighbors(t *testing.T) {
	c := world.NewChunk(world.ChunkPos{})
	c.Fill(stone)

	var buf MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, testMeshes(), &buf)

	// Boundary faces fail open when the neighbor is unknown: one merged
	// quad per chunk face, nothing in the interior.
	if got := quadCount(&buf); got != 6 {
		t.Fatalf("full chunk, unknown neighbors: %d quads, want 6", got)
	}
}

func TestFullChunkFullyOccluded(t *testing.T) {
	meshes := testMeshes()
	w := world.New()
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				c := world.NewChunk(world.ChunkPos{X: dx, Y: dy, Z: dz})
				c.Fill(stone)
				w.SetChunk(c)
			}
		}
	}

	center := w.GetChunk(world.ChunkPos{})
	occl := BuildOcclusion(w, center.Pos, meshes)

	var buf MeshBuffer
	BuildChunkMesh(center, occl, meshes, &buf)

	if got := quadCount(&buf); got != 0 {
		t.Fatalf("fully occluded interior chunk: %d quads, want 0", got)
	}
}

func TestDiagonalNeighborsDoNotOcclude(t *testing.T) {
	meshes := testMeshes()

	center := world.NewChunk(world.ChunkPos{})
	center.Fill(stone)

	// Only face-adjacent chunks can hide a face. A world holding every
	// edge and corner neighbor but no face neighbor meshes identically to
	// one holding nothing at all.
	diag := world.New()
	diag.SetChunk(center)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				zeros := 0
				for _, d := range [3]int64{dx, dy, dz} {
					if d == 0 {
						zeros++
					}
				}
				if zeros >= 2 {
					continue
				}
				c := world.NewChunk(world.ChunkPos{X: dx, Y: dy, Z: dz})
				c.Fill(stone)
				diag.SetChunk(c)
			}
		}
	}

	var withDiag, alone MeshBuffer
	BuildChunkMesh(center, BuildOcclusion(diag, center.Pos, meshes), meshes, &withDiag)
	BuildChunkMesh(center, &ChunkOcclusion{}, meshes, &alone)

	if !reflect.DeepEqual(withDiag.Vertices, alone.Vertices) ||
		!reflect.DeepEqual(withDiag.Indices, alone.Indices) {
		t.Fatal("edge and corner neighbors changed the mesh")
	}
}

func TestCrossChunkFaceCulling(t *testing.T) {
	meshes := testMeshes()
	w := world.New()

	center := world.NewChunk(world.ChunkPos{})
	center.Fill(stone)
	w.SetChunk(center)

	east := world.NewChunk(world.ChunkPos{X: 1})
	east.Fill(stone)
	w.SetChunk(east)

	occl := BuildOcclusion(w, center.Pos, meshes)

	var buf MeshBuffer
	BuildChunkMesh(center, occl, meshes, &buf)

	// The +X face is hidden by the solid east neighbor, the other five
	// boundary faces fail open.
	if got := quadCount(&buf); got != 5 {
		t.Fatalf("east neighbor solid: %d quads, want 5", got)
	}
	for _, v := range buf.Vertices {
		if v.Normal == (mgl32.Vec3{1, 0, 0}) {
			t.Fatal("+X face emitted despite solid neighbor")
		}
	}
}

func TestMeshDeterminism(t *testing.T) {
	meshes := testMeshes()
	c := world.NewChunk(world.ChunkPos{})
	// Irregular pattern to exercise the merge paths.
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				if (x*31+y*17+z*7)%5 < 2 {
					c.SetBlock(x, y, z, stone)
				}
			}
		}
	}

	var a, b MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, meshes, &a)
	BuildChunkMesh(c, &ChunkOcclusion{}, meshes, &b)

	if !reflect.DeepEqual(a.Vertices, b.Vertices) {
		t.Fatal("vertex output differs between identical builds")
	}
	if !reflect.DeepEqual(a.Indices, b.Indices) {
		t.Fatal("index output differs between identical builds")
	}
}

func TestBufferReuseClearsPreviousMesh(t *testing.T) {
	meshes := testMeshes()
	full := world.NewChunk(world.ChunkPos{})
	full.Fill(stone)
	empty := world.NewChunk(world.ChunkPos{})

	var buf MeshBuffer
	BuildChunkMesh(full, &ChunkOcclusion{}, meshes, &buf)
	if quadCount(&buf) == 0 {
		t.Fatal("full chunk meshed to nothing")
	}
	BuildChunkMesh(empty, &ChunkOcclusion{}, meshes, &buf)
	if len(buf.Vertices) != 0 || len(buf.Indices) != 0 {
		t.Fatalf("buffer not cleared: %d vertices, %d indices", len(buf.Vertices), len(buf.Indices))
	}
}

func TestQuadUVsComeFromFaceRect(t *testing.T) {
	meshes := testMeshes()
	c := world.NewChunk(world.ChunkPos{})
	c.SetBlock(0, 0, 0, stone)

	var buf MeshBuffer
	BuildChunkMesh(c, &ChunkOcclusion{}, meshes, &buf)

	rect := meshes[stone].Textures[registry.FaceTop]
	want := map[mgl32.Vec2]bool{
		{rect.X, rect.Y}:                            false,
		{rect.X + rect.Width, rect.Y}:               false,
		{rect.X, rect.Y + rect.Height}:              false,
		{rect.X + rect.Width, rect.Y + rect.Height}: false,
	}
	for _, v := range buf.Vertices {
		if v.Normal == (mgl32.Vec3{0, 1, 0}) {
			if _, ok := want[v.UV]; !ok {
				t.Fatalf("top face UV %v not a corner of the face rect", v.UV)
			}
			want[v.UV] = true
		}
	}
	for uv, seen := range want {
		if !seen {
			t.Fatalf("rect corner %v never emitted", uv)
		}
	}
}

func BenchmarkBuildChunkMesh(b *testing.B) {
	meshes := testMeshes()
	c := world.NewChunk(world.ChunkPos{})
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				if (x+y+z)%3 == 0 {
					c.SetBlock(x, y, z, stone)
				}
			}
		}
	}
	var buf MeshBuffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildChunkMesh(c, &ChunkOcclusion{}, meshes, &buf)
	}
}
