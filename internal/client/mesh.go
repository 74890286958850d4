package client

import (
	"github.com/go-gl/mathgl/mgl32"

	"blockworld/internal/meshing"
	"blockworld/internal/world"
)

// ChunkMesh is a finished chunk mesh as published to the render
// collaborator: vertices in chunk-local coordinates plus the chunk's world
// origin offset.
type ChunkMesh struct {
	Pos      world.ChunkPos
	Origin   mgl32.Vec3
	Vertices []meshing.Vertex
	Indices  []uint32
}

// MeshSink consumes published chunk meshes. A new mesh for a position
// replaces the previous one.
type MeshSink interface {
	SetChunkMesh(mesh *ChunkMesh)
}

// MeshStore is a map-backed MeshSink, the in-process stand-in for a GPU
// uploader.
type MeshStore struct {
	meshes map[world.ChunkPos]*ChunkMesh
}

// NewMeshStore creates an empty store.
func NewMeshStore() *MeshStore {
	return &MeshStore{meshes: make(map[world.ChunkPos]*ChunkMesh)}
}

func (s *MeshStore) SetChunkMesh(mesh *ChunkMesh) {
	s.meshes[mesh.Pos] = mesh
}

// Get returns the current mesh for a chunk position, or nil.
func (s *MeshStore) Get(pos world.ChunkPos) *ChunkMesh {
	return s.meshes[pos]
}

// Len returns the number of stored meshes.
func (s *MeshStore) Len() int {
	return len(s.meshes)
}

// TriangleCount sums triangles across all stored meshes.
func (s *MeshStore) TriangleCount() int {
	n := 0
	for _, m := range s.meshes {
		n += len(m.Indices) / 3
	}
	return n
}
