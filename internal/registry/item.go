package registry

// ItemID identifies a registered item type.
type ItemID uint32

// Item is a registered item definition.
type Item struct {
	Name    string
	Texture string
}

// ItemMesh describes how an item is rendered in-world: a voxel model
// reference with a scale and pivot.
type ItemMesh struct {
	MeshID     uint32
	Scale      float32
	MeshCenter [3]float32
}

// VoxelModel is a small voxel grid used for item and decoration meshes.
// Models are produced by the static data loader and carried opaquely by the
// session; the engine itself never samples them.
type VoxelModel struct {
	SizeX, SizeY, SizeZ int
	Voxels              []ModelVoxel
}

// ModelVoxel is one colored cell of a VoxelModel.
type ModelVoxel struct {
	X, Y, Z uint8
	Color   [4]uint8
}
