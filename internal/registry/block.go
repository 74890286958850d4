package registry

// TextureRect is a normalized [0,1] rectangle into the shared texture atlas.
type TextureRect struct {
	X, Y          float32
	Width, Height float32
}

// BlockKind discriminates block visual descriptions.
type BlockKind uint8

const (
	// BlockAir contributes no geometry and never occludes.
	BlockAir BlockKind = iota
	// BlockNormalCube is a full opaque cube with per-face textures.
	BlockNormalCube
)

// Block is a registered block definition.
type Block struct {
	Name string
	Kind BlockKind
	// FaceTextures names the atlas texture per face, in Face order.
	// Empty for air.
	FaceTextures [6]string
}

// Face indexes the six cube faces. The order is fixed and shared by block
// mesh descriptors and the mesher's direction sweep.
type Face int

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceNorth              // +Z
	FaceSouth              // -Z
)

// BlockMesh describes how a block id is turned into geometry: either empty
// (air) or a full cube with one atlas rectangle per face.
type BlockMesh struct {
	Kind     BlockKind
	Textures [6]TextureRect
}

// EmptyMesh is the descriptor for air and other non-rendered blocks.
func EmptyMesh() BlockMesh {
	return BlockMesh{Kind: BlockAir}
}

// FullCubeMesh builds a full-cube descriptor from per-face atlas rects.
func FullCubeMesh(textures [6]TextureRect) BlockMesh {
	return BlockMesh{Kind: BlockNormalCube, Textures: textures}
}

// IsOpaque reports whether the block fully occludes the face of an
// adjacent block.
func (m BlockMesh) IsOpaque() bool {
	return m.Kind == BlockNormalCube
}
