package registry

import "fmt"

// ValidateBlockMeshes checks the registry/mesh-list pairing invariant:
// exactly one descriptor per registered block id, and the descriptor for
// air (id 0) is empty.
func ValidateBlockMeshes(blocks *Registry[Block], meshes []BlockMesh) error {
	if len(meshes) != blocks.Len() {
		return fmt.Errorf("registry: %d block meshes for %d registered blocks", len(meshes), blocks.Len())
	}
	if len(meshes) == 0 {
		return fmt.Errorf("registry: no blocks registered, air is mandatory")
	}
	if meshes[0].Kind != BlockAir {
		return fmt.Errorf("registry: descriptor for air must be empty")
	}
	return nil
}
