// Package gamedata loads and carries the static game data a session needs:
// block and item registries, their mesh descriptors, voxel models and the
// shared texture atlas. The data is built once before the session starts
// and never mutated after.
package gamedata

import (
	"image"

	"blockworld/internal/registry"
)

// Data is the full static payload, sent to the client once at session
// start inside the GameData message.
type Data struct {
	Blocks       *registry.Registry[registry.Block]
	Meshes       []registry.BlockMesh
	TextureAtlas *image.RGBA
	Models       *registry.Registry[registry.VoxelModel]
	Items        *registry.Registry[registry.Item]
	ItemMeshes   []registry.ItemMesh

	// Defs are the definitions this data was built from. Build is
	// deterministic, so transports ship Defs instead of the built form.
	Defs *Defs
}

// Validate checks the cross-registry invariants the session relies on.
func (d *Data) Validate() error {
	return registry.ValidateBlockMeshes(d.Blocks, d.Meshes)
}
