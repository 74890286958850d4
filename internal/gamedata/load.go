package gamedata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"blockworld/internal/registry"
)

// BlockDef is one block entry of data.yml. Faces are named in the fixed
// face order: east, west, top, bottom, north, south.
type BlockDef struct {
	Name  string    `yaml:"name" json:"name"`
	Faces [6]string `yaml:"faces" json:"faces"`
}

// ItemDef is one item entry of data.yml.
type ItemDef struct {
	Name    string `yaml:"name" json:"name"`
	Texture string `yaml:"texture" json:"texture"`
}

// Defs mirrors the on-disk definition file. Build is deterministic, so
// Defs doubles as the wire form of game data: both ends of a connection
// reconstruct identical registries and atlas from the same Defs.
type Defs struct {
	Textures map[string]string `yaml:"textures" json:"textures"` // name -> "#rrggbb"
	Blocks   []BlockDef        `yaml:"blocks" json:"blocks"`
	Items    []ItemDef         `yaml:"items" json:"items"`
}

// Load reads game data definitions from dir (data.yml) and builds the
// registries, mesh descriptors and the texture atlas.
func Load(dir string) (*Data, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "data.yml"))
	if err != nil {
		return nil, fmt.Errorf("gamedata: %w", err)
	}
	var df Defs
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return nil, fmt.Errorf("gamedata: parse data.yml: %w", err)
	}
	return Build(&df)
}

// Build constructs registries, mesh descriptors and the texture atlas
// from definitions. Output is fully determined by the input.
func Build(df *Defs) (*Data, error) {
	atlas := newAtlasBuilder(len(df.Textures))
	// Deterministic tile placement: insert in sorted name order.
	for _, name := range sortedNames(df.Textures) {
		c, err := parseColor(df.Textures[name])
		if err != nil {
			return nil, err
		}
		atlas.add(name, c)
	}

	blocks := registry.NewRegistry[registry.Block]()
	meshes := make([]registry.BlockMesh, 0, len(df.Blocks)+1)

	// Air is always id 0 with an empty descriptor.
	if _, err := blocks.Register("air", registry.Block{Name: "air", Kind: registry.BlockAir}); err != nil {
		return nil, err
	}
	meshes = append(meshes, registry.EmptyMesh())

	for _, bd := range df.Blocks {
		var rects [6]registry.TextureRect
		for i, face := range bd.Faces {
			r, ok := atlas.rect(face)
			if !ok {
				return nil, fmt.Errorf("gamedata: block %q references unknown texture %q", bd.Name, face)
			}
			rects[i] = r
		}
		b := registry.Block{Name: bd.Name, Kind: registry.BlockNormalCube, FaceTextures: bd.Faces}
		if _, err := blocks.Register(bd.Name, b); err != nil {
			return nil, err
		}
		meshes = append(meshes, registry.FullCubeMesh(rects))
	}

	items := registry.NewRegistry[registry.Item]()
	models := registry.NewRegistry[registry.VoxelModel]()
	itemMeshes := make([]registry.ItemMesh, 0, len(df.Items))

	for _, id := range df.Items {
		if _, ok := atlas.rect(id.Texture); !ok {
			return nil, fmt.Errorf("gamedata: item %q references unknown texture %q", id.Name, id.Texture)
		}
		if _, err := items.Register(id.Name, registry.Item{Name: id.Name, Texture: id.Texture}); err != nil {
			return nil, err
		}
		model := itemModel()
		meshID, err := models.Register("item:"+id.Name, model)
		if err != nil {
			return nil, err
		}
		itemMeshes = append(itemMeshes, registry.ItemMesh{
			MeshID: meshID,
			Scale:  1.0 / float32(model.SizeX),
			MeshCenter: [3]float32{
				float32(model.SizeX) / 2,
				float32(model.SizeY) / 2,
				float32(model.SizeZ) / 2,
			},
		})
	}

	d := &Data{
		Blocks:       blocks,
		Meshes:       meshes,
		TextureAtlas: atlas.img,
		Models:       models,
		Items:        items,
		ItemMeshes:   itemMeshes,
		Defs:         df,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// itemModel is the placeholder in-world model for an item: a flat
// tile-sized voxel slab. Rich models come from the static data
// collaborator.
func itemModel() registry.VoxelModel {
	return registry.VoxelModel{SizeX: tileSize, SizeY: tileSize, SizeZ: 1}
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
