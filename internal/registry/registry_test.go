package registry

import "testing"

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry[Block]()
	air, err := r.Register("air", Block{Name: "air", Kind: BlockAir})
	if err != nil {
		t.Fatal(err)
	}
	stone, err := r.Register("stone", Block{Name: "stone", Kind: BlockNormalCube})
	if err != nil {
		t.Fatal(err)
	}
	if air != 0 || stone != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", air, stone)
	}
	if id, ok := r.GetIDByName("stone"); !ok || id != 1 {
		t.Fatalf("GetIDByName(stone) = %d, %v", id, ok)
	}
	if b, ok := r.GetByID(1); !ok || b.Name != "stone" {
		t.Fatalf("GetByID(1) = %+v, %v", b, ok)
	}
	if _, ok := r.GetByID(2); ok {
		t.Fatal("GetByID(2) should miss")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	r := NewRegistry[Item]()
	if _, err := r.Register("stick", Item{Name: "stick"}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Register("stick", Item{Name: "stick"}); err == nil {
		t.Fatal("duplicate registration should fail")
	}
}

func TestValidateBlockMeshes(t *testing.T) {
	blocks := NewRegistry[Block]()
	blocks.Register("air", Block{Name: "air", Kind: BlockAir})
	blocks.Register("dirt", Block{Name: "dirt", Kind: BlockNormalCube})

	meshes := []BlockMesh{EmptyMesh(), FullCubeMesh([6]TextureRect{})}
	if err := ValidateBlockMeshes(blocks, meshes); err != nil {
		t.Fatalf("valid pairing rejected: %v", err)
	}

	if err := ValidateBlockMeshes(blocks, meshes[:1]); err == nil {
		t.Fatal("mesh count mismatch accepted")
	}

	bad := []BlockMesh{FullCubeMesh([6]TextureRect{}), EmptyMesh()}
	if err := ValidateBlockMeshes(blocks, bad); err == nil {
		t.Fatal("non-empty air descriptor accepted")
	}
}
