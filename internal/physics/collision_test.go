package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// blockSet is a finite solid-block container for tests.
type blockSet map[[3]int64]bool

func (s blockSet) IsBlockFull(x, y, z int64) bool {
	return s[[3]int64{x, y, z}]
}

func playerBox(x, y, z float64) AABB {
	return NewAABB(mgl64.Vec3{x, y, z}, mgl64.Vec3{0.8, 1.8, 0.8})
}

func TestResolveUnobstructed(t *testing.T) {
	got := Resolve(blockSet{}, playerBox(0, 0, 0), mgl64.Vec3{3, 1, -2})
	if got != (mgl64.Vec3{3, 1, -2}) {
		t.Fatalf("unobstructed displacement clipped to %v", got)
	}
}

func TestResolveClampsFlushAgainstBlock(t *testing.T) {
	blocks := blockSet{{3, 0, 0}: true, {3, 1, 0}: true}
	box := playerBox(0, 0, 0)

	got := Resolve(blocks, box, mgl64.Vec3{10, 0, 0})

	// Leading edge starts at 0.8, block face at 3.0.
	want := 3.0 - 0.8
	if got[0] != want {
		t.Fatalf("clipped X = %v, want exactly %v", got[0], want)
	}
	if got[1] != 0 || got[2] != 0 {
		t.Fatalf("unrequested axes moved: %v", got)
	}
}

func TestResolveNegativeDirectionFlush(t *testing.T) {
	blocks := blockSet{{-2, 0, 0}: true}
	box := playerBox(0, 0, 0)

	got := Resolve(blocks, box, mgl64.Vec3{-10, 0, 0})

	// Trailing face of the block at x=-1, box min at 0.
	if got[0] != -1.0 {
		t.Fatalf("clipped X = %v, want -1", got[0])
	}
}

func TestResolveFallsFlushOntoGround(t *testing.T) {
	blocks := blockSet{}
	for x := int64(-2); x <= 2; x++ {
		for z := int64(-2); z <= 2; z++ {
			blocks[[3]int64{x, 0, z}] = true
		}
	}
	box := playerBox(0, 5, 0)

	got := Resolve(blocks, box, mgl64.Vec3{0, -20, 0})

	// Ground top at y=1, box bottom at 5.
	if got[1] != -4.0 {
		t.Fatalf("fall clipped to %v, want -4", got[1])
	}
}

func TestResolveBlockedAxisStillSlides(t *testing.T) {
	// Wall ahead on X, floor clear: X is clamped, Z passes through.
	blocks := blockSet{{2, 0, 0}: true, {2, 1, 0}: true, {2, 0, 1}: true, {2, 1, 1}: true}
	box := playerBox(0, 0, 0)

	got := Resolve(blocks, box, mgl64.Vec3{5, 0, 0.5})

	if got[0] != 2.0-0.8 {
		t.Fatalf("X not clamped at wall: %v", got[0])
	}
	if got[2] != 0.5 {
		t.Fatalf("Z slide blocked: %v", got[2])
	}
}

func TestResolveSlideAlongTouchingWall(t *testing.T) {
	// Box already flush with a wall on +X must still move freely along Z.
	blocks := blockSet{}
	for z := int64(-4); z <= 4; z++ {
		blocks[[3]int64{1, 0, z}] = true
		blocks[[3]int64{1, 1, z}] = true
	}
	box := playerBox(1.0-0.8, 0, 0) // Max.X == 1.0 exactly

	got := Resolve(blocks, box, mgl64.Vec3{0, 0, 2})

	if got[2] != 2 {
		t.Fatalf("flush box failed to slide along wall: %v", got)
	}
	if got[0] != 0 {
		t.Fatalf("flush box pushed on X: %v", got)
	}
}

func TestResolveDoesNotPenetrate(t *testing.T) {
	blocks := blockSet{{2, 0, 0}: true}
	box := playerBox(0, 0, 0)

	got := Resolve(blocks, box, mgl64.Vec3{1.5, 0, 0})
	moved := box.Translated(got)
	if moved.Max[0] > 2.0 {
		t.Fatalf("box penetrates block: leading edge at %v", moved.Max[0])
	}
}

func BenchmarkResolve(b *testing.B) {
	blocks := blockSet{}
	for x := int64(-8); x <= 8; x++ {
		for z := int64(-8); z <= 8; z++ {
			blocks[[3]int64{x, 0, z}] = true
		}
	}
	box := playerBox(0, 3, 0)
	disp := mgl64.Vec3{0.3, -0.5, 0.2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Resolve(blocks, box, disp)
	}
}
