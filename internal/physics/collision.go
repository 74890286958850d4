package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"blockworld/internal/profiling"
)

// BlockContainer is the world's block-solidity predicate. The block at
// (x, y, z) occupies the unit cube [x, x+1) on each axis. Positions inside
// chunks the container does not know are not full.
type BlockContainer interface {
	IsBlockFull(x, y, z int64) bool
}

// Resolve sweeps box through bc by the requested displacement and returns
// the largest displacement that causes no overlap with a full block.
//
// The three axes are clipped independently, X then Y then Z, each against
// the box as already moved by the previously clipped axes. A box blocked
// along one axis still slides along the others; there is no diagonal
// correction beyond that. The clipped box ends exactly flush with the
// blocking face. Pure function: nothing is mutated.
func Resolve(bc BlockContainer, box AABB, disp mgl64.Vec3) mgl64.Vec3 {
	defer profiling.Track("physics.Resolve")()

	var out mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		d := clipAxis(bc, box, axis, disp[axis])
		box = box.offsetAxis(axis, d)
		out[axis] = d
	}
	return out
}

// clipAxis returns the furthest move along axis, at most d, before the
// box's leading edge meets a full block.
func clipAxis(bc BlockContainer, box AABB, axis int, d float64) float64 {
	if d == 0 {
		return 0
	}

	// Broadphase over every block the swept volume can touch, one block of
	// slack so edge-flush blocks are still examined by the exact clip.
	swept := box.expandedAxis(axis, d)
	var lo, hi [3]int64
	for a := 0; a < 3; a++ {
		lo[a] = floorInt(swept.Min[a]) - 1
		hi[a] = floorInt(swept.Max[a]) + 1
	}

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if !bc.IsBlockFull(x, y, z) {
					continue
				}
				blockMin := [3]float64{float64(x), float64(y), float64(z)}
				d = clipAgainstBlock(box, axis, d, blockMin)
			}
		}
	}
	return d
}

// clipAgainstBlock shrinks d so box, moved along axis, stays clear of the
// unit block at blockMin. Touching faces on the other two axes do not
// collide, so a box can slide flush along a wall.
func clipAgainstBlock(box AABB, axis int, d float64, blockMin [3]float64) float64 {
	for a := 0; a < 3; a++ {
		if a == axis {
			continue
		}
		if box.Max[a] <= blockMin[a] || box.Min[a] >= blockMin[a]+1 {
			return d
		}
	}

	if d > 0 && box.Max[axis] <= blockMin[axis] {
		if gap := blockMin[axis] - box.Max[axis]; gap < d {
			d = gap
		}
	} else if d < 0 && box.Min[axis] >= blockMin[axis]+1 {
		if gap := blockMin[axis] + 1 - box.Min[axis]; gap > d {
			d = gap
		}
	}
	return d
}
