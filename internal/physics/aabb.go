package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box in world block-length units.
type AABB struct {
	Min, Max mgl64.Vec3
}

// NewAABB builds a box from its minimum corner and size.
func NewAABB(min, size mgl64.Vec3) AABB {
	return AABB{Min: min, Max: min.Add(size)}
}

// Size returns the box extents.
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Translated returns the box moved by v.
func (b AABB) Translated(v mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// offsetAxis returns the box moved by d along one axis.
func (b AABB) offsetAxis(axis int, d float64) AABB {
	b.Min[axis] += d
	b.Max[axis] += d
	return b
}

// expandedAxis returns the box grown along one axis in the direction of d,
// covering the volume swept by a move of d.
func (b AABB) expandedAxis(axis int, d float64) AABB {
	if d > 0 {
		b.Max[axis] += d
	} else {
		b.Min[axis] += d
	}
	return b
}

func floorInt(f float64) int64 {
	return int64(math.Floor(f))
}
