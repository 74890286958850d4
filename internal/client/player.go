package client

import (
	"github.com/go-gl/mathgl/mgl64"

	"blockworld/internal/physics"
)

// Player is the locally simulated player: an axis-aligned bounding volume
// with a fixed extent, plus the view orientation consumed by the render
// collaborator.
type Player struct {
	// Pos is the minimum corner of the bounding volume, in block units.
	Pos mgl64.Vec3
	// Size is the fixed box extent.
	Size mgl64.Vec3
	// Yaw and Pitch are the view angles in radians.
	Yaw, Pitch float64
}

// DefaultPlayerSize matches the classic sandbox player volume.
var DefaultPlayerSize = mgl64.Vec3{0.8, 1.8, 0.8}

// Box returns the player's current bounding volume.
func (p *Player) Box() physics.AABB {
	return physics.NewAABB(p.Pos, p.Size)
}

// EyePos returns the camera position: centered horizontally, near the top
// of the volume.
func (p *Player) EyePos() mgl64.Vec3 {
	return mgl64.Vec3{
		p.Pos[0] + p.Size[0]/2,
		p.Pos[1] + p.Size[1]*0.9,
		p.Pos[2] + p.Size[2]/2,
	}
}
