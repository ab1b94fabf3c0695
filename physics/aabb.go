package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box stored as center and halfwidths.
type AABB struct {
	Center     mgl32.Vec3
	HalfWidths mgl32.Vec3
}

func NewAABB(center, halfWidths mgl32.Vec3) AABB {
	return AABB{Center: center, HalfWidths: halfWidths}
}

// AABBFromPoints returns the tightest box around points. An empty cloud yields
// a zero-volume box at the origin.
func AABBFromPoints(points []mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], p[i])
			hi[i] = math32.Max(hi[i], p[i])
		}
	}

	var box AABB
	for i := 0; i < 3; i++ {
		box.Center[i] = (lo[i] + hi[i]) / 2
		box.HalfWidths[i] = (hi[i] - lo[i]) / 2
	}
	return box
}

// Overlaps is symmetric and boundary-inclusive: touching boxes overlap.
func (a AABB) Overlaps(other AABB) bool {
	for i := 0; i < 3; i++ {
		if math32.Abs(a.Center[i]-other.Center[i]) > a.HalfWidths[i]+other.HalfWidths[i] {
			return false
		}
	}
	return true
}

func (a *AABB) Recenter(center mgl32.Vec3) {
	a.Center = center
}

func (a *AABB) ApplyScale(scale mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		a.HalfWidths[i] *= scale[i]
	}
}

func (a AABB) Min() mgl32.Vec3 { return a.Center.Sub(a.HalfWidths) }
func (a AABB) Max() mgl32.Vec3 { return a.Center.Add(a.HalfWidths) }

// MaxExtent is the largest full width of the box along any axis.
func (a AABB) MaxExtent() float32 {
	hw := a.HalfWidths
	return 2 * math32.Max(math32.Max(hw.X(), hw.Y()), hw.Z())
}
