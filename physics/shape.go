package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minExtent keeps shapes from collapsing to zero size.
const minExtent float32 = 0.001

type Kind int

const (
	KindSphere Kind = iota
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is the closed set of collision shapes: *Sphere and *Box.
type Shape interface {
	Kind() Kind
	Center() mgl32.Vec3
	Mass() float32
	Bounds() AABB
	Model() mgl32.Mat4

	setCenter(c mgl32.Vec3)
}

type Sphere struct {
	center mgl32.Vec3
	radius float32
}

func NewSphere(center mgl32.Vec3, radius float32) *Sphere {
	return &Sphere{center: center, radius: math32.Max(radius, minExtent)}
}

func (s *Sphere) Kind() Kind             { return KindSphere }
func (s *Sphere) Center() mgl32.Vec3     { return s.center }
func (s *Sphere) Radius() float32        { return s.radius }
func (s *Sphere) setCenter(c mgl32.Vec3) { s.center = c }

func (s *Sphere) Mass() float32 {
	return 4.0 / 3.0 * math32.Pi * s.radius * s.radius * s.radius
}

func (s *Sphere) Bounds() AABB {
	return NewAABB(s.center, mgl32.Vec3{s.radius, s.radius, s.radius})
}

// Model places a unit sphere mesh at the center scaled to the radius.
func (s *Sphere) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.center.X(), s.center.Y(), s.center.Z()).
		Mul4(mgl32.Scale3D(s.radius, s.radius, s.radius))
}

// Box is an axis-aligned box. Scale is the render scale applied to its mesh;
// it does not take part in collision.
type Box struct {
	center     mgl32.Vec3
	halfWidths mgl32.Vec3
	scale      mgl32.Vec3
}

// NewBox builds a box around a unit cube mesh spanning [-1, 1] on each axis.
func NewBox(center, halfWidths mgl32.Vec3) *Box {
	hw := clampExtents(halfWidths)
	return &Box{center: center, halfWidths: hw, scale: hw}
}

// NewBoxFromMesh sizes a box from the bounding box of mesh vertices scaled by
// scale and moved to center.
func NewBoxFromMesh(points []mgl32.Vec3, center, scale mgl32.Vec3) *Box {
	bounds := AABBFromPoints(points)
	bounds.Recenter(center)
	bounds.ApplyScale(scale)
	return &Box{center: center, halfWidths: clampExtents(bounds.HalfWidths), scale: scale}
}

func (b *Box) Kind() Kind             { return KindBox }
func (b *Box) Center() mgl32.Vec3     { return b.center }
func (b *Box) HalfWidths() mgl32.Vec3 { return b.halfWidths }
func (b *Box) Scale() mgl32.Vec3      { return b.scale }
func (b *Box) setCenter(c mgl32.Vec3) { b.center = c }
func (b *Box) Bounds() AABB           { return NewAABB(b.center, b.halfWidths) }

func (b *Box) Mass() float32 {
	return 8 * b.halfWidths.X() * b.halfWidths.Y() * b.halfWidths.Z()
}

func (b *Box) Model() mgl32.Mat4 {
	return mgl32.Translate3D(b.center.X(), b.center.Y(), b.center.Z()).
		Mul4(mgl32.Scale3D(b.scale.X(), b.scale.Y(), b.scale.Z()))
}

func clampExtents(v mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		v[i] = math32.Max(v[i], minExtent)
	}
	return v
}
