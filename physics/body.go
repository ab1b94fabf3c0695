package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a body within an Arena. IDs are handed out in increasing
// order and never reused.
type ID uint32

// HitHandler reacts to a resolved contact. It runs inside the collision pass,
// after velocities are updated and before the last-contact ids are
// overwritten, so self.LastContact still reports the previous partner.
type HitHandler interface {
	OnHit(self *Body, other ID, now float32)
}

type HitHandlerFunc func(self *Body, other ID, now float32)

func (f HitHandlerFunc) OnHit(self *Body, other ID, now float32) {
	f(self, other, now)
}

// Material is the surface tag the renderer shades a body with.
type Material struct {
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

func DefaultMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec3{0.3, 0.3, 0.3},
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Specular:  mgl32.Vec3{1, 1, 1},
		Shininess: 40,
	}
}

type Body struct {
	id       ID
	shape    Shape
	aabb     AABB
	motion   Motion
	material Material

	lastContact ID
	hasContact  bool

	expiresAt float32
	maxScale  float32
	onHit     HitHandler
}

type BodyOption func(*Body)

func WithMaterial(m Material) BodyOption {
	return func(b *Body) { b.material = m }
}

func WithHitHandler(h HitHandler) BodyOption {
	return func(b *Body) { b.onHit = h }
}

func WithExpiration(t float32) BodyOption {
	return func(b *Body) { b.expiresAt = t }
}

// WithMaxScale overrides the texture tiling scale derived from the bounds.
func WithMaxScale(s float32) BodyOption {
	return func(b *Body) { b.maxScale = s }
}

// NewBody creates a body that has not been placed in an arena yet; its ID is
// assigned on insertion.
func NewBody(shape Shape, motion Motion, opts ...BodyOption) *Body {
	if !motion.Active {
		motion.Velocity = mgl32.Vec3{}
	}
	b := &Body{
		shape:     shape,
		aabb:      shape.Bounds(),
		motion:    motion,
		material:  DefaultMaterial(),
		expiresAt: math32.Inf(1),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Body) ID() ID              { return b.id }
func (b *Body) Shape() Shape        { return b.shape }
func (b *Body) Kind() Kind          { return b.shape.Kind() }
func (b *Body) AABB() AABB          { return b.aabb }
func (b *Body) Motion() Motion      { return b.motion }
func (b *Body) Material() Material  { return b.material }
func (b *Body) Center() mgl32.Vec3  { return b.shape.Center() }
func (b *Body) Mass() float32       { return b.shape.Mass() }
func (b *Body) IsActive() bool      { return b.motion.Active }
func (b *Body) ExpiresAt() float32  { return b.expiresAt }
func (b *Body) Handler() HitHandler { return b.onHit }

// Velocity is always zero for an inactive body.
func (b *Body) Velocity() mgl32.Vec3 {
	if !b.motion.Active {
		return mgl32.Vec3{}
	}
	return b.motion.Velocity
}

// SetVelocity is ignored for immovable bodies.
func (b *Body) SetVelocity(v mgl32.Vec3) {
	if b.motion.Active {
		b.motion.Velocity = v
	}
}

// Activate lets an immovable body start moving, starting from rest.
func (b *Body) Activate() {
	b.motion.Activate()
}

// LastContact reports the body this one most recently exchanged an impulse
// with.
func (b *Body) LastContact() (ID, bool) {
	return b.lastContact, b.hasContact
}

func (b *Body) IsExpired(now float32) bool {
	return b.expiresAt <= now
}

func (b *Body) SetExpiration(t float32) {
	b.expiresAt = t
}

func (b *Body) MaxScale() float32 {
	if b.maxScale > 0 {
		return b.maxScale
	}
	return b.aabb.MaxExtent()
}

// Collides runs the broad phase on the bounding boxes, then the exact test.
func (b *Body) Collides(other *Body) bool {
	return b.aabb.Overlaps(other.aabb) && Collides(b.shape, other.shape)
}

// UpdateGeometry applies gravity, moves an active body by its velocity and
// returns the model matrix for rendering.
func (b *Body) UpdateGeometry(dt float32) mgl32.Mat4 {
	if b.motion.Active {
		b.motion.ApplyGravity(dt)
		center := b.motion.IntegratePosition(dt, b.shape.Center())
		b.shape.setCenter(center)
		b.aabb.Recenter(center)
	}
	return b.shape.Model()
}

func (b *Body) Transform() Transform {
	return Transform{
		ID:       b.id,
		Kind:     b.shape.Kind(),
		Model:    b.shape.Model(),
		Center:   b.shape.Center(),
		MaxScale: b.MaxScale(),
		Active:   b.motion.Active,
	}
}

func (b *Body) mutuallyContacted(other *Body) bool {
	return b.hasContact && other.hasContact && b.lastContact == other.id && other.lastContact == b.id
}

func (b *Body) notifyHit(other ID, now float32) {
	if b.onHit != nil {
		b.onHit.OnHit(b, other, now)
	}
}

func (b *Body) setContact(other ID) {
	b.lastContact = other
	b.hasContact = true
}

// Transform is what the renderer needs to draw one body for a frame.
type Transform struct {
	ID       ID
	Kind     Kind
	Model    mgl32.Mat4
	Center   mgl32.Vec3
	MaxScale float32
	Active   bool
}
