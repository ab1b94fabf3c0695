package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GravityAcceleration is the downward acceleration applied to active bodies,
// in scene units per second squared.
const GravityAcceleration float32 = 3.0

var (
	Down = mgl32.Vec3{0, -1, 0}
	Up   = mgl32.Vec3{0, 1, 0}
)

// Motion is the velocity state of a body. An inactive Motion belongs to an
// immovable body of infinite mass and its velocity stays zero.
type Motion struct {
	Velocity    mgl32.Vec3
	Restitution float32
	Active      bool
}

// NewMotion starts a perfectly elastic body moving along dir at speed.
func NewMotion(dir mgl32.Vec3, speed float32) Motion {
	return NewMotionWithRestitution(dir, speed, 1)
}

func NewMotionWithRestitution(dir mgl32.Vec3, speed, restitution float32) Motion {
	return Motion{
		Velocity:    safeNormalize(dir, mgl32.Vec3{}).Mul(speed),
		Restitution: clamp(restitution, 0, 1),
		Active:      true,
	}
}

// Static is the motion of an immovable body.
func Static() Motion {
	return Motion{}
}

func (m *Motion) ApplyGravity(dt float32) {
	if !m.Active {
		return
	}
	m.Velocity = m.Velocity.Add(Down.Mul(dt * GravityAcceleration))
}

// IntegratePosition moves center by the current velocity over dt.
func (m Motion) IntegratePosition(dt float32, center mgl32.Vec3) mgl32.Vec3 {
	return center.Add(m.Velocity.Mul(dt))
}

// Activate turns an immovable body into a moving one. It cannot be undone.
func (m *Motion) Activate() {
	m.Active = true
}

func (m Motion) Speed() float32 {
	return m.Velocity.Len()
}
