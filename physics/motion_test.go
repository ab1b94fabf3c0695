package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMotion_NewNormalizesDirection(t *testing.T) {
	m := NewMotion(mgl32.Vec3{0, 0, 10}, 4)

	assert.True(t, m.Active)
	assert.Equal(t, float32(1), m.Restitution)
	assert.InDelta(t, 4, m.Velocity.Z(), 1e-6)
	assert.InDelta(t, 4, m.Speed(), 1e-6)
}

func TestMotion_ZeroDirection(t *testing.T) {
	m := NewMotion(mgl32.Vec3{}, 3)
	assert.Equal(t, mgl32.Vec3{}, m.Velocity)
}

func TestMotion_RestitutionIsClamped(t *testing.T) {
	assert.Equal(t, float32(1), NewMotionWithRestitution(mgl32.Vec3{1, 0, 0}, 1, 3).Restitution)
	assert.Equal(t, float32(0), NewMotionWithRestitution(mgl32.Vec3{1, 0, 0}, 1, -1).Restitution)
}

func TestMotion_ApplyGravity(t *testing.T) {
	m := NewMotion(mgl32.Vec3{1, 0, 0}, 2)
	m.ApplyGravity(0.5)

	assert.InDelta(t, 2, m.Velocity.X(), 1e-6)
	assert.InDelta(t, -1.5, m.Velocity.Y(), 1e-6)

	s := Static()
	s.ApplyGravity(10)
	assert.Equal(t, mgl32.Vec3{}, s.Velocity)
}

func TestMotion_IntegratePosition(t *testing.T) {
	m := NewMotion(mgl32.Vec3{0, 1, 0}, 2)
	next := m.IntegratePosition(0.25, mgl32.Vec3{1, 1, 1})

	assert.InDelta(t, 1.5, next.Y(), 1e-6)
	assert.InDelta(t, 1, next.X(), 1e-6)
}

func TestMotion_Activate(t *testing.T) {
	m := Static()
	assert.False(t, m.Active)

	m.Activate()
	assert.True(t, m.Active)
	assert.Equal(t, mgl32.Vec3{}, m.Velocity)

	m.ApplyGravity(1)
	assert.InDelta(t, -GravityAcceleration, m.Velocity.Y(), 1e-6)
}
