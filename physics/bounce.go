package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounce resolves a contact between two overlapping bodies and reports
// whether an impulse was exchanged. Both velocities are updated before any
// hit handler runs.
//
// Two moving bodies that already exchanged an impulse with each other are
// skipped until one of them touches something else. A moving body pressed
// against an immovable one is reflected on every call.
func Bounce(self, other *Body, now float32) bool {
	if !self.motion.Active && !other.motion.Active {
		return false
	}
	mutual := self.mutuallyContacted(other)
	if mutual && self.motion.Active && other.motion.Active {
		return false
	}

	n, ok := ContactNormal(self.shape, other.shape)
	if !ok {
		return false
	}
	n = safeNormalize(n, Up)

	switch {
	case !self.motion.Active:
		other.motion.Velocity = reflectAgainst(other.motion.Velocity, n)
	case !other.motion.Active:
		self.motion.Velocity = reflectAgainst(self.motion.Velocity, n.Mul(-1))
	default:
		m1, m2 := self.Mass(), other.Mass()
		a1 := self.motion.Velocity.Dot(n)
		a2 := other.motion.Velocity.Dot(n)
		p := 2 * (a1 - a2) / (m1 + m2)

		self.motion.Velocity = self.motion.Velocity.Sub(n.Mul(p * m2))
		other.motion.Velocity = other.motion.Velocity.Add(n.Mul(p * m1))
	}

	if !mutual {
		e := math32.Max(self.motion.Restitution, other.motion.Restitution)
		if self.motion.Active {
			self.motion.Velocity = self.motion.Velocity.Mul(e)
		}
		if other.motion.Active {
			other.motion.Velocity = other.motion.Velocity.Mul(e)
		}
	}

	self.notifyHit(other.id, now)
	other.notifyHit(self.id, now)

	self.setContact(other.id)
	other.setContact(self.id)
	return true
}

// reflectAgainst flips the part of v that points against n.
func reflectAgainst(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * math32.Min(0, v.Dot(n))))
}
