package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// epsilon below which a vector length counts as zero
const epsilon = 1e-6

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// safeNormalize returns v scaled to unit length, or fallback when v is too
// short to carry a direction.
func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < epsilon || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return fallback
	}
	return v.Mul(1 / l)
}

// planeLineIntersection intersects the plane through p with normal n and the
// line through a and b. It reports false when the line is parallel to the
// plane.
func planeLineIntersection(n, p, a, b mgl32.Vec3) (mgl32.Vec3, bool) {
	n = safeNormalize(n, mgl32.Vec3{})
	ba := b.Sub(a)
	nDotBA := n.Dot(ba)
	if math32.Abs(nDotBA) < epsilon {
		return mgl32.Vec3{}, false
	}
	t := (n.Dot(p) - n.Dot(a)) / nDotBA
	return a.Add(ba.Mul(t)), true
}

func axis(i int, sign float32) mgl32.Vec3 {
	var v mgl32.Vec3
	v[i] = sign
	return v
}
