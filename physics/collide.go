package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Collides runs the narrow-phase test for a pair of shapes.
func Collides(a, b Shape) bool {
	switch a := a.(type) {
	case *Sphere:
		switch b := b.(type) {
		case *Sphere:
			return sphereSphere(a, b)
		case *Box:
			return sphereBox(a, b)
		}
	case *Box:
		switch b := b.(type) {
		case *Sphere:
			return sphereBox(b, a)
		case *Box:
			return a.Bounds().Overlaps(b.Bounds())
		}
	}
	return false
}

func sphereSphere(a, b *Sphere) bool {
	return a.center.Sub(b.center).Len() <= a.radius+b.radius
}

// sphereBox clamps the sphere center into the box. Unlike sphereSphere the
// comparison is strict.
func sphereBox(s *Sphere, b *Box) bool {
	var closest mgl32.Vec3
	for i := 0; i < 3; i++ {
		closest[i] = clamp(s.center[i], b.center[i]-b.halfWidths[i], b.center[i]+b.halfWidths[i])
	}
	return closest.Sub(s.center).Len() < s.radius
}

// ContactNormal returns the unit contact normal pointing from self toward
// other. ok is false when the geometry gives no usable direction, which only
// happens for a sphere whose center lies inside a box.
func ContactNormal(self, other Shape) (n mgl32.Vec3, ok bool) {
	switch s := self.(type) {
	case *Sphere:
		switch o := other.(type) {
		case *Sphere:
			return safeNormalize(o.center.Sub(s.center), Up), true
		case *Box:
			n, ok := boxSphereNormal(o, s)
			return n.Mul(-1), ok
		}
	case *Box:
		switch o := other.(type) {
		case *Sphere:
			return boxSphereNormal(s, o)
		case *Box:
			return boxBoxNormal(o, s).Mul(-1), true
		}
	}
	return mgl32.Vec3{}, false
}

// boxFaces is the face enumeration order; on equal distance the earlier face
// wins.
var boxFaces = [6]struct {
	axis int
	sign float32
}{
	{0, 1}, {0, -1},
	{1, 1}, {1, -1},
	{2, 1}, {2, -1},
}

// boxSphereNormal picks the face of b that the segment from the box center to
// the sphere center leaves through first.
func boxSphereNormal(b *Box, s *Sphere) (mgl32.Vec3, bool) {
	best := math32.Inf(1)
	var bestN mgl32.Vec3
	found := false

	for _, f := range boxFaces {
		n := axis(f.axis, f.sign)
		onFace := b.center.Add(axis(f.axis, f.sign*b.halfWidths[f.axis]))
		p, ok := planeLineIntersection(n, onFace, b.center, s.center)
		if !ok {
			continue
		}
		toCenter := b.center.Sub(p)
		dst := toCenter.Len()
		if toCenter.Dot(s.center.Sub(p)) < 0 && dst < best {
			best = dst
			bestN = n
			found = true
		}
	}
	return bestN, found
}

// boxBoxNormal returns the signed axis whose facing faces are closest,
// scanning +x, +y, +z then -x, -y, -z. ContactNormal evaluates it from the
// other box and negates the result, so from self's side ties resolve to
// -x, -y, -z first.
func boxBoxNormal(a, b *Box) mgl32.Vec3 {
	best := math32.Inf(1)
	var bestN mgl32.Vec3

	for _, sign := range [2]float32{1, -1} {
		for i := 0; i < 3; i++ {
			near := a.center[i] + sign*a.halfWidths[i]
			far := b.center[i] - sign*b.halfWidths[i]
			if gap := math32.Abs(near - far); gap < best {
				best = gap
				bestN = axis(i, sign)
			}
		}
	}
	return bestN
}
