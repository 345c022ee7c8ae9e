package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/zeminka/vmath"
)

// Body is a box-shaped rigid body without rotation
type Body struct {
	Box      vmath.BBox
	Velocity mgl64.Vec3
	Mass     float64
}

// Integrate advances position by velocity: p = p + v*dt
func Integrate(b *Body, dt float64) {
	b.Box.Center = b.Box.Center.Add(b.Velocity.Mul(dt))
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(b *Body, dv mgl64.Vec3) {
	b.Velocity = b.Velocity.Add(dv)
}

// SetImpulse overrides velocity (hard redirect)
func SetImpulse(b *Body, v mgl64.Vec3) {
	b.Velocity = v
}

// ReflectBounds keeps the body inside bounds, flipping velocity on each axis
// where a face crossed the boundary. Axes where bounds are narrower than the
// body are centered and left unreflected. Returns true if any reflection occurred
func ReflectBounds(b *Body, bounds vmath.BBox) bool {
	lo, hi := bounds.Min(), bounds.Max()
	half := b.Box.HalfExtents()
	reflected := false

	for i := 0; i < 3; i++ {
		minC := lo[i] + half[i]
		maxC := hi[i] - half[i]
		if minC > maxC {
			b.Box.Center[i] = bounds.Center[i]
			continue
		}
		if b.Box.Center[i] < minC {
			b.Box.Center[i] = minC
			if b.Velocity[i] < 0 {
				b.Velocity[i] = -b.Velocity[i]
			}
			reflected = true
		} else if b.Box.Center[i] > maxC {
			b.Box.Center[i] = maxC
			if b.Velocity[i] > 0 {
				b.Velocity[i] = -b.Velocity[i]
			}
			reflected = true
		}
	}
	return reflected
}

// Separate pushes overlapping bodies apart along the minimum penetration axis
// Each body moves by the other's share of the total mass, so the lighter one
// moves further. Returns false when the boxes do not overlap
func Separate(a, b *Body) bool {
	mtv := vmath.Penetration(a.Box, b.Box)
	if mtv == (mgl64.Vec3{}) {
		return false
	}
	if !validMass(a.Mass) || !validMass(b.Mass) {
		// Split evenly when masses are unusable
		a.Box = a.Box.Translate(mtv.Mul(0.5))
		b.Box = b.Box.Translate(mtv.Mul(-0.5))
		return true
	}

	total := a.Mass + b.Mass
	a.Box = a.Box.Translate(mtv.Mul(b.Mass / total))
	b.Box = b.Box.Translate(mtv.Mul(-a.Mass / total))
	return true
}

// Contact describes a resolved collision between two bodies
type Contact struct {
	Point  mgl64.Vec3 // center of the overlap region before separation
	Normal mgl64.Vec3 // unit axis the first body was pushed along
}

// Collide tests a against b and, when they overlap while approaching along the
// push-out axis, exchanges momentum and separates them. Touching boxes (zero
// depth) are not a contact. Overlapping boxes already moving apart are only
// separated and report no contact, so a resolved pair never retriggers.
// On ErrInvalidMass the bodies are still separated but velocities are unchanged
func Collide(a, b *Body, friction, dt float64) (Contact, bool, error) {
	region, ok := vmath.Intersection(a.Box, b.Box)
	if !ok {
		return Contact{}, false, nil
	}
	mtv := vmath.Penetration(a.Box, b.Box)
	if mtv == (mgl64.Vec3{}) {
		return Contact{}, false, nil
	}

	// n points the way a is pushed; approaching means a moves toward b along -n
	n := vmath.V3Normalize(mtv)
	if !Approaching(a.Velocity, b.Velocity, n) {
		Separate(a, b)
		return Contact{}, false, nil
	}

	contact := Contact{Point: region.Center, Normal: n}
	err := Resolve(a.Mass, &a.Velocity, b.Mass, &b.Velocity, friction, dt)
	Separate(a, b)
	return contact, true, err
}

// Approaching reports whether velocities va and vb close the gap along normal n,
// where n points from b toward a
func Approaching(va, vb, n mgl64.Vec3) bool {
	return va.Sub(vb).Dot(n) < 0
}
