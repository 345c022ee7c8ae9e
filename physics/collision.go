package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/zeminka/vmath"
)

// Sentinel errors
var (
	ErrInvalidMass = errors.New("mass must be positive and finite")
	ErrNilVelocity = errors.New("velocity pointer is nil")
)

// Friction presets, applied as friction^dt to both bodies
const (
	FrictionIce    = 1.0 // no decay
	FrictionGround = 0.0 // full decay for any dt > 0
)

func validMass(m float64) bool {
	return m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}

// Exchange computes post-contact velocities for two bodies
// Both velocities are first damped by friction^dt, then each body takes the
// other's damped velocity weighted by the other's mass over its own:
//
//	v1' = (v2d - v1d) * m2/m1 + v1d
//	v2' = (v1d - v2d) * m1/m2 + v2d
//
// Not a physically derived elastic response and no contact test is made here.
// Returns ErrInvalidMass with the inputs unchanged when either mass is not
// positive and finite
func Exchange(m1 float64, v1 mgl64.Vec3, m2 float64, v2 mgl64.Vec3, friction, dt float64) (mgl64.Vec3, mgl64.Vec3, error) {
	if !validMass(m1) || !validMass(m2) {
		return v1, v2, ErrInvalidMass
	}

	f := vmath.DampFactor(friction, dt)
	v1d := v1.Mul(f)
	v2d := v2.Mul(f)

	n1 := v2d.Sub(v1d).Mul(m2 / m1).Add(v1d)
	n2 := v1d.Sub(v2d).Mul(m1 / m2).Add(v2d)
	return n1, n2, nil
}

// Resolve applies Exchange to v1 and v2 in place
// Velocities are left untouched on error
func Resolve(m1 float64, v1 *mgl64.Vec3, m2 float64, v2 *mgl64.Vec3, friction, dt float64) error {
	if v1 == nil || v2 == nil {
		return ErrNilVelocity
	}
	n1, n2, err := Exchange(m1, *v1, m2, *v2, friction, dt)
	if err != nil {
		return err
	}
	*v1, *v2 = n1, n2
	return nil
}

// Momentum returns m*v
func Momentum(m float64, v mgl64.Vec3) mgl64.Vec3 {
	return v.Mul(m)
}
