package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// V3 builds a vector from components
func V3(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

// V3Normalize returns the unit vector, zero-safe
func V3Normalize(v mgl64.Vec3) mgl64.Vec3 {
	mag := v.Len()
	if mag == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1.0 / mag)
}

// V3MagSq returns squared length without sqrt
func V3MagSq(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

// V3IsFinite reports whether no component is NaN or Inf
func V3IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// V3ClampMagnitude limits vector length to maxMag while preserving direction
func V3ClampMagnitude(v mgl64.Vec3, maxMag float64) mgl64.Vec3 {
	magSq := V3MagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return V3Normalize(v).Mul(maxMag)
}

// DampFactor returns the frame-rate independent decay multiplier factor^dt
// factor: decay rate per second (1 = no decay, 0 = full decay)
func DampFactor(factor, dt float64) float64 {
	return math.Pow(factor, dt)
}

// V3DampDt applies frame-rate independent damping: v * factor^dt
func V3DampDt(v mgl64.Vec3, factor, dt float64) mgl64.Vec3 {
	return v.Mul(DampFactor(factor, dt))
}

// V3Min returns the component-wise minimum
func V3Min(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// V3Max returns the component-wise maximum
func V3Max(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
