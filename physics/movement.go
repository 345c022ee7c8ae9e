package physics

import (
	"github.com/lixenwraith/zeminka/vmath"
)

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(b *Body, maxSpeed float64) bool {
	if vmath.V3MagSq(b.Velocity) <= maxSpeed*maxSpeed {
		return false
	}
	b.Velocity = vmath.V3ClampMagnitude(b.Velocity, maxSpeed)
	return true
}

// Damp applies frame-rate independent decay: v = v * friction^dt
func Damp(b *Body, friction, dt float64) {
	b.Velocity = vmath.V3DampDt(b.Velocity, friction, dt)
}
