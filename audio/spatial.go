package audio

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/zeminka/vmath"
)

// Listener is the point of view sounds are rendered for
type Listener struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3 // forward
	Velocity  mgl64.Vec3
	WorldUp   mgl64.Vec3
}

// DefaultListener sits at the origin looking down -Z with +Y up
func DefaultListener() Listener {
	return Listener{
		Direction: mgl64.Vec3{0, 0, -1},
		WorldUp:   mgl64.Vec3{0, 1, 0},
	}
}

// Emitter is the per-sound spatial state
type Emitter struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3 // zero = omnidirectional
	Velocity  mgl64.Vec3
	Volume    float64
	Spatial   bool
}

func defaultEmitter() Emitter {
	return Emitter{Volume: 1, Spatial: true}
}

// Mix is the rendered result for one emitter
type Mix struct {
	Gain  float64 // linear, includes volume
	Pan   float64 // -1 left .. 1 right
	Pitch float64 // playback rate multiplier
}

// Apply renders emitter e as heard by listener l
func (s SpatialConfig) Apply(l Listener, e Emitter) Mix {
	if !e.Spatial {
		return Mix{Gain: e.Volume, Pan: 0, Pitch: 1}
	}
	return Mix{
		Gain:  e.Volume * s.Attenuation(l, e) * s.ConeGain(l, e),
		Pan:   s.Pan(l, e),
		Pitch: s.Doppler(l, e),
	}
}

// Attenuation returns inverse distance gain: min / (min + rolloff*(d-min))
// with d clamped to [min, max]
func (s SpatialConfig) Attenuation(l Listener, e Emitter) float64 {
	d := e.Position.Sub(l.Position).Len()

	maxD := s.MaxDistance
	if maxD <= 0 {
		maxD = math.Inf(1)
	}
	d = vmath.Clamp(d, s.MinDistance, maxD)

	denom := s.MinDistance + s.Rolloff*(d-s.MinDistance)
	if denom <= 0 {
		return 1
	}
	return s.MinDistance / denom
}

// Pan projects the listener-relative direction onto the listener's right axis
func (s SpatialConfig) Pan(l Listener, e Emitter) float64 {
	rel := e.Position.Sub(l.Position)
	if rel.Len() == 0 {
		return 0
	}
	right := vmath.V3Normalize(l.Direction.Cross(l.WorldUp))
	return vmath.Clamp(vmath.V3Normalize(rel).Dot(right), -1, 1)
}

// ConeGain attenuates sounds whose direction points away from the listener
// Full gain inside ConeInner/2 of the emitter axis, ConeOuterGain past
// ConeOuter/2, linear in between
func (s SpatialConfig) ConeGain(l Listener, e Emitter) float64 {
	if s.ConeInner >= 2*math.Pi || e.Direction.Len() == 0 {
		return 1
	}
	toListener := l.Position.Sub(e.Position)
	if toListener.Len() == 0 {
		return 1
	}

	cosAngle := vmath.Clamp(vmath.V3Normalize(e.Direction).Dot(vmath.V3Normalize(toListener)), -1, 1)
	angle := math.Acos(cosAngle)

	inner := s.ConeInner / 2
	outer := s.ConeOuter / 2
	switch {
	case angle <= inner:
		return 1
	case angle >= outer || outer <= inner:
		return s.ConeOuterGain
	default:
		t := (angle - inner) / (outer - inner)
		return 1 + t*(s.ConeOuterGain-1)
	}
}

// Doppler returns the pitch multiplier (c - k*vl) / (c - k*vs), where vl and vs
// are listener and source velocities projected on the source-to-listener axis
func (s SpatialConfig) Doppler(l Listener, e Emitter) float64 {
	if s.DopplerFactor == 0 || s.SpeedOfSound <= 0 {
		return 1
	}
	axis := l.Position.Sub(e.Position)
	if axis.Len() == 0 {
		return 1
	}
	axis = vmath.V3Normalize(axis)

	// Keep both terms below the speed of sound
	limit := s.SpeedOfSound / s.DopplerFactor
	vl := math.Min(l.Velocity.Dot(axis), limit)
	vs := math.Min(e.Velocity.Dot(axis), limit)

	num := s.SpeedOfSound - s.DopplerFactor*vl
	den := s.SpeedOfSound - s.DopplerFactor*vs
	if den <= 0 {
		return s.MaxPitch
	}
	return vmath.Clamp(num/den, s.MinPitch, s.MaxPitch)
}
