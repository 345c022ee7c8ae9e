package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Sound is a handle to one decoded, playable sound owned by an Engine
// Handles are created by Engine.Load and become dead after Engine.Unload
type Sound struct {
	engine *Engine
	name   string
	format beep.Format
	length float64

	emitter Emitter // guarded by engine.mu
	voice   *voice  // guarded by the device lock
}

// Name returns the path or name the sound was loaded from
func (s *Sound) Name() string { return s.name }

// Format returns the decoded source format
func (s *Sound) Format() beep.Format { return s.format }

// Length returns the duration in seconds
func (s *Sound) Length() float64 { return s.length }

// Duration returns the length as a time.Duration
func (s *Sound) Duration() time.Duration { return secondsToDuration(s.length) }

// IsPlaying reports whether the sound is currently producing output
func (s *Sound) IsPlaying() bool { return s.engine.isPlaying(s) }

// State returns the lifecycle state
func (s *Sound) State() State { return s.engine.state(s) }

// Cursor returns the playback position in seconds
func (s *Sound) Cursor() float64 { return s.engine.cursor(s) }

// scaledEmitter returns the emitter with master volume folded into Volume
func (s *Sound) scaledEmitter(master float64) Emitter {
	em := s.emitter
	em.Volume *= master
	return em
}

func secondsToDuration(sec float64) time.Duration {
	if math.IsNaN(sec) || sec <= 0 {
		return 0
	}
	return time.Duration(sec * float64(time.Second))
}
