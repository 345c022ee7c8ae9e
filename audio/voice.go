package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// voice is the playback chain for one sound:
//
//	mixer <- voice (gain, drain detection) <- Ctrl (pause) <- Pan <- Resampler (rate, doppler) <- source
//
// Every field is touched by the device goroutine; callers hold the device lock
type voice struct {
	source    beep.StreamSeekCloser
	baseRatio float64 // source rate / output rate
	quality   int

	resampler *beep.Resampler
	pan       *effects.Pan
	ctrl      *beep.Ctrl

	gain     float64
	pitch    float64
	started  bool // Play was called at least once
	drained  bool // source ran out
	attached bool // currently owned by the mixer
	released bool
}

func newVoice(source beep.StreamSeekCloser, sourceRate, outputRate beep.SampleRate, quality int) *voice {
	v := &voice{
		source:    source,
		baseRatio: float64(sourceRate) / float64(outputRate),
		quality:   quality,
		gain:      1,
		pitch:     1,
	}
	v.build()
	return v
}

// build (re)creates the chain above the source; resamplers do not recover once drained
func (v *voice) build() {
	v.resampler = beep.ResampleRatio(v.quality, v.baseRatio*v.pitch, v.source)
	pan := 0.0
	if v.pan != nil {
		pan = v.pan.Pan
	}
	v.pan = &effects.Pan{Streamer: v.resampler, Pan: pan}
	v.ctrl = &beep.Ctrl{Streamer: v.pan, Paused: true}
}

// seek moves the source cursor and rebuilds the chain, keeping pause state
func (v *voice) seek(pos int) error {
	if err := v.source.Seek(pos); err != nil {
		return err
	}
	paused := v.ctrl.Paused
	v.build()
	v.ctrl.Paused = paused
	v.drained = false
	return nil
}

func (v *voice) apply(m Mix) {
	v.gain = m.Gain
	v.pan.Pan = m.Pan
	if m.Pitch > 0 && m.Pitch != v.pitch {
		v.pitch = m.Pitch
		v.resampler.SetRatio(v.baseRatio * v.pitch)
	}
}

func (v *voice) playing() bool {
	return v.attached && !v.drained && !v.ctrl.Paused
}

func (v *voice) state() State {
	switch {
	case v.released:
		return StateUnloaded
	case v.playing():
		return StatePlaying
	case v.started:
		return StateStopped
	default:
		return StateLoaded
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.released || v.drained {
		v.attached = false
		return 0, false
	}

	n, ok = v.ctrl.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}

	if !ok {
		// Mixer drops drained streamers
		v.drained = true
		v.attached = false
	}
	return n, ok
}

func (v *voice) Err() error {
	return v.source.Err()
}
