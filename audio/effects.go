package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the waveform of a synthesized partial
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// at returns the wave value at phase p in [0, 1), always within [-1, 1]
func (w WaveType) at(p float64) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// Partial is one enveloped component of a synthesized sound
type Partial struct {
	Freq    float64
	Wave    WaveType
	Gain    float64       // linear amplitude, 0 is silent
	Attack  time.Duration // ramp up from silence
	Release time.Duration // fade to silence before the end
}

// partialStreamer renders a Partial for a fixed number of frames
type partialStreamer struct {
	wave    WaveType
	step    float64 // phase advance per frame
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func (p Partial) streamer(length time.Duration, rate beep.SampleRate) beep.Streamer {
	ps := &partialStreamer{
		wave:    p.Wave,
		step:    p.Freq / float64(rate),
		total:   rate.N(length),
		attack:  rate.N(p.Attack),
		release: rate.N(p.Release),
	}
	return &effects.Gain{Streamer: ps, Gain: p.Gain - 1}
}

// level is the envelope at frame i; attack and release overlap by taking the lower
func (s *partialStreamer) level(i int) float64 {
	lvl := 1.0
	if i < s.attack {
		lvl = float64(i) / float64(s.attack)
	}
	if left := s.total - i; left < s.release {
		lvl = math.Min(lvl, float64(left)/float64(s.release))
	}
	return lvl
}

func (s *partialStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := min(len(samples), s.total-s.pos)
	for i := range samples[:n] {
		v := s.wave.at(s.phase) * s.level(s.pos)
		samples[i] = [2]float64{v, v}
		s.phase = math.Mod(s.phase+s.step, 1)
		s.pos++
	}
	return n, true
}

func (s *partialStreamer) Err() error { return nil }

// Render drains s into a buffer at the given rate, stereo 16-bit
func Render(s beep.Streamer, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf
}

// Synth mixes partials over a fixed length into a buffer ready for Engine.LoadBuffer
func Synth(length time.Duration, rate beep.SampleRate, partials ...Partial) *beep.Buffer {
	streams := make([]beep.Streamer, 0, len(partials))
	for _, p := range partials {
		streams = append(streams, p.streamer(length, rate))
	}
	return Render(beep.Take(rate.N(length), beep.Mix(streams...)), rate)
}

// Tone renders a single full-scale partial with a short attack and a quarter-length release
func Tone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *beep.Buffer {
	return Synth(duration, rate, Partial{
		Freq:    freq,
		Wave:    wave,
		Gain:    1,
		Attack:  duration / 20,
		Release: duration / 4,
	})
}

// Blip renders the short two-partial knock used for contact sounds
func Blip(rate beep.SampleRate) *beep.Buffer {
	return Synth(120*time.Millisecond, rate,
		Partial{Freq: 220, Wave: WaveSine, Gain: 0.6, Attack: 2 * time.Millisecond, Release: 100 * time.Millisecond},
		Partial{Freq: 660, Wave: WaveTriangle, Gain: 0.15, Attack: 2 * time.Millisecond, Release: 60 * time.Millisecond},
	)
}
