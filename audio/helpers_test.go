package audio

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/require"
)

// memDevice is an in-memory Device; tests pull samples explicitly
type memDevice struct {
	mu       sync.Mutex
	streamer beep.Streamer
	rate     beep.SampleRate
	initErr  error
	inits    int
	closes   int
}

func (d *memDevice) Init(sr beep.SampleRate, bufferSize int) error {
	if d.initErr != nil {
		return d.initErr
	}
	d.rate = sr
	d.inits++
	return nil
}

func (d *memDevice) Play(s beep.Streamer) {
	d.mu.Lock()
	d.streamer = s
	d.mu.Unlock()
}

func (d *memDevice) Lock()   { d.mu.Lock() }
func (d *memDevice) Unlock() { d.mu.Unlock() }

func (d *memDevice) Close() error {
	d.closes++
	return nil
}

// pull streams n samples the way a hardware callback would
func (d *memDevice) pull(n int) [][2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([][2]float64, n)
	if d.streamer != nil {
		d.streamer.Stream(buf)
	}
	return buf
}

func energy(samples [][2]float64) (left, right float64) {
	for _, s := range samples {
		left += math.Abs(s[0])
		right += math.Abs(s[1])
	}
	return left, right
}

func silent(samples [][2]float64) bool {
	l, r := energy(samples)
	return l == 0 && r == 0
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 44100
	return cfg
}

// newTestEngine returns an initialized engine over a memDevice, closed on cleanup
func newTestEngine(t *testing.T) (*Engine, *memDevice) {
	t.Helper()
	dev := &memDevice{}
	e, err := NewEngine(testConfig(), WithDevice(dev))
	require.NoError(t, err)
	require.NoError(t, e.Init())
	t.Cleanup(func() { e.Close() })
	return e, dev
}

// writeWAV encodes a sine tone of the given duration to dir/name
func writeWAV(t *testing.T, dir, name string, rate beep.SampleRate, dur time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	buf := Tone(440, dur, WaveSine, rate)
	require.NoError(t, wav.Encode(f, buf.Streamer(0, buf.Len()), buf.Format()))
	return path
}

// closeTracker records Close on an in-memory stream
type closeTracker struct {
	beep.StreamSeeker
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}
