package sandbox

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/zeminka/audio"
	"github.com/lixenwraith/zeminka/physics"
	"github.com/lixenwraith/zeminka/vmath"
)

// fakePlayer records calls instead of producing sound
type fakePlayer struct {
	plays     int
	positions []mgl64.Vec3
	listener  mgl64.Vec3
	master    float64
	playErr   error
}

func (p *fakePlayer) Load(path string) (*audio.Sound, error) { return &audio.Sound{}, nil }

func (p *fakePlayer) Play(s *audio.Sound) error {
	p.plays++
	return p.playErr
}

func (p *fakePlayer) Stop(s *audio.Sound) error                       { return nil }
func (p *fakePlayer) SetVolume(s *audio.Sound, vol float64) error     { return nil }
func (p *fakePlayer) SetDirection(s *audio.Sound, d mgl64.Vec3) error { return nil }
func (p *fakePlayer) SetVelocity(s *audio.Sound, v mgl64.Vec3) error  { return nil }
func (p *fakePlayer) Unload(s *audio.Sound) error                     { return nil }

func (p *fakePlayer) SetPosition(s *audio.Sound, pos mgl64.Vec3) error {
	p.positions = append(p.positions, pos)
	return nil
}

func (p *fakePlayer) SetListenerPosition(pos mgl64.Vec3) { p.listener = pos }
func (p *fakePlayer) SetMasterVolume(vol float64)        { p.master = vol }
func (p *fakePlayer) MasterVolume() float64              { return p.master }

var _ audio.Player = (*fakePlayer)(nil)

// testConfig is a frictionless 60x20 rink without drag
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Bodies = 0
	cfg.Drag = 1
	return cfg
}

func box(x, y float64) vmath.BBox {
	return vmath.NewBBox(vmath.V3(x, y, 1), vmath.V3(2, 2, 2))
}

// headOn returns a world with two equal boxes about to collide along X
func headOn(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(testConfig(), opts...)
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(10, 10), Velocity: vmath.V3(5, 0, 0), Mass: 1})
	w.AddBody(physics.Body{Box: box(12.5, 10), Velocity: vmath.V3(-5, 0, 0), Mass: 1})
	return w
}

// newSimScreen returns a screen mapping one cell per world unit plus a status row
func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 21)
	t.Cleanup(screen.Fini)
	return screen
}
