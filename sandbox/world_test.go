package sandbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/zeminka/audio"
	"github.com/lixenwraith/zeminka/physics"
	"github.com/lixenwraith/zeminka/vmath"
)

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Friction = 2
	_, err := NewWorld(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStepHeadOnCollision(t *testing.T) {
	w := headOn(t)

	events := w.Step(0.1)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, 0, ev.A)
	assert.Equal(t, 1, ev.B)
	assert.NoError(t, ev.Err)
	assert.InDelta(t, 11.25, ev.Contact.Point.X(), 1e-9)
	assert.Less(t, ev.Contact.Normal.X(), 0.0)

	a, b := w.Body(0), w.Body(1)
	// Equal masses on ice swap velocities
	assert.InDelta(t, -5, a.Velocity.X(), 1e-9)
	assert.InDelta(t, 5, b.Velocity.X(), 1e-9)
	assert.Equal(t, vmath.V3(0, 0, 0), vmath.Penetration(a.Box, b.Box), "bodies must be separated")
	assert.Equal(t, 1, w.Collisions())

	// Moving apart, no further contact
	assert.Empty(t, w.Step(0.1))
}

func TestStepEqualMassesConserveMomentum(t *testing.T) {
	w, err := NewWorld(testConfig())
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(10, 10), Velocity: vmath.V3(6, 1, 0), Mass: 2})
	w.AddBody(physics.Body{Box: box(12.5, 10), Velocity: vmath.V3(-2, 0, 0), Mass: 2})

	momentum := func() mgl64.Vec3 {
		return physics.Momentum(2, w.Body(0).Velocity).Add(physics.Momentum(2, w.Body(1).Velocity))
	}
	before := momentum()
	require.Len(t, w.Step(0.1), 1)
	assert.True(t, before.ApproxEqualThreshold(momentum(), 1e-9))
}

func TestStepReflectsWalls(t *testing.T) {
	w, err := NewWorld(testConfig())
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(58.5, 10), Velocity: vmath.V3(10, 0, 0), Mass: 1})

	w.Step(0.1)
	b := w.Body(0)
	assert.InDelta(t, 59, b.Box.Center.X(), 1e-9)
	assert.InDelta(t, -10, b.Velocity.X(), 1e-9)
}

func TestStepInvalidMassStillSeparates(t *testing.T) {
	w, err := NewWorld(testConfig())
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(10, 10), Velocity: vmath.V3(5, 0, 0), Mass: 0})
	w.AddBody(physics.Body{Box: box(12.5, 10), Velocity: vmath.V3(-5, 0, 0), Mass: 1})

	events := w.Step(0.1)
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, physics.ErrInvalidMass)
	assert.InDelta(t, 5, w.Body(0).Velocity.X(), 1e-9)
	assert.InDelta(t, -5, w.Body(1).Velocity.X(), 1e-9)
	assert.Equal(t, vmath.V3(0, 0, 0), vmath.Penetration(w.Body(0).Box, w.Body(1).Box))
}

func TestStepZeroDt(t *testing.T) {
	w := headOn(t)
	assert.Nil(t, w.Step(0))
	assert.InDelta(t, 10, w.Body(0).Box.Center.X(), 1e-12)
}

func TestStepSlidingPairNoCollision(t *testing.T) {
	p := &fakePlayer{}
	w, err := NewWorld(testConfig(), WithSound(p, mustLoad(t, p)))
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(20, 10), Velocity: vmath.V3(0, 5, 0), Mass: 1})
	w.AddBody(physics.Body{Box: box(22, 10), Velocity: vmath.V3(0, -5, 0), Mass: 1})

	for i := 0; i < 200; i++ {
		require.Empty(t, w.Step(0.016), "step %d", i)
	}
	assert.Zero(t, w.Collisions())
	assert.Zero(t, p.plays)

	a, b := w.Body(0), w.Body(1)
	assert.InDelta(t, 20, a.Box.Center.X(), 1e-9)
	assert.InDelta(t, 22, b.Box.Center.X(), 1e-9)
	assert.InDelta(t, 0, a.Velocity.X(), 1e-9)
	assert.InDelta(t, 5, a.Velocity.Len(), 1e-9)
	assert.InDelta(t, 5, b.Velocity.Len(), 1e-9)
}

func TestStepSeparatingPairNoCollision(t *testing.T) {
	p := &fakePlayer{}
	w, err := NewWorld(testConfig(), WithSound(p, mustLoad(t, p)))
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(20, 10), Velocity: vmath.V3(-1, 0, 0), Mass: 1})
	w.AddBody(physics.Body{Box: box(22, 10), Velocity: vmath.V3(1, 0, 0), Mass: 1})

	assert.Empty(t, w.Step(0.016))
	assert.Zero(t, p.plays)
	assert.InDelta(t, -1, w.Body(0).Velocity.X(), 1e-9)
	assert.InDelta(t, 1, w.Body(1).Velocity.X(), 1e-9)
}

func TestCollisionNotifiesHandlerAndSound(t *testing.T) {
	p := &fakePlayer{}
	var seen []Event
	w := headOn(t,
		WithSound(p, nil),
		WithCollisionHandler(func(ev Event) { seen = append(seen, ev) }),
	)

	// No sound handle: handler fires, player stays silent
	w.Step(0.1)
	assert.Len(t, seen, 1)
	assert.Zero(t, p.plays)

	w = headOn(t, WithSound(p, mustLoad(t, p)))
	events := w.Step(0.1)
	require.Len(t, events, 1)
	assert.Equal(t, 1, p.plays)
	require.Len(t, p.positions, 1)
	assert.Equal(t, events[0].Contact.Point, p.positions[0])
	assert.Equal(t, w.Body(0).Box.Center, p.listener, "listener follows the steered body")
}

func TestPushCapsSpeed(t *testing.T) {
	w := headOn(t)
	w.Push(0, vmath.V3(1000, 0, 0))
	assert.InDelta(t, w.Config().MaxSpeed, w.Body(0).Velocity.Len(), 1e-9)

	// Out of range is ignored
	w.Push(7, vmath.V3(1, 0, 0))
	assert.Nil(t, w.Body(7))
}

func TestPopulateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42

	run := func() []physics.Body {
		w, err := NewWorld(cfg)
		require.NoError(t, err)
		w.Populate()
		for i := 0; i < 300; i++ {
			w.Step(0.016)
		}
		out := make([]physics.Body, w.Len())
		for i := range out {
			out[i] = *w.Body(i)
		}
		return out
	}

	first := run()
	require.Len(t, first, cfg.Bodies)
	assert.Equal(t, first, run())

	bounds := vmath.BBoxFromMinMax(vmath.V3(0, 0, 0), vmath.V3(cfg.Width, cfg.Height, cfg.Depth))
	for i, b := range first {
		assert.True(t, bounds.Contains(b.Box.Center), "body %d escaped", i)
		assert.LessOrEqual(t, b.Velocity.Len(), cfg.MaxSpeed+1e-9)
	}
}

func mustLoad(t *testing.T, p *fakePlayer) *audio.Sound {
	t.Helper()
	s, err := p.Load("hit.wav")
	require.NoError(t, err)
	return s
}

func TestSurfaceOverridesFriction(t *testing.T) {
	cfg := testConfig()
	cfg.Surface = "ground"
	w, err := NewWorld(cfg)
	require.NoError(t, err)
	w.AddBody(physics.Body{Box: box(10, 10), Velocity: vmath.V3(5, 0, 0), Mass: 1})
	w.AddBody(physics.Body{Box: box(12.5, 10), Velocity: vmath.V3(-5, 0, 0), Mass: 1})

	require.Len(t, w.Step(0.1), 1)
	assert.Equal(t, 0.0, w.Body(0).Velocity.Len())
	assert.Equal(t, 0.0, w.Body(1).Velocity.Len())

	cfg.Surface = "lava"
	_, err = NewWorld(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
