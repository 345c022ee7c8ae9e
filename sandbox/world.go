package sandbox

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/zeminka/audio"
	"github.com/lixenwraith/zeminka/physics"
	"github.com/lixenwraith/zeminka/vmath"
)

// Event reports one collision resolved during a step
type Event struct {
	A, B    int // body indices, A < B
	Contact physics.Contact
	Err     error // non-nil when momentum could not be exchanged
}

// listenerMover is implemented by players that track a listener position
type listenerMover interface {
	SetListenerPosition(pos mgl64.Vec3)
}

// World is a deterministic box simulation; not safe for concurrent use
type World struct {
	config   Config
	friction float64
	bounds   vmath.BBox
	bodies   []*physics.Body
	logger   *zap.Logger

	player audio.Player
	sound  *audio.Sound

	onCollide  func(Event)
	collisions int
}

// Option configures a World
type Option func(*World)

// WithLogger sets the world logger
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSound plays s at every contact point through p
func WithSound(p audio.Player, s *audio.Sound) Option {
	return func(w *World) {
		w.player = p
		w.sound = s
	}
}

// WithCollisionHandler registers fn for every collision event
func WithCollisionHandler(fn func(Event)) Option {
	return func(w *World) { w.onCollide = fn }
}

// NewWorld validates cfg and builds an empty world whose bounds span
// [0,Width] x [0,Height] x [0,Depth]
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		config:   cfg,
		friction: cfg.ContactFriction(),
		bounds:   vmath.BBoxFromMinMax(mgl64.Vec3{}, vmath.V3(cfg.Width, cfg.Height, cfg.Depth)),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Bounds returns the world box
func (w *World) Bounds() vmath.BBox {
	return w.bounds
}

// Config returns the world configuration
func (w *World) Config() Config {
	return w.config
}

// Len returns the number of bodies
func (w *World) Len() int {
	return len(w.bodies)
}

// Body returns body i, or nil when out of range
func (w *World) Body(i int) *physics.Body {
	if i < 0 || i >= len(w.bodies) {
		return nil
	}
	return w.bodies[i]
}

// Collisions returns the number of collisions since creation
func (w *World) Collisions() int {
	return w.collisions
}

// AddBody inserts a copy of b and returns its index
func (w *World) AddBody(b physics.Body) int {
	w.bodies = append(w.bodies, &b)
	return len(w.bodies) - 1
}

// Populate adds cfg.Bodies boxes at seeded random positions and velocities
// Body 0 starts at rest in the center; it is the one the game steers
func (w *World) Populate() {
	rng := rand.New(rand.NewSource(w.config.Seed))
	size := w.config.BodySize
	dims := vmath.V3(size, size, w.config.Depth)
	z := w.config.Depth / 2

	for i := 0; i < w.config.Bodies; i++ {
		b := physics.Body{Mass: 1 + rng.Float64()*4}
		if i == 0 {
			b.Box = vmath.NewBBox(vmath.V3(w.config.Width/2, w.config.Height/2, z), dims)
			b.Mass = 2
		} else {
			// Rejection sampling keeps spawns apart; give up after a few tries
			for try := 0; try < 16; try++ {
				center := vmath.V3(
					size/2+rng.Float64()*(w.config.Width-size),
					size/2+rng.Float64()*(w.config.Height-size),
					z,
				)
				b.Box = vmath.NewBBox(center, dims)
				if !w.overlapsAny(b.Box) {
					break
				}
			}
			half := w.config.MaxSpeed / 2
			b.Velocity = vmath.V3(rng.Float64()*2*half-half, rng.Float64()*2*half-half, 0)
		}
		w.AddBody(b)
	}
	w.logger.Debug("world populated", zap.Int("bodies", len(w.bodies)), zap.Int64("seed", w.config.Seed))
}

func (w *World) overlapsAny(box vmath.BBox) bool {
	for _, b := range w.bodies {
		if vmath.Intersects(box, b.Box) {
			return true
		}
	}
	return false
}

// Push adds dv to body i's velocity, capped at MaxSpeed
func (w *World) Push(i int, dv mgl64.Vec3) {
	b := w.Body(i)
	if b == nil {
		return
	}
	physics.ApplyImpulse(b, dv)
	physics.CapSpeed(b, w.config.MaxSpeed)
}

// Step advances the world by dt seconds and returns the collisions it resolved
func (w *World) Step(dt float64) []Event {
	if dt <= 0 {
		return nil
	}

	for _, b := range w.bodies {
		physics.Damp(b, w.config.Drag, dt)
		physics.Integrate(b, dt)
		physics.ReflectBounds(b, w.bounds)
	}

	var events []Event
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			contact, hit, err := physics.Collide(w.bodies[i], w.bodies[j], w.friction, dt)
			if !hit {
				continue
			}
			if err != nil {
				w.logger.Debug("momentum exchange skipped", zap.Int("a", i), zap.Int("b", j), zap.Error(err))
			}
			events = append(events, Event{A: i, B: j, Contact: contact, Err: err})
		}
	}

	for _, b := range w.bodies {
		physics.CapSpeed(b, w.config.MaxSpeed)
		// Separation can push a body through a wall
		physics.ReflectBounds(b, w.bounds)
	}

	w.collisions += len(events)
	for _, ev := range events {
		w.notify(ev)
	}
	w.trackListener()
	return events
}

func (w *World) notify(ev Event) {
	if w.onCollide != nil {
		w.onCollide(ev)
	}
	if w.player == nil || w.sound == nil {
		return
	}
	if err := w.player.SetPosition(w.sound, ev.Contact.Point); err != nil {
		w.logger.Warn("collision sound position failed", zap.Error(err))
		return
	}
	if err := w.player.Play(w.sound); err != nil {
		w.logger.Warn("collision sound failed", zap.Error(err))
	}
}

// trackListener keeps the audio listener on the steered body
func (w *World) trackListener() {
	lm, ok := w.player.(listenerMover)
	if !ok || len(w.bodies) == 0 {
		return
	}
	lm.SetListenerPosition(w.bodies[0].Box.Center)
}
