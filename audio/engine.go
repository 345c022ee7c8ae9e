package audio

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

// Engine owns an output device, a mixer and the sounds loaded into it
// Engines are independent; create one per output and pass it to callers
type Engine struct {
	config Config
	device Device
	logger *zap.Logger

	mu          sync.Mutex // Protects fields below
	mixer       *beep.Mixer
	listener    Listener
	sounds      map[*Sound]struct{}
	initialized bool
	closed      bool
}

// Option configures an Engine
type Option func(*Engine)

// WithDevice replaces the output device chosen from Config.Enabled
func WithDevice(d Device) Option {
	return func(e *Engine) { e.device = d }
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine validates cfg and builds an uninitialized engine
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:   cfg,
		logger:   zap.NewNop(),
		mixer:    &beep.Mixer{},
		listener: DefaultListener(),
		sounds:   make(map[*Sound]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.device == nil {
		if cfg.Enabled {
			e.device = NewSpeakerDevice()
		} else {
			e.device = NewSilentDevice()
		}
	}
	return e, nil
}

// Init opens the device and starts the mixer; repeated calls are no-ops
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if e.initialized {
		return nil
	}

	if err := e.device.Init(e.config.Rate(), e.config.BufferSize()); err != nil {
		return fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	e.device.Play(e.mixer)
	e.initialized = true

	e.logger.Info("audio engine initialized",
		zap.Int("sample_rate", e.config.SampleRate),
		zap.Int("buffer_samples", e.config.BufferSize()),
		zap.Bool("output", e.config.Enabled))
	return nil
}

// Close unloads every sound and releases the device
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	for s := range e.sounds {
		e.releaseLocked(s)
	}
	if !e.initialized {
		return nil
	}

	e.device.Lock()
	e.mixer.Clear()
	e.device.Unlock()

	err := e.device.Close()
	e.logger.Info("audio engine closed")
	return err
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// SampleRate returns the output sample rate
func (e *Engine) SampleRate() beep.SampleRate {
	return e.config.Rate()
}

// Sounds returns the number of loaded sounds
func (e *Engine) Sounds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sounds)
}

// Load decodes the file at path into a new stopped sound
func (e *Engine) Load(path string) (*Sound, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	stream, format, err := decodeFile(path)
	if err != nil {
		e.logger.Warn("sound load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return e.attach(path, stream, format)
}

// LoadBuffer wraps an in-memory buffer as a sound
func (e *Engine) LoadBuffer(name string, buf *beep.Buffer) (*Sound, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer for %q", ErrDecode, name)
	}
	stream := bufferStream{StreamSeeker: buf.Streamer(0, buf.Len())}
	return e.attach(name, stream, buf.Format())
}

func (e *Engine) ready() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.closed:
		return ErrEngineClosed
	case !e.initialized:
		return ErrNotInitialized
	}
	return nil
}

func (e *Engine) attach(name string, stream beep.StreamSeekCloser, format beep.Format) (*Sound, error) {
	s := &Sound{
		engine:  e,
		name:    name,
		format:  format,
		length:  float64(stream.Len()) / float64(format.SampleRate),
		emitter: defaultEmitter(),
		voice:   newVoice(stream, format.SampleRate, e.config.Rate(), e.config.ResampleQuality),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		stream.Close()
		return nil, ErrEngineClosed
	}
	e.sounds[s] = struct{}{}
	e.refreshLocked(s)

	e.logger.Debug("sound loaded",
		zap.String("name", name),
		zap.Float64("length_s", s.length),
		zap.Int("sample_rate", int(format.SampleRate)))
	return s, nil
}

// owned checks the handle belongs to this live engine; caller holds e.mu
func (e *Engine) owned(s *Sound) error {
	switch {
	case s == nil:
		return ErrNilSound
	case s.engine != e:
		return ErrForeignSound
	case e.closed:
		return ErrEngineClosed
	}
	if _, ok := e.sounds[s]; !ok {
		return ErrUnloaded
	}
	return nil
}

// withVoice runs fn on the sound's voice under both locks
func (e *Engine) withVoice(s *Sound, fn func(v *voice) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.owned(s); err != nil {
		return err
	}

	e.device.Lock()
	defer e.device.Unlock()
	return fn(s.voice)
}

// Play starts playback; a drained sound restarts from the beginning
func (e *Engine) Play(s *Sound) error {
	return e.withVoice(s, func(v *voice) error {
		if v.drained {
			if err := v.seek(0); err != nil {
				return fmt.Errorf("rewind %s: %w", s.name, err)
			}
		}
		v.started = true
		v.ctrl.Paused = false
		if !v.attached {
			e.mixer.Add(v)
			v.attached = true
		}
		return nil
	})
}

// Stop pauses playback, keeping the cursor
func (e *Engine) Stop(s *Sound) error {
	return e.withVoice(s, func(v *voice) error {
		v.ctrl.Paused = true
		return nil
	})
}

// Seek moves the playback cursor to the given time in seconds
func (e *Engine) Seek(s *Sound, seconds float64) error {
	return e.withVoice(s, func(v *voice) error {
		pos := s.format.SampleRate.N(secondsToDuration(seconds))
		if pos < 0 {
			pos = 0
		}
		if n := v.source.Len(); pos > n {
			pos = n
		}
		if err := v.seek(pos); err != nil {
			return fmt.Errorf("seek %s: %w", s.name, err)
		}
		return nil
	})
}

// SetVolume sets the linear volume; negative values clamp to 0
func (e *Engine) SetVolume(s *Sound, vol float64) error {
	if vol < 0 {
		vol = 0
	}
	return e.updateEmitter(s, func(em *Emitter) { em.Volume = vol })
}

// SetPosition places the sound in world space
func (e *Engine) SetPosition(s *Sound, pos mgl64.Vec3) error {
	return e.updateEmitter(s, func(em *Emitter) { em.Position = pos })
}

// SetDirection orients the sound's cone; zero means omnidirectional
func (e *Engine) SetDirection(s *Sound, dir mgl64.Vec3) error {
	return e.updateEmitter(s, func(em *Emitter) { em.Direction = dir })
}

// SetVelocity sets the sound's velocity for Doppler
func (e *Engine) SetVelocity(s *Sound, vel mgl64.Vec3) error {
	return e.updateEmitter(s, func(em *Emitter) { em.Velocity = vel })
}

// SetSpatialization toggles 3D rendering; disabled sounds play centered at unit pitch
func (e *Engine) SetSpatialization(s *Sound, enabled bool) error {
	return e.updateEmitter(s, func(em *Emitter) { em.Spatial = enabled })
}

func (e *Engine) updateEmitter(s *Sound, fn func(em *Emitter)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.owned(s); err != nil {
		return err
	}
	fn(&s.emitter)
	e.refreshLocked(s)
	return nil
}

// refreshLocked recomputes the mix of s; caller holds e.mu
func (e *Engine) refreshLocked(s *Sound) {
	m := e.config.Spatial.Apply(e.listener, s.scaledEmitter(e.config.MasterVolume))
	e.device.Lock()
	s.voice.apply(m)
	e.device.Unlock()
}

// Unload stops the sound, detaches it from the mixer and closes its decoder
func (e *Engine) Unload(s *Sound) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.owned(s); err != nil {
		return err
	}
	e.releaseLocked(s)
	return nil
}

func (e *Engine) releaseLocked(s *Sound) {
	e.device.Lock()
	v := s.voice
	v.ctrl.Paused = true
	v.released = true
	e.device.Unlock()

	// The device goroutine never touches a released voice, so the source can close unlocked
	if err := v.source.Close(); err != nil {
		e.logger.Warn("sound close failed", zap.String("name", s.name), zap.Error(err))
	}
	delete(e.sounds, s)
	e.logger.Debug("sound unloaded", zap.String("name", s.name))
}

// MasterVolume returns the current master volume
func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.MasterVolume
}

// SetMasterVolume scales every sound (0.0-1.0)
func (e *Engine) SetMasterVolume(vol float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.MasterVolume = clampUnit(vol)
	e.refreshAllLocked()
}

// Listener returns the current listener
func (e *Engine) Listener() Listener {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener
}

// SetListenerPosition moves the listener
func (e *Engine) SetListenerPosition(pos mgl64.Vec3) {
	e.updateListener(func(l *Listener) { l.Position = pos })
}

// SetListenerDirection sets the listener's forward vector
func (e *Engine) SetListenerDirection(dir mgl64.Vec3) {
	e.updateListener(func(l *Listener) { l.Direction = dir })
}

// SetListenerVelocity sets the listener velocity for Doppler
func (e *Engine) SetListenerVelocity(vel mgl64.Vec3) {
	e.updateListener(func(l *Listener) { l.Velocity = vel })
}

func (e *Engine) updateListener(fn func(l *Listener)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.listener)
	e.refreshAllLocked()
}

func (e *Engine) refreshAllLocked() {
	for s := range e.sounds {
		e.refreshLocked(s)
	}
}

func (e *Engine) isPlaying(s *Sound) bool {
	e.device.Lock()
	defer e.device.Unlock()
	return s.voice.playing()
}

func (e *Engine) state(s *Sound) State {
	e.device.Lock()
	defer e.device.Unlock()
	return s.voice.state()
}

func (e *Engine) cursor(s *Sound) float64 {
	e.device.Lock()
	defer e.device.Unlock()
	if s.voice.released {
		return 0
	}
	return float64(s.voice.source.Position()) / float64(s.format.SampleRate)
}
