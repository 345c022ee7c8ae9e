package sandbox

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/zeminka/physics"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid sandbox config")

// Config describes the sandbox world and its update loop
type Config struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Depth  float64 `toml:"depth" yaml:"depth"`

	Bodies   int     `toml:"bodies" yaml:"bodies"`
	BodySize float64 `toml:"body_size" yaml:"body_size"`
	MaxSpeed float64 `toml:"max_speed" yaml:"max_speed"`
	Thrust   float64 `toml:"thrust" yaml:"thrust"` // velocity added per key press

	// Friction is the contact friction passed to the momentum exchange
	Friction float64 `toml:"friction" yaml:"friction"`
	// Surface names a friction preset that overrides Friction when set
	Surface string `toml:"surface" yaml:"surface"`
	// Drag is the per-second velocity retention applied every step; 1 disables it
	Drag float64 `toml:"drag" yaml:"drag"`

	TickMillis int   `toml:"tick_ms" yaml:"tick_ms"`
	Seed       int64 `toml:"seed" yaml:"seed"`

	Sound       string  `toml:"sound" yaml:"sound"` // optional collision sound file
	SoundVolume float64 `toml:"sound_volume" yaml:"sound_volume"`
}

// DefaultConfig returns a small ice rink with a handful of boxes
func DefaultConfig() Config {
	return Config{
		Width:       60,
		Height:      20,
		Depth:       2,
		Bodies:      6,
		BodySize:    2,
		MaxSpeed:    30,
		Thrust:      4,
		Friction:    1.0,
		Drag:        0.9,
		TickMillis:  16,
		Seed:        1,
		SoundVolume: 0.8,
	}
}

// Tick returns the update interval
func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0 || c.Depth <= 0:
		return fmt.Errorf("%w: world extents must be positive", ErrInvalidConfig)
	case c.Bodies < 0:
		return fmt.Errorf("%w: bodies must be non-negative, got %d", ErrInvalidConfig, c.Bodies)
	case c.BodySize <= 0 || c.BodySize > c.Width || c.BodySize > c.Height:
		return fmt.Errorf("%w: body_size %v does not fit the world", ErrInvalidConfig, c.BodySize)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive, got %v", ErrInvalidConfig, c.MaxSpeed)
	case c.Friction < 0 || c.Friction > 1:
		return fmt.Errorf("%w: friction must be in [0,1], got %v", ErrInvalidConfig, c.Friction)
	case c.Drag < 0 || c.Drag > 1:
		return fmt.Errorf("%w: drag must be in [0,1], got %v", ErrInvalidConfig, c.Drag)
	case c.TickMillis <= 0:
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMillis)
	case c.SoundVolume < 0:
		return fmt.Errorf("%w: sound_volume must be non-negative, got %v", ErrInvalidConfig, c.SoundVolume)
	}
	if c.Surface != "" {
		if _, err := physics.LookupSurface(c.Surface); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ContactFriction returns the friction used at contacts
func (c Config) ContactFriction() float64 {
	if s, err := physics.LookupSurface(c.Surface); err == nil {
		return s.Friction
	}
	return c.Friction
}
