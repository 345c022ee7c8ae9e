package audio

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/gopxl/beep"
)

// Config holds engine output and spatialization settings
type Config struct {
	// Enabled selects the hardware speaker; disabled engines run a silent clock device
	Enabled         bool          `toml:"enabled" yaml:"enabled"`
	SampleRate      int           `toml:"sample_rate" yaml:"sample_rate"`
	BufferMillis    int           `toml:"buffer_ms" yaml:"buffer_ms"`
	MasterVolume    float64       `toml:"master_volume" yaml:"master_volume"`
	ResampleQuality int           `toml:"resample_quality" yaml:"resample_quality"`
	Spatial         SpatialConfig `toml:"spatial" yaml:"spatial"`
}

// SpatialConfig controls distance attenuation, cone and Doppler behavior
// Angles are full cone widths in radians
type SpatialConfig struct {
	MinDistance   float64 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance   float64 `toml:"max_distance" yaml:"max_distance"` // 0 = unbounded
	Rolloff       float64 `toml:"rolloff" yaml:"rolloff"`
	ConeInner     float64 `toml:"cone_inner" yaml:"cone_inner"`
	ConeOuter     float64 `toml:"cone_outer" yaml:"cone_outer"`
	ConeOuterGain float64 `toml:"cone_outer_gain" yaml:"cone_outer_gain"`
	DopplerFactor float64 `toml:"doppler_factor" yaml:"doppler_factor"`
	SpeedOfSound  float64 `toml:"speed_of_sound" yaml:"speed_of_sound"`
	MinPitch      float64 `toml:"min_pitch" yaml:"min_pitch"`
	MaxPitch      float64 `toml:"max_pitch" yaml:"max_pitch"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		SampleRate:      48000,
		BufferMillis:    100,
		MasterVolume:    1.0,
		ResampleQuality: 4,
		Spatial:         DefaultSpatialConfig(),
	}
}

// DefaultSpatialConfig returns inverse-distance attenuation with an omnidirectional cone
func DefaultSpatialConfig() SpatialConfig {
	return SpatialConfig{
		MinDistance:   1,
		MaxDistance:   0,
		Rolloff:       1,
		ConeInner:     2 * math.Pi,
		ConeOuter:     2 * math.Pi,
		ConeOuterGain: 0,
		DopplerFactor: 1,
		SpeedOfSound:  343.3,
		MinPitch:      0.25,
		MaxPitch:      4,
	}
}

// Rate returns the configured sample rate
func (c Config) Rate() beep.SampleRate {
	return beep.SampleRate(c.SampleRate)
}

// BufferSize returns the device buffer length in samples
func (c Config) BufferSize() int {
	return c.Rate().N(time.Duration(c.BufferMillis) * time.Millisecond)
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	case c.BufferMillis <= 0:
		return fmt.Errorf("%w: buffer_ms must be positive, got %d", ErrInvalidConfig, c.BufferMillis)
	case c.MasterVolume < 0 || c.MasterVolume > 1:
		return fmt.Errorf("%w: master_volume must be in [0,1], got %v", ErrInvalidConfig, c.MasterVolume)
	case c.ResampleQuality < 1 || c.ResampleQuality > 64:
		return fmt.Errorf("%w: resample_quality must be in [1,64], got %d", ErrInvalidConfig, c.ResampleQuality)
	}
	return c.Spatial.Validate()
}

// Validate reports the first invalid spatial field
func (s SpatialConfig) Validate() error {
	switch {
	case s.MinDistance <= 0:
		return fmt.Errorf("%w: min_distance must be positive, got %v", ErrInvalidConfig, s.MinDistance)
	case s.MaxDistance != 0 && s.MaxDistance < s.MinDistance:
		return fmt.Errorf("%w: max_distance %v below min_distance %v", ErrInvalidConfig, s.MaxDistance, s.MinDistance)
	case s.Rolloff < 0:
		return fmt.Errorf("%w: rolloff must be non-negative, got %v", ErrInvalidConfig, s.Rolloff)
	case s.ConeInner < 0 || s.ConeOuter < s.ConeInner:
		return fmt.Errorf("%w: cone angles must satisfy 0 <= inner <= outer", ErrInvalidConfig)
	case s.ConeOuterGain < 0:
		return fmt.Errorf("%w: cone_outer_gain must be non-negative, got %v", ErrInvalidConfig, s.ConeOuterGain)
	case s.DopplerFactor < 0:
		return fmt.Errorf("%w: doppler_factor must be non-negative, got %v", ErrInvalidConfig, s.DopplerFactor)
	case s.DopplerFactor > 0 && s.SpeedOfSound <= 0:
		return fmt.Errorf("%w: speed_of_sound must be positive when doppler is on", ErrInvalidConfig)
	case s.MinPitch <= 0 || s.MaxPitch < s.MinPitch:
		return fmt.Errorf("%w: pitch range must satisfy 0 < min <= max", ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables
//
//	ZEMINKA_AUDIO_ENABLED  bool
//	ZEMINKA_MASTER_VOLUME  0-100
//	ZEMINKA_SAMPLE_RATE    Hz
func ApplyEnv(cfg *Config) {
	if enabled := os.Getenv("ZEMINKA_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("ZEMINKA_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("ZEMINKA_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
