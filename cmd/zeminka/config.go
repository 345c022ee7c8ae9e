package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/zeminka/audio"
	"github.com/lixenwraith/zeminka/sandbox"
)

var errConfigFormat = errors.New("unsupported config format")

// fileConfig is the on-disk configuration layout
type fileConfig struct {
	Audio   audio.Config   `toml:"audio" yaml:"audio"`
	Sandbox sandbox.Config `toml:"sandbox" yaml:"sandbox"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Audio:   audio.DefaultConfig(),
		Sandbox: sandbox.DefaultConfig(),
	}
}

// loadConfig reads path over the defaults, then applies environment overrides
// An empty path yields defaults; unknown keys are rejected
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}

		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".toml":
			dec := toml.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			err = dec.Decode(&cfg)
		case ".yaml", ".yml":
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
				err = nil
			}
		default:
			return cfg, fmt.Errorf("%w: %q", errConfigFormat, ext)
		}
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	audio.ApplyEnv(&cfg.Audio)

	if err := cfg.Audio.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Sandbox.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func encodeConfig(cfg fileConfig, format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(cfg)
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	}
	return nil, fmt.Errorf("%w: %q", errConfigFormat, format)
}
