package audio

import (
	"errors"
)

// State is the lifecycle stage of a sound handle
type State int

const (
	StateLoaded   State = iota // decoded, never started
	StatePlaying               // attached to the mixer and unpaused
	StateStopped               // paused or drained
	StateUnloaded              // released, handle is dead
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrEngineInit        = errors.New("audio engine initialization failed")
	ErrNotInitialized    = errors.New("audio engine not initialized")
	ErrEngineClosed      = errors.New("audio engine closed")
	ErrDeviceBusy        = errors.New("audio device already in use")
	ErrInvalidConfig     = errors.New("invalid audio config")
	ErrNotFound          = errors.New("sound file not found")
	ErrDecode            = errors.New("sound decode failed")
	ErrUnsupportedFormat = errors.New("unsupported sound format")
	ErrUnloaded          = errors.New("sound already unloaded")
	ErrNilSound          = errors.New("nil sound handle")
	ErrForeignSound      = errors.New("sound belongs to another engine")
)
