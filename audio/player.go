package audio

import "github.com/go-gl/mathgl/mgl64"

// Player is the sound surface game code depends on
// Engine implements it; tests and headless builds can substitute their own
type Player interface {
	Load(path string) (*Sound, error)
	Play(s *Sound) error
	Stop(s *Sound) error
	SetVolume(s *Sound, vol float64) error
	SetPosition(s *Sound, pos mgl64.Vec3) error
	SetDirection(s *Sound, dir mgl64.Vec3) error
	SetVelocity(s *Sound, vel mgl64.Vec3) error
	Unload(s *Sound) error
}

var _ Player = (*Engine)(nil)
