package audio

import (
	"context"
	"sync/atomic"
)

// Player is the minimal surface host UI components consume. They
// receive it by injection and never construct engines themselves.
type Player interface {
	PlaySound(name string, opts ...PlayOptions) *Playback
	PlayMusic(ctx context.Context, src string, opts MusicOptions)
	StopMusic()
	StartAmbientHum(intensity float64) *ContinuousSound
	StopAmbientHum()
	SetMasterVolume(v float64)
	SetMusicVolume(v float64)
	SetSfxVolume(v float64)
	Resume()
}

// Service wraps the engine in a start/stop lifecycle with graceful
// degradation: a host that fails to get audio keeps running without
// it, and Player() hands out nil rather than a broken engine.
type Service struct {
	engine   *Engine
	disabled atomic.Bool
}

// NewService creates an uninitialized audio service
func NewService(cfg *Config, opts ...Option) *Service {
	s := &Service{}
	if cfg == nil {
		cfg = LoadConfig()
	}
	s.engine = New(cfg, opts...)
	return s
}

// Name identifies the service to the host's registry
func (s *Service) Name() string { return "audio" }

// Start opens the device. Degradation is not an error.
func (s *Service) Start() error {
	if s.engine == nil {
		s.disabled.Store(true)
		return nil
	}
	s.engine.Initialize()
	if !s.engine.ready() {
		s.disabled.Store(true)
	}
	return nil
}

// Stop shuts the engine down
func (s *Service) Stop() error {
	if s.engine != nil {
		s.engine.Close()
	}
	return nil
}

// IsDisabled reports whether audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Engine returns the underlying engine, nil when disabled
func (s *Service) Engine() *Engine {
	if s.disabled.Load() {
		return nil
	}
	return s.engine
}

// Player returns the injection surface for host components, nil when
// disabled
func (s *Service) Player() Player {
	if s.disabled.Load() {
		return nil
	}
	return s.engine
}
