package audio

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/arcadehq/chime/constants"
)

// soundSink receives resolved synthesis requests. The engine routes
// them into the bus graph; tests substitute a recorder.
type soundSink interface {
	playTone(req toneRequest)
	playNoise(req noiseRequest)
}

// Engine is the procedural audio engine. It is constructed explicitly
// and injected into host components; it holds no global state.
type Engine struct {
	cfg      *Config
	log      zerolog.Logger
	out      Output
	graph    *Graph
	registry *Registry
	sink     soundSink

	initialized atomic.Bool
	silent      atomic.Bool
	suspended   atomic.Bool

	musicMu      sync.Mutex
	musicGen     uint64
	currentMusic *musicTrack
	httpClient   *http.Client

	humMu sync.Mutex
	hum   *ContinuousSound
}

// Option customizes engine construction
type Option func(*Engine)

// WithLogger injects the structured logger; the default discards
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithOutput substitutes the playback device
func WithOutput(out Output) Option {
	return func(e *Engine) { e.out = out }
}

// WithRegistry substitutes the recipe registry
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithHTTPClient substitutes the client used for streamed music
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.httpClient = c }
}

// New creates an engine from the given config. Call Initialize before
// playing anything.
func New(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	e := &Engine{
		cfg:        cfg,
		log:        zerolog.Nop(),
		out:        NewSpeakerOutput(),
		registry:   NewRegistry(),
		httpClient: &http.Client{Timeout: constants.MusicFetchTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sink = engineSink{e}
	e.graph = newGraph(e.out, cfg.MasterVolume, cfg.MusicVolume, cfg.SfxVolume)

	return e
}

// Initialize opens the output device and attaches the bus graph.
// Idempotent. A missing or failing device is not an error: the engine
// logs a warning and degrades to silence, turning every later call
// into a no-op.
func (e *Engine) Initialize() {
	if !e.initialized.CompareAndSwap(false, true) {
		return
	}

	if !e.cfg.Enabled {
		e.silent.Store(true)
		e.log.Info().Msg("audio disabled by config, running silent")
		return
	}

	rate := beep.SampleRate(e.cfg.SampleRate)
	if err := e.out.Init(rate, rate.N(constants.SpeakerBufferDuration)); err != nil {
		e.silent.Store(true)
		e.log.Warn().Err(err).Msg("no audio device, degrading to silence")
		return
	}

	e.graph.attach()

	if e.cfg.RecipeFile != "" {
		if err := LoadRecipeFile(e.registry, e.cfg.RecipeFile); err != nil {
			e.log.Warn().Err(err).Str("path", e.cfg.RecipeFile).
				Msg("recipe file not loaded, keeping built-ins")
		}
	}

	if e.cfg.StartSuspended {
		e.Suspend()
	}
}

// ready reports whether the engine can produce audible output
func (e *Engine) ready() bool {
	return e.initialized.Load() && !e.silent.Load()
}

// Resume unsuspends the output device. Safe to call redundantly and
// from any goroutine; the transition happens at most once per
// suspension.
func (e *Engine) Resume() {
	if !e.ready() {
		return
	}
	if !e.suspended.CompareAndSwap(true, false) {
		return
	}
	if err := e.out.Resume(); err != nil {
		e.log.Warn().Err(err).Msg("resume failed")
	}
}

// Suspend pauses the output device without tearing down the graph
func (e *Engine) Suspend() {
	if !e.ready() {
		return
	}
	if !e.suspended.CompareAndSwap(false, true) {
		return
	}
	if err := e.out.Suspend(); err != nil {
		e.log.Warn().Err(err).Msg("suspend failed")
	}
}

// Suspended reports whether the output is currently suspended
func (e *Engine) Suspended() bool {
	return e.suspended.Load()
}

// Close stops music, the hum, and the output device. The engine goes
// silent permanently; later playback calls no-op like the other
// degradation paths.
func (e *Engine) Close() {
	if !e.initialized.Load() || !e.silent.CompareAndSwap(false, true) {
		return
	}
	e.StopMusic()
	e.StopAmbientHum()
	e.out.Clear()
	e.out.Close()
}

// SetMasterVolume clamps v to [0,1] and applies it to the master bus
func (e *Engine) SetMasterVolume(v float64) { e.graph.SetMasterVolume(v) }

// SetMusicVolume clamps v to [0,1] and applies it to the music bus
func (e *Engine) SetMusicVolume(v float64) { e.graph.SetMusicVolume(v) }

// SetSfxVolume clamps v to [0,1] and applies it to the sfx bus
func (e *Engine) SetSfxVolume(v float64) { e.graph.SetSfxVolume(v) }

// Volume returns the stored scalar for one bus
func (e *Engine) Volume(bus Bus) float64 { return e.graph.Volume(bus) }

// EffectiveVolume returns master*bus for a child bus
func (e *Engine) EffectiveVolume(bus Bus) float64 { return e.graph.EffectiveVolume(bus) }

// Registry exposes the recipe registry for host-side registration
func (e *Engine) Registry() *Registry { return e.registry }

// sampleRate is a convenience for synthesis call sites
func (e *Engine) sampleRate() beep.SampleRate {
	return beep.SampleRate(e.cfg.SampleRate)
}
