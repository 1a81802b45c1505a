package audio

import (
	"errors"
	"time"

	"github.com/arcadehq/chime/constants"
)

// Waveform selects the oscillator shape for tone synthesis
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

// String returns the recipe-file spelling of the waveform
func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseWaveform maps a recipe-file string to a Waveform
func ParseWaveform(s string) (Waveform, bool) {
	switch s {
	case "sine":
		return WaveSine, true
	case "square":
		return WaveSquare, true
	case "sawtooth", "saw":
		return WaveSawtooth, true
	case "triangle":
		return WaveTriangle, true
	default:
		return WaveSine, false
	}
}

// Envelope is the 4-stage amplitude shape applied to every tone.
// Attack, Decay and Release are in seconds; Sustain is a unit-less
// level in [0,1].
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultEnvelope applies when a tone or recipe step leaves the
// envelope unspecified
func DefaultEnvelope() Envelope {
	return Envelope{
		Attack:  constants.DefaultAttack,
		Decay:   constants.DefaultDecay,
		Sustain: constants.DefaultSustain,
		Release: constants.DefaultRelease,
	}
}

// PlayOptions adjust a single PlaySound invocation
type PlayOptions struct {
	// Intensity scales burst amplitude for noise-based recipes; 1.0 when zero
	Intensity float64
	// Pitch multiplies every frequency in the recipe; 1.0 when zero
	Pitch float64
	// PlayerID selects among per-player frequency variants
	PlayerID int
}

func (o PlayOptions) normalized() PlayOptions {
	if o.Intensity == 0 {
		o.Intensity = 1.0
	}
	if o.Pitch == 0 {
		o.Pitch = 1.0
	}
	return o
}

// MusicOptions adjust streamed music playback
type MusicOptions struct {
	Loop bool
}

// toneRequest is the resolved form of one synthesized tone. Created
// and consumed within a single dispatch; it has no persistent
// identity.
type toneRequest struct {
	Freq     float64
	Duration time.Duration
	Wave     Waveform
	Env      Envelope
	Level    float64
}

// noiseRequest is the resolved form of one filtered noise burst
type noiseRequest struct {
	Duration time.Duration
	Filter   FilterSpec
	Level    float64
}

// Sentinel errors
var (
	ErrNoDevice          = errors.New("no audio device available")
	ErrNotInitialized    = errors.New("audio engine not initialized")
	ErrUnknownRecipe     = errors.New("unknown sound recipe")
	ErrDecode            = errors.New("audio decode failed")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
