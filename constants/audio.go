package constants

import "time"

// Engine defaults
const (
	// SampleRate is the engine output rate in Hz
	SampleRate = 44100

	// SpeakerBufferDuration sizes the device buffer; larger is safer
	// against underruns, smaller reduces trigger latency
	SpeakerBufferDuration = 100 * time.Millisecond

	// MusicFetchTimeout bounds the network fetch for streamed tracks
	MusicFetchTimeout = 30 * time.Second

	// ResampleQuality for music tracks decoded at a foreign rate
	ResampleQuality = 4
)

// Default envelope (attack/decay/sustain/release)
const (
	DefaultAttack  = 0.01
	DefaultDecay   = 0.1
	DefaultSustain = 0.7
	DefaultRelease = 0.3
)

// Fallback Beep
// Played when a recipe name is not registered
const (
	FallbackBeepFreq     = 440.0
	FallbackBeepDuration = 150 * time.Millisecond
)

// Victory Chord (C5/E5/G5 of the site sound set)
const (
	VictoryFreqLow       = 523.0
	VictoryFreqMid       = 659.0
	VictoryFreqHigh      = 784.0
	VictoryChordDuration = 500 * time.Millisecond
)

// Countdown Tones
const (
	CountdownFreq       = 880.0
	CountdownGoFreq     = 1047.0
	CountdownGoOffset   = 200 * time.Millisecond
	CountdownToneLength = 150 * time.Millisecond
)

// Level-up composite timing
const (
	LevelUpFollowOffset = 300 * time.Millisecond
)

// Ambient Hum
const (
	HumBaseFreq    = 52.0
	HumDetuneRatio = 1.007
	HumBaseLevel   = 0.12
)

// Engine Sound
const (
	EngineHarmonicLevel = 0.35
	EngineBaseLevel     = 0.22
	EnginePitchSlew     = 0.0004 // per-sample approach toward target pitch
)

// EnginePlayerFreqs holds per-player fundamentals so simultaneous
// engines stay distinguishable
var EnginePlayerFreqs = [...]float64{55.0, 62.0, 49.0, 58.0}

// Noise Bursts
const (
	SkidDuration   = 400 * time.Millisecond
	SkidBandCenter = 1200.0
	SkidBandQ      = 1.2
	CrashDuration  = 600 * time.Millisecond
	CrashLowpassHz = 900.0
	NoiseBaseLevel = 0.8
)
