package audio

import (
	"time"

	"github.com/arcadehq/chime/constants"
)

// Step constructors keep the recipe table readable

func toneAt(at time.Duration, freq float64, dur time.Duration, wave Waveform) Step {
	return Step{At: at, Kind: StepTone, Freq: freq, Duration: dur, Wave: wave}
}

func toneEnvAt(at time.Duration, freq float64, dur time.Duration, wave Waveform, env Envelope) Step {
	s := toneAt(at, freq, dur, wave)
	s.Env = &env
	return s
}

func noiseAt(at, dur time.Duration, filter FilterSpec) Step {
	return Step{At: at, Kind: StepNoise, Duration: dur, Filter: filter}
}

func refAt(at time.Duration, name string) Step {
	return Step{At: at, Kind: StepRecipe, Ref: name}
}

// DefaultBeepName is the fallback recipe substituted for unknown names
const DefaultBeepName = "default-beep"

// registerBuiltins loads the static recipe library. Recipes are
// immutable after startup; a recipe file may override entries by name.
func registerBuiltins(r *Registry) {
	percussive := Envelope{Attack: 0.005, Decay: 0.05, Sustain: 0.4, Release: 0.08}
	pluck := Envelope{Attack: 0.005, Decay: 0.08, Sustain: 0.3, Release: 0.15}
	swell := Envelope{Attack: 0.08, Decay: 0.1, Sustain: 0.8, Release: 0.25}

	r.Register(&Recipe{
		Name: DefaultBeepName,
		Steps: []Step{
			toneAt(0, constants.FallbackBeepFreq, constants.FallbackBeepDuration, WaveSine),
		},
	})

	// Pickup chime, two rising square notes
	r.Register(&Recipe{
		Name: "collect",
		Steps: []Step{
			toneEnvAt(0, 987.77, 80*time.Millisecond, WaveSquare, percussive),
			toneEnvAt(70*time.Millisecond, 1318.51, 200*time.Millisecond, WaveSquare, pluck),
		},
	})

	// Short descending zap
	r.Register(&Recipe{
		Name: "laser-shot",
		Steps: []Step{
			toneEnvAt(0, 1400, 60*time.Millisecond, WaveSawtooth, percussive),
			toneEnvAt(40*time.Millisecond, 900, 70*time.Millisecond, WaveSawtooth, percussive),
			toneEnvAt(90*time.Millisecond, 500, 90*time.Millisecond, WaveSawtooth, pluck),
		},
	})

	// Three simultaneous chord tones, half a second each
	r.Register(&Recipe{
		Name: "bot-victory",
		Steps: []Step{
			toneAt(0, constants.VictoryFreqLow, constants.VictoryChordDuration, WaveSine),
			toneAt(0, constants.VictoryFreqMid, constants.VictoryChordDuration, WaveSine),
			toneAt(0, constants.VictoryFreqHigh, constants.VictoryChordDuration, WaveSine),
		},
	})

	// Rising robotic arpeggio
	r.Register(&Recipe{
		Name: "digital-uprising",
		Steps: []Step{
			toneEnvAt(0, 330, 120*time.Millisecond, WaveSquare, pluck),
			toneEnvAt(80*time.Millisecond, 440, 120*time.Millisecond, WaveSquare, pluck),
			toneEnvAt(160*time.Millisecond, 554, 120*time.Millisecond, WaveSquare, pluck),
			toneEnvAt(240*time.Millisecond, 659, 200*time.Millisecond, WaveSquare, swell),
		},
	})

	// Composite: victory chord, then uprising arpeggio
	r.Register(&Recipe{
		Name: "level-up",
		Steps: []Step{
			refAt(0, "bot-victory"),
			refAt(constants.LevelUpFollowOffset, "digital-uprising"),
		},
	})

	r.Register(&Recipe{
		Name: "countdown",
		Steps: []Step{
			toneEnvAt(0, constants.CountdownFreq, constants.CountdownToneLength, WaveSine, percussive),
		},
	})

	r.Register(&Recipe{
		Name: "countdown-go",
		Steps: []Step{
			toneEnvAt(0, constants.CountdownFreq, constants.CountdownToneLength, WaveSine, percussive),
			toneEnvAt(constants.CountdownGoOffset, constants.CountdownGoFreq, 400*time.Millisecond, WaveSine, swell),
		},
	})

	// Filtered noise, linear decay scaled by intensity
	r.Register(&Recipe{
		Name: "brake-skid",
		Steps: []Step{
			noiseAt(0, constants.SkidDuration, FilterSpec{
				Kind: FilterBandPass,
				Freq: constants.SkidBandCenter,
				Q:    constants.SkidBandQ,
			}),
		},
	})

	r.Register(&Recipe{
		Name: "crash",
		Steps: []Step{
			noiseAt(0, constants.CrashDuration, FilterSpec{
				Kind: FilterLowPass,
				Freq: constants.CrashLowpassHz,
			}),
			toneEnvAt(0, 70, 300*time.Millisecond, WaveSine, swell),
		},
	})

	r.Register(&Recipe{
		Name: "powerup",
		Steps: []Step{
			toneEnvAt(0, 440, 100*time.Millisecond, WaveTriangle, pluck),
			toneEnvAt(90*time.Millisecond, 660, 100*time.Millisecond, WaveTriangle, pluck),
			toneEnvAt(180*time.Millisecond, 880, 220*time.Millisecond, WaveTriangle, swell),
		},
	})

	r.Register(&Recipe{
		Name: "menu-click",
		Steps: []Step{
			toneEnvAt(0, 2000, 30*time.Millisecond, WaveSquare, percussive),
		},
	})

	// Harsh low buzz for invalid input
	r.Register(&Recipe{
		Name: "error",
		Steps: []Step{
			toneEnvAt(0, 100, 80*time.Millisecond, WaveSawtooth,
				Envelope{Attack: 0.005, Decay: 0.01, Sustain: 0.9, Release: 0.02}),
		},
	})

	// Bell: fundamental plus quieter octave overtone
	bell := &Recipe{
		Name: "bell",
		Steps: []Step{
			toneEnvAt(0, 880, 600*time.Millisecond, WaveSine,
				Envelope{Attack: 0.005, Decay: 0.1, Sustain: 0.6, Release: 0.45}),
			toneEnvAt(0, 1760, 250*time.Millisecond, WaveSine,
				Envelope{Attack: 0.005, Decay: 0.05, Sustain: 0.4, Release: 0.15}),
		},
	}
	bell.Steps[1].Level = 0.3
	r.Register(bell)

	// Short rev burst; per-player pitch variants keep racers apart
	r.Register(&Recipe{
		Name: "engine-rev",
		Steps: []Step{
			toneEnvAt(0, 110, 150*time.Millisecond, WaveSawtooth, percussive),
			toneEnvAt(100*time.Millisecond, 165, 250*time.Millisecond, WaveSawtooth, swell),
		},
		PlayerPitch: []float64{1.0, 1.12, 0.9, 1.06},
	})
}
