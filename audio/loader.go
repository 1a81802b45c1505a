package audio

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Recipe files let designers extend or override the built-in library
// without a rebuild:
//
//	[[recipe]]
//	name = "fanfare"
//	player_pitch = [1.0, 1.12]
//
//	[[recipe.step]]
//	at_ms = 0
//	kind = "tone"
//	freq = 440.0
//	duration_ms = 200
//	wave = "square"
//	envelope = { attack = 0.01, decay = 0.1, sustain = 0.7, release = 0.3 }

type recipeFile struct {
	Recipes []recipeDef `toml:"recipe"`
}

type recipeDef struct {
	Name        string    `toml:"name"`
	PlayerPitch []float64 `toml:"player_pitch"`
	Steps       []stepDef `toml:"step"`
}

type stepDef struct {
	AtMs       int64      `toml:"at_ms"`
	Kind       string     `toml:"kind"`
	Freq       float64    `toml:"freq"`
	DurationMs int64      `toml:"duration_ms"`
	Wave       string     `toml:"wave"`
	Level      float64    `toml:"level"`
	Envelope   *envDef    `toml:"envelope"`
	Filter     *filterDef `toml:"filter"`
	Ref        string     `toml:"ref"`
}

type envDef struct {
	Attack  float64 `toml:"attack"`
	Decay   float64 `toml:"decay"`
	Sustain float64 `toml:"sustain"`
	Release float64 `toml:"release"`
}

type filterDef struct {
	Kind string  `toml:"kind"`
	Freq float64 `toml:"freq"`
	Q    float64 `toml:"q"`
}

// LoadRecipeFile parses a TOML recipe file and registers its recipes,
// overriding same-named built-ins. The file is rejected as a whole on
// the first invalid entry.
func LoadRecipeFile(reg *Registry, path string) error {
	var file recipeFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("parse recipe file: %w", err)
	}

	recipes := make([]*Recipe, 0, len(file.Recipes))
	for _, def := range file.Recipes {
		rec, err := def.toRecipe()
		if err != nil {
			return fmt.Errorf("recipe %q: %w", def.Name, err)
		}
		recipes = append(recipes, rec)
	}

	for _, rec := range recipes {
		reg.Register(rec)
	}
	return nil
}

func (d recipeDef) toRecipe() (*Recipe, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if len(d.Steps) == 0 {
		return nil, fmt.Errorf("no steps")
	}

	rec := &Recipe{Name: d.Name, PlayerPitch: d.PlayerPitch}
	for i, sd := range d.Steps {
		step, err := sd.toStep()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		rec.Steps = append(rec.Steps, step)
	}
	return rec, nil
}

func (d stepDef) toStep() (Step, error) {
	step := Step{
		At:       time.Duration(d.AtMs) * time.Millisecond,
		Duration: time.Duration(d.DurationMs) * time.Millisecond,
		Level:    d.Level,
	}

	switch d.Kind {
	case "tone":
		step.Kind = StepTone
		if d.Freq <= 0 {
			return step, fmt.Errorf("tone needs freq > 0")
		}
		if d.DurationMs <= 0 {
			return step, fmt.Errorf("tone needs duration_ms > 0")
		}
		wave, ok := ParseWaveform(d.Wave)
		if !ok {
			return step, fmt.Errorf("unknown wave %q", d.Wave)
		}
		step.Freq = d.Freq
		step.Wave = wave
		if d.Envelope != nil {
			step.Env = &Envelope{
				Attack:  d.Envelope.Attack,
				Decay:   d.Envelope.Decay,
				Sustain: d.Envelope.Sustain,
				Release: d.Envelope.Release,
			}
		}

	case "noise":
		step.Kind = StepNoise
		if d.DurationMs <= 0 {
			return step, fmt.Errorf("noise needs duration_ms > 0")
		}
		if d.Filter != nil {
			kind, err := parseFilterKind(d.Filter.Kind)
			if err != nil {
				return step, err
			}
			step.Filter = FilterSpec{Kind: kind, Freq: d.Filter.Freq, Q: d.Filter.Q}
		}

	case "recipe":
		step.Kind = StepRecipe
		if d.Ref == "" {
			return step, fmt.Errorf("recipe step needs ref")
		}
		step.Ref = d.Ref

	default:
		return step, fmt.Errorf("unknown step kind %q", d.Kind)
	}

	return step, nil
}

func parseFilterKind(s string) (FilterKind, error) {
	switch s {
	case "", "none":
		return FilterNone, nil
	case "lowpass":
		return FilterLowPass, nil
	case "bandpass":
		return FilterBandPass, nil
	case "highpass":
		return FilterHighPass, nil
	default:
		return FilterNone, fmt.Errorf("unknown filter kind %q", s)
	}
}
