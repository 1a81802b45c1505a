package audio

import (
	"sync"
	"time"
)

// maxRecipeDepth bounds nested recipe references so a cyclic recipe
// file cannot schedule forever
const maxRecipeDepth = 4

// Playback collects the scheduled timers of one PlaySound invocation
// so an in-flight composite sound can be cancelled. Steps already
// dispatched keep ringing; only pending ones are dropped.
type Playback struct {
	mu      sync.Mutex
	timers  []*time.Timer
	stopped bool
}

// Stop cancels all pending steps of this invocation
func (p *Playback) Stop() {
	p.mu.Lock()
	p.stopped = true
	timers := p.timers
	p.timers = nil
	p.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// Stopped reports whether Stop has been called
func (p *Playback) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Playback) track(t *time.Timer) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		t.Stop()
		return
	}
	p.timers = append(p.timers, t)
	p.mu.Unlock()
}

// PlaySound dispatches a named recipe. Unknown names fall back to the
// default beep with a logged warning; the call never fails. Returns a
// cancellation handle, or nil when the engine has no usable device.
func (e *Engine) PlaySound(name string, opts ...PlayOptions) *Playback {
	if !e.ready() {
		return nil
	}

	// Self-healing against a still-suspended device
	e.Resume()

	var opt PlayOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	opt = opt.normalized()

	rec, ok := e.registry.Get(name)
	if !ok {
		e.log.Warn().Str("recipe", name).Msg("unknown recipe, substituting default beep")
		rec, ok = e.registry.Get(DefaultBeepName)
		if !ok {
			return nil
		}
	}

	pb := &Playback{}
	e.scheduleRecipe(rec, 0, opt, opt.Pitch*rec.playerPitch(opt.PlayerID), pb, 0)
	return pb
}

// scheduleRecipe resolves a recipe into independently scheduled
// steps. Nested references are flattened at invocation time, so one
// Playback owns every timer of the composite.
func (e *Engine) scheduleRecipe(rec *Recipe, base time.Duration, opt PlayOptions, pitch float64, pb *Playback, depth int) {
	if depth > maxRecipeDepth {
		e.log.Warn().Str("recipe", rec.Name).Msg("recipe nesting too deep, truncating")
		return
	}

	for _, step := range rec.Steps {
		at := base + step.At

		if step.Kind == StepRecipe {
			sub, ok := e.registry.Get(step.Ref)
			if !ok {
				e.log.Warn().Str("recipe", rec.Name).Str("ref", step.Ref).
					Msg("recipe references unknown recipe, skipping step")
				continue
			}
			e.scheduleRecipe(sub, at, opt, pitch*sub.playerPitch(opt.PlayerID), pb, depth+1)
			continue
		}

		if at <= 0 {
			e.dispatchStep(step, opt, pitch)
			continue
		}

		step := step
		pb.track(time.AfterFunc(at, func() {
			if pb.Stopped() {
				return
			}
			e.dispatchStep(step, opt, pitch)
		}))
	}
}

func (e *Engine) dispatchStep(step Step, opt PlayOptions, pitch float64) {
	level := step.Level
	if level == 0 {
		level = 1.0
	}

	switch step.Kind {
	case StepTone:
		env := DefaultEnvelope()
		if step.Env != nil {
			env = *step.Env
		}
		e.sink.playTone(toneRequest{
			Freq:     step.Freq * pitch,
			Duration: step.Duration,
			Wave:     step.Wave,
			Env:      env,
			Level:    level,
		})

	case StepNoise:
		e.sink.playNoise(noiseRequest{
			Duration: step.Duration,
			Filter:   step.Filter,
			Level:    level * opt.Intensity,
		})
	}
}
