package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/arcadehq/chime/constants"
)

// continuousGenerator is an endless streamer whose parameters may be
// mutated in place under the output lock. Setting stopped makes the
// mixer drop it on the next pull.
type continuousGenerator struct {
	rate beep.SampleRate

	freq      float64
	target    float64 // slewed toward per sample
	intensity float64
	harmonic  float64 // level of the octave harmonic, 0 for pure hum
	detune    float64 // ratio of the second oscillator
	level     float64

	phase1  float64
	phase2  float64
	stopped bool
}

func (g *continuousGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.stopped {
		return 0, false
	}

	for i := range samples {
		if g.target > 0 && g.freq != g.target {
			g.freq += (g.target - g.freq) * constants.EnginePitchSlew
		}

		v := math.Sin(2 * math.Pi * g.phase1)
		if g.harmonic > 0 {
			v += g.harmonic * math.Sin(2*math.Pi*g.phase2)
		} else {
			v += math.Sin(2 * math.Pi * g.phase2)
			v *= 0.5
		}
		v *= g.level * g.intensity

		samples[i][0] = v
		samples[i][1] = v

		g.phase1 += g.freq / float64(g.rate)
		g.phase1 -= math.Floor(g.phase1)

		freq2 := g.freq * g.detune
		if g.harmonic > 0 {
			freq2 = g.freq * 2
		}
		g.phase2 += freq2 / float64(g.rate)
		g.phase2 -= math.Floor(g.phase2)
	}
	return len(samples), true
}

func (g *continuousGenerator) Err() error { return nil }

// ContinuousSound is a live handle to a running generator. Parameters
// can be re-issued in place; Stop removes it from the mix. Calling the
// start method again creates a fresh sound, so callers either hold the
// handle or rely on the engine-tracked stop methods.
type ContinuousSound struct {
	e   *Engine
	gen *continuousGenerator
}

// SetIntensity updates the amplitude scale of the running sound
func (c *ContinuousSound) SetIntensity(v float64) {
	if c == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	c.e.out.Lock()
	c.gen.intensity = v
	c.e.out.Unlock()
}

// SetPitch retargets the fundamental; the generator slews toward it
// rather than jumping
func (c *ContinuousSound) SetPitch(freq float64) {
	if c == nil || freq <= 0 {
		return
	}
	c.e.out.Lock()
	c.gen.target = freq
	c.e.out.Unlock()
}

// Stop removes the sound from the mix
func (c *ContinuousSound) Stop() {
	if c == nil {
		return
	}
	c.e.out.Lock()
	c.gen.stopped = true
	c.e.out.Unlock()
}

// StartAmbientHum starts the low two-oscillator hum. A previous hum
// started through the engine is stopped first; the returned handle
// supports live intensity updates.
func (e *Engine) StartAmbientHum(intensity float64) *ContinuousSound {
	if !e.ready() {
		return nil
	}
	e.Resume()

	gen := &continuousGenerator{
		rate:      e.sampleRate(),
		freq:      constants.HumBaseFreq,
		intensity: intensity,
		detune:    constants.HumDetuneRatio,
		level:     constants.HumBaseLevel,
	}
	cs := &ContinuousSound{e: e, gen: gen}

	e.humMu.Lock()
	prev := e.hum
	e.hum = cs
	e.humMu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	e.graph.addSfx(gen)
	return cs
}

// StopAmbientHum stops the engine-tracked hum, if any
func (e *Engine) StopAmbientHum() {
	e.humMu.Lock()
	cs := e.hum
	e.hum = nil
	e.humMu.Unlock()

	if cs != nil {
		cs.Stop()
	}
}

// StartEngineSound starts a continuous engine drone for one player.
// The caller owns the handle: a second call layers a second engine
// unless the first is stopped.
func (e *Engine) StartEngineSound(playerID int, intensity float64) *ContinuousSound {
	if !e.ready() {
		return nil
	}
	e.Resume()

	freq := constants.EnginePlayerFreqs[0]
	if playerID >= 0 && playerID < len(constants.EnginePlayerFreqs) {
		freq = constants.EnginePlayerFreqs[playerID]
	}

	gen := &continuousGenerator{
		rate:      e.sampleRate(),
		freq:      freq,
		target:    freq,
		intensity: intensity,
		harmonic:  constants.EngineHarmonicLevel,
		level:     constants.EngineBaseLevel,
	}
	cs := &ContinuousSound{e: e, gen: gen}
	e.graph.addSfx(gen)
	return cs
}
