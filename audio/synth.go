package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Waveform
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator streamer
func NewOscillator(freq float64, duration time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSawtooth:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			if o.phase < 0.5 {
				val = 4.0*o.phase - 1.0
			} else {
				val = 3.0 - 4.0*o.phase
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelopeStages holds the envelope resolved to sample counts.
// Clamping guarantees attack+decay never overlaps the release and no
// stage goes negative, whatever the caller specified.
type envelopeStages struct {
	attack  int
	decay   int
	sustain float64
	release int
	total   int
}

func resolveEnvelope(env Envelope, duration time.Duration, rate beep.SampleRate) envelopeStages {
	total := rate.N(duration)

	rel := rate.N(time.Duration(env.Release * float64(time.Second)))
	if rel > total {
		rel = total
	}
	if rel < 0 {
		rel = 0
	}

	att := rate.N(time.Duration(env.Attack * float64(time.Second)))
	dec := rate.N(time.Duration(env.Decay * float64(time.Second)))
	if att < 0 {
		att = 0
	}
	if dec < 0 {
		dec = 0
	}

	// Release start is pinned to total-rel; scale attack and decay
	// down proportionally when they would cross it
	avail := total - rel
	if att+dec > avail && att+dec > 0 {
		scale := float64(avail) / float64(att+dec)
		att = int(float64(att) * scale)
		dec = avail - att
	}

	sus := env.Sustain
	if sus < 0 {
		sus = 0
	} else if sus > 1 {
		sus = 1
	}

	return envelopeStages{attack: att, decay: dec, sustain: sus, release: rel, total: total}
}

// gainAt returns the envelope gain at a sample position
func (st envelopeStages) gainAt(pos int) float64 {
	switch {
	case pos < st.attack:
		return float64(pos) / float64(st.attack)
	case pos < st.attack+st.decay:
		t := float64(pos-st.attack) / float64(st.decay)
		return 1.0 - t*(1.0-st.sustain)
	case pos < st.total-st.release:
		return st.sustain
	case st.release > 0:
		return st.sustain * float64(st.total-pos) / float64(st.release)
	default:
		return st.sustain
	}
}

// envelope shapes a streamer through the 4-stage amplitude curve
type envelope struct {
	streamer beep.Streamer
	stages   envelopeStages
	position int
}

// NewEnvelope wraps s in an attack/decay/sustain/release gain curve
// running over duration
func NewEnvelope(s beep.Streamer, env Envelope, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		stages:   resolveEnvelope(env, duration, rate),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.stages.total {
			return i, i > 0
		}
		vol := e.stages.gainAt(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Tone describes a scheduled one-shot tone. The underlying nodes are
// garbage-eligible once the stop time elapses; there is no disposal
// API.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Waveform
	Env      Envelope
}

// CreateTone synthesizes a single tone through the sfx bus. Returns
// nil without synthesizing when the engine has no usable device or
// the parameters are out of range.
func (e *Engine) CreateTone(freq float64, duration time.Duration, wave Waveform, env *Envelope) *Tone {
	if !e.ready() {
		return nil
	}
	if freq <= 0 || duration <= 0 {
		e.log.Warn().Float64("freq", freq).Dur("duration", duration).
			Msg("rejecting tone with non-positive parameters")
		return nil
	}

	shape := DefaultEnvelope()
	if env != nil {
		shape = *env
	}

	e.sink.playTone(toneRequest{
		Freq:     freq,
		Duration: duration,
		Wave:     wave,
		Env:      shape,
		Level:    1.0,
	})

	return &Tone{Freq: freq, Duration: duration, Wave: wave, Env: shape}
}

// engineSink routes resolved requests into the bus graph. The
// indirection lets tests observe requests without a device.
type engineSink struct {
	e *Engine
}

func (s engineSink) playTone(req toneRequest) {
	e := s.e
	rate := beep.SampleRate(e.cfg.SampleRate)

	osc := NewOscillator(req.Freq, req.Duration, req.Wave, rate)
	shaped := NewEnvelope(osc, req.Env, req.Duration, rate)

	e.graph.addSfx(newVolume(shaped, req.Level))
}

func (s engineSink) playNoise(req noiseRequest) {
	e := s.e
	rate := beep.SampleRate(e.cfg.SampleRate)

	buf := generateNoiseBurst(req, rate)
	e.graph.addSfx(newBufferStreamer(buf))
}
