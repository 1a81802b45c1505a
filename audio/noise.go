package audio

import (
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/arcadehq/chime/constants"
)

// generateNoiseBurst renders a filtered uniform-noise burst with a
// linear decay envelope, scaled by the request level
func generateNoiseBurst(req noiseRequest, rate beep.SampleRate) []float64 {
	n := rate.N(req.Duration)
	if n <= 0 {
		return nil
	}

	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rand.Float64()*2 - 1
	}

	biquad(buf, int(rate), req.Filter)
	normalizePeak(buf, constants.NoiseBaseLevel)

	// Linear decay over the whole burst
	total := float64(n)
	level := req.Level
	if level < 0 {
		level = 0
	}
	for i := range buf {
		decay := 1.0 - float64(i)/total
		buf[i] = softClip(buf[i] * decay * level)
	}

	return buf
}

// bufferStreamer plays a mono float buffer once
type bufferStreamer struct {
	buf []float64
	pos int
}

func newBufferStreamer(buf []float64) beep.Streamer {
	return &bufferStreamer{buf: buf}
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= len(b.buf) {
			return i, i > 0
		}
		v := b.buf[b.pos]
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bufferStreamer) Err() error { return nil }
