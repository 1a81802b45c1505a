package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// TestBiquadBounded verifies the filter does not blow up on noise
// input at any supported response
func TestBiquadBounded(t *testing.T) {
	specs := []FilterSpec{
		{Kind: FilterLowPass, Freq: 900},
		{Kind: FilterHighPass, Freq: 2000},
		{Kind: FilterBandPass, Freq: 1200, Q: 1.2},
		{Kind: FilterBandPass, Freq: 1200}, // zero Q falls back to 0.707
	}

	for _, spec := range specs {
		rng := rand.New(rand.NewSource(1))
		buf := make([]float64, 44100)
		for i := range buf {
			buf[i] = rng.Float64()*2 - 1
		}

		biquad(buf, 44100, spec)

		for i, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 10 {
				t.Fatalf("Filter kind %d unstable at sample %d: %f", spec.Kind, i, v)
			}
		}
	}
}

// TestBiquadNoneIsIdentity verifies FilterNone leaves the buffer alone
func TestBiquadNoneIsIdentity(t *testing.T) {
	buf := []float64{0.5, -0.3, 0.8, -0.9}
	want := []float64{0.5, -0.3, 0.8, -0.9}

	biquad(buf, 44100, FilterSpec{Kind: FilterNone})

	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("Sample %d changed: %f", i, buf[i])
		}
	}
}

// TestLowPassAttenuatesHighs verifies a low-pass actually reduces a
// high-frequency sine more than a low one
func TestLowPassAttenuatesHighs(t *testing.T) {
	spec := FilterSpec{Kind: FilterLowPass, Freq: 500}

	energy := func(freq float64) float64 {
		buf := make([]float64, 44100)
		for i := range buf {
			buf[i] = math.Sin(2 * math.Pi * freq * float64(i) / 44100)
		}
		biquad(buf, 44100, spec)

		var sum float64
		// Skip the settle-in
		for _, v := range buf[4410:] {
			sum += v * v
		}
		return sum
	}

	low := energy(100)
	high := energy(8000)
	if high >= low/10 {
		t.Errorf("Expected strong attenuation at 8kHz: low energy %f, high energy %f", low, high)
	}
}

// TestNormalizePeak verifies peak scaling and the all-zero guard
func TestNormalizePeak(t *testing.T) {
	buf := []float64{0.1, -0.4, 0.2}
	normalizePeak(buf, 0.8)

	var peak float64
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-0.8) > 1e-9 {
		t.Errorf("Expected peak 0.8, got %f", peak)
	}

	zero := []float64{0, 0, 0}
	normalizePeak(zero, 0.8)
	for _, v := range zero {
		if v != 0 {
			t.Error("Expected all-zero buffer to stay zero")
		}
	}
}

// TestSoftClip verifies output never leaves [-1,1] and small signals
// pass through untouched
func TestSoftClip(t *testing.T) {
	for v := -5.0; v <= 5.0; v += 0.01 {
		c := softClip(v)
		if c < -1.0 || c > 1.0 {
			t.Fatalf("softClip(%f) = %f out of range", v, c)
		}
	}

	if softClip(0.5) != 0.5 {
		t.Error("Expected 0.5 to pass through unclipped")
	}
	if softClip(-0.5) != -0.5 {
		t.Error("Expected -0.5 to pass through unclipped")
	}
}

// TestGenerateNoiseBurst verifies length, boundedness and decay
func TestGenerateNoiseBurst(t *testing.T) {
	req := noiseRequest{
		Duration: 400 * time.Millisecond,
		Filter:   FilterSpec{Kind: FilterBandPass, Freq: 1200, Q: 1.2},
		Level:    1.0,
	}

	buf := generateNoiseBurst(req, testRate)
	if len(buf) != testRate.N(req.Duration) {
		t.Fatalf("Expected %d samples, got %d", testRate.N(req.Duration), len(buf))
	}

	var firstHalf, secondHalf float64
	for i, v := range buf {
		if math.Abs(v) > 1.0 {
			t.Fatalf("Sample %d out of range: %f", i, v)
		}
		if i < len(buf)/2 {
			firstHalf += v * v
		} else {
			secondHalf += v * v
		}
	}
	if secondHalf >= firstHalf {
		t.Errorf("Expected decaying burst: first half energy %f, second %f", firstHalf, secondHalf)
	}
}

// TestGenerateNoiseBurstDegenerate verifies zero duration and zero
// level behave
func TestGenerateNoiseBurstDegenerate(t *testing.T) {
	if buf := generateNoiseBurst(noiseRequest{}, testRate); buf != nil {
		t.Error("Expected nil buffer for zero duration")
	}

	buf := generateNoiseBurst(noiseRequest{Duration: 50 * time.Millisecond, Level: 0}, testRate)
	for _, v := range buf {
		if v != 0 {
			t.Fatal("Expected silent buffer at zero level")
		}
	}
}

// TestBufferStreamer verifies the one-shot playback of a rendered
// buffer
func TestBufferStreamer(t *testing.T) {
	src := []float64{0.1, 0.2, 0.3}
	s := newBufferStreamer(src)

	buf := make([][2]float64, 2)
	n, ok := s.Stream(buf)
	if n != 2 || !ok {
		t.Fatalf("Expected (2,true), got (%d,%v)", n, ok)
	}
	if buf[0][0] != 0.1 || buf[0][1] != 0.1 {
		t.Errorf("Expected mono sample on both channels, got %v", buf[0])
	}

	n, ok = s.Stream(buf)
	if n != 1 || !ok {
		t.Fatalf("Expected (1,true) for the tail, got (%d,%v)", n, ok)
	}

	n, ok = s.Stream(buf)
	if n != 0 || ok {
		t.Errorf("Expected exhausted streamer, got (%d,%v)", n, ok)
	}
}
