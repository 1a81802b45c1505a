package audio

import "math"

// FilterKind selects the biquad response
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLowPass
	FilterBandPass
	FilterHighPass
)

// FilterSpec describes the filter applied to a noise burst
type FilterSpec struct {
	Kind FilterKind
	// Freq is the cutoff (low/high-pass) or center (band-pass) in Hz
	Freq float64
	// Q is the resonance; 0.707 is flat for the pass filters
	Q float64
}

// biquad applies an RBJ-cookbook second-order filter to buf in place
func biquad(buf []float64, rate int, spec FilterSpec) {
	if spec.Kind == FilterNone || spec.Freq <= 0 || len(buf) == 0 {
		return
	}

	q := spec.Q
	if q <= 0 {
		q = 0.707
	}

	w0 := 2 * math.Pi * spec.Freq / float64(rate)
	cosW := math.Cos(w0)
	sinW := math.Sin(w0)
	alpha := sinW / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64
	switch spec.Kind {
	case FilterLowPass:
		b0 = (1 - cosW) / 2
		b1 = 1 - cosW
		b2 = (1 - cosW) / 2
	case FilterHighPass:
		b0 = (1 + cosW) / 2
		b1 = -(1 + cosW)
		b2 = (1 + cosW) / 2
	case FilterBandPass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	}
	a0 = 1 + alpha
	a1 = -2 * cosW
	a2 = 1 - alpha

	b0 /= a0
	b1 /= a0
	b2 /= a0
	a1 /= a0
	a2 /= a0

	var x1, x2, y1, y2 float64
	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}
}

// normalizePeak scales buf so its absolute peak sits at target
func normalizePeak(buf []float64, target float64) {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	scale := target / peak
	for i := range buf {
		buf[i] *= scale
	}
}

// softClip keeps hot samples inside [-1,1] without hard edges
func softClip(v float64) float64 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}
