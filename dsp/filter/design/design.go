package design

import (
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// LowpassSection designs a single RBJ-cookbook lowpass section at freq (Hz) with
// quality factor q. The prototype is the bilinear transform of
// 1/(s^2 + s/q + 1) prewarped to freq.
func LowpassSection(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha := cookbookTerms(freq, q, sampleRate)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighpassSection designs a single RBJ-cookbook highpass section at freq (Hz) with
// quality factor q.
func HighpassSection(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha := cookbookTerms(freq, q, sampleRate)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Peak designs a peaking (bell) section centred on freq with quality factor q
// and a linear amplitude gain at the centre frequency. gainLinear of 1 gives
// the identity response; values below 1 cut, above 1 boost.
//
// Non-positive gains are treated as the smallest representable cut so the
// section stays finite.
func Peak(sampleRate, freq, q, gainLinear float64) biquad.Coefficients {
	cw, alpha := cookbookTerms(freq, q, sampleRate)

	a := math.Sqrt(math.Max(gainLinear, math.SmallestNonzeroFloat64))
	alphaTimesA := alpha * a
	alphaOverA := alpha / a

	b0 := 1 + alphaTimesA
	b1 := -2 * cw
	b2 := 1 - alphaTimesA
	a0 := 1 + alphaOverA
	a1 := -2 * cw
	a2 := 1 - alphaOverA

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// PeakDB is Peak with the centre gain given in decibels.
func PeakDB(sampleRate, freq, q, gainDB float64) biquad.Coefficients {
	return Peak(sampleRate, freq, q, math.Pow(10, gainDB/20))
}

// cookbookTerms returns cos(w0) and alpha = sin(w0)/(2q) for the RBJ formulas.
// freq is used as given; no Nyquist check is performed.
func cookbookTerms(freq, q, sampleRate float64) (cw, alpha float64) {
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * normalizedQ(q))
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
