// Package response measures the magnitude response of a block processor
// from the FFT of its impulse response.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const minFFTSize = 16

// ErrInvalidArgument is returned for unusable sample rates, FFT sizes or
// impulse responses.
var ErrInvalidArgument = errors.New("response: invalid argument")

// Response is a one-sided magnitude spectrum, bins 0 through fftSize/2.
type Response struct {
	sampleRate float64
	fftSize    int
	mag        []float64 // linear
}

// Measure feeds a unit impulse of fftSize samples through process, which
// must filter its argument in place, and returns the spectrum of the
// result. fftSize must be a power of two of at least 16; choose it long
// enough for the impulse response to decay.
func Measure(process func([]float64), sampleRate float64, fftSize int) (*Response, error) {
	if process == nil {
		return nil, fmt.Errorf("%w: nil process func", ErrInvalidArgument)
	}
	if err := validate(sampleRate, fftSize); err != nil {
		return nil, err
	}

	ir := make([]float64, fftSize)
	ir[0] = 1
	process(ir)

	return FromImpulse(ir, sampleRate)
}

// FromImpulse returns the spectrum of an impulse response whose length is a
// power of two.
func FromImpulse(ir []float64, sampleRate float64) (*Response, error) {
	n := len(ir)
	if err := validate(sampleRate, n); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Response{sampleRate: sampleRate, fftSize: n, mag: mag}, nil
}

func validate(sampleRate float64, fftSize int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidArgument, sampleRate)
	}
	if fftSize < minFFTSize || bits.OnesCount(uint(fftSize)) != 1 {
		return fmt.Errorf("%w: fft size %d is not a power of two >= %d", ErrInvalidArgument, fftSize, minFFTSize)
	}
	return nil
}

// SampleRate returns the sample rate the response was measured at.
func (r *Response) SampleRate() float64 { return r.sampleRate }

// FFTSize returns the transform length.
func (r *Response) FFTSize() int { return r.fftSize }

// BinWidth returns the spacing of adjacent bins in Hz.
func (r *Response) BinWidth() float64 {
	return r.sampleRate / float64(r.fftSize)
}

// Frequencies returns the centre frequency of every bin.
func (r *Response) Frequencies() []float64 {
	out := make([]float64, len(r.mag))
	w := r.BinWidth()
	for k := range out {
		out[k] = float64(k) * w
	}
	return out
}

// Magnitudes returns a copy of the linear magnitude of every bin.
func (r *Response) Magnitudes() []float64 {
	return append([]float64(nil), r.mag...)
}

// MagnitudesDB returns the magnitude of every bin in dB. Exact zeros map to
// -Inf.
func (r *Response) MagnitudesDB() []float64 {
	out := make([]float64, len(r.mag))
	for k, m := range r.mag {
		out[k] = core.LinearToDB(m)
	}
	return out
}

// MagnitudeAt returns the linear magnitude at freqHz, interpolated between
// the two nearest bins. Frequencies outside 0..Nyquist are clamped.
func (r *Response) MagnitudeAt(freqHz float64) float64 {
	pos := core.Clamp(freqHz/r.BinWidth(), 0, float64(len(r.mag)-1))
	k := int(pos)
	if k >= len(r.mag)-1 {
		return r.mag[len(r.mag)-1]
	}
	frac := pos - float64(k)
	return r.mag[k]*(1-frac) + r.mag[k+1]*frac
}

// MagnitudeDBAt is MagnitudeAt in dB.
func (r *Response) MagnitudeDBAt(freqHz float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freqHz))
}

// SlopeDB returns the level change from f1 to f2 in dB. A lowpass measured
// above its cutoff gives a negative value for f2 > f1.
func (r *Response) SlopeDB(f1, f2 float64) float64 {
	return r.MagnitudeDBAt(f2) - r.MagnitudeDBAt(f1)
}
