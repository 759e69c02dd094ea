//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns coefficients whose transfer function is H(z) = 1.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Section is a single biquad filter with coefficients, internal state and a
// bypass switch. The zero value is an active section with all-zero
// coefficients (it outputs silence).
type Section struct {
	c        Coefficients
	d0, d1   float64
	bypassed bool
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns an active Section initialized with the given
// coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{c: c}
}

// SetCoefficients installs c. The delay registers are left untouched so a
// running stream morphs into the new response without a reset click.
func (s *Section) SetCoefficients(c Coefficients) {
	s.c = c
}

// Coefficients returns a copy of the installed coefficients.
func (s *Section) Coefficients() Coefficients {
	return s.c
}

// SetBypassed switches the section between active and pass-through.
func (s *Section) SetBypassed(bypassed bool) {
	s.bypassed = bypassed
}

// Bypassed reports whether the section currently passes its input through.
func (s *Section) Bypassed() bool {
	return s.bypassed
}

// ProcessSample filters one input sample and returns the output.
// A bypassed section returns x and does not advance its state.
func (s *Section) ProcessSample(x float64) float64 {
	if s.bypassed {
		return x
	}

	y := s.c.B0*x + s.d0
	s.d0 = s.c.B1*x - s.c.A1*y + s.d1
	s.d1 = s.c.B2*x - s.c.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
// A bypassed section leaves buf untouched.
func (s *Section) ProcessBlock(buf []float64) {
	if s.bypassed || len(buf) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.c.B0,
		B1: s.c.B1,
		B2: s.c.B2,
		A1: s.c.A1,
		A2: s.c.A2,
	}

	s.d0, s.d1 = processBlockImpl(coeffs, s.d0, s.d1, buf)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// Reset clears the delay line to zero. The bypass flag and coefficients are
// kept.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
