package eq

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// MaxSections is the fixed length of a cut cascade.
const MaxSections = 4

// CutCascade is four biquad sections in series. An order-N configuration
// runs the first N/2 sections and bypasses the rest; the active sections
// always form a prefix.
//
// The zero value has every section active with zero coefficients and so
// outputs silence; configure it with ApplyOrder or ApplySlope first.
type CutCascade struct {
	sections [MaxSections]biquad.Section
}

// ApplyOrder bypasses every section, then enables sections order/2-1 down
// to 0 with the matching entries of coeffs. Each higher order therefore
// runs a strict superset of the sections of the order below it.
//
// order must be 2, 4, 6 or 8 and coeffs must hold at least order/2 entries;
// otherwise the cascade is left unchanged. Delay state is never touched.
func (c *CutCascade) ApplyOrder(order int, coeffs []biquad.Coefficients) error {
	if order < 2 || order > 2*MaxSections || order%2 != 0 {
		return checked(fmt.Errorf("%w: got %d", ErrInvalidOrder, order))
	}

	count := order / 2
	if len(coeffs) < count {
		return checked(fmt.Errorf("%w: order %d needs %d sections, got %d",
			ErrInvalidArgument, order, count, len(coeffs)))
	}

	c.BypassAll()
	for i := count - 1; i >= 0; i-- {
		c.enable(i, coeffs[i])
	}

	return nil
}

// ApplySlope is ApplyOrder(slope.Order(), coeffs).
func (c *CutCascade) ApplySlope(slope Slope, coeffs []biquad.Coefficients) error {
	if !slope.Valid() {
		return checked(fmt.Errorf("%w: got %d", ErrInvalidSlope, int(slope)))
	}
	return c.ApplyOrder(slope.Order(), coeffs)
}

// EnableSection installs coeffs into section i and activates it without
// changing any other section.
func (c *CutCascade) EnableSection(i int, coeffs biquad.Coefficients) error {
	if i < 0 || i >= MaxSections {
		return checked(fmt.Errorf("%w: section index %d", ErrInvalidArgument, i))
	}
	c.enable(i, coeffs)
	return nil
}

func (c *CutCascade) enable(i int, coeffs biquad.Coefficients) {
	c.sections[i].SetCoefficients(coeffs)
	c.sections[i].SetBypassed(false)
}

// BypassAll makes the cascade transparent.
func (c *CutCascade) BypassAll() {
	for i := range c.sections {
		c.sections[i].SetBypassed(true)
	}
}

// ActiveSections returns how many sections are not bypassed.
func (c *CutCascade) ActiveSections() int {
	n := 0
	for i := range c.sections {
		if !c.sections[i].Bypassed() {
			n++
		}
	}
	return n
}

// Section returns section i for inspection. It panics if i is out of range.
func (c *CutCascade) Section(i int) *biquad.Section {
	return &c.sections[i]
}

// ProcessSample runs x through sections 0 to 3.
func (c *CutCascade) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place.
func (c *CutCascade) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears the delay state of every section. Bypass flags and
// coefficients are kept.
func (c *CutCascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// MagnitudeDB returns the combined magnitude of the active sections at
// freqHz.
func (c *CutCascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 0.0
	for i := range c.sections {
		if c.sections[i].Bypassed() {
			continue
		}
		db += c.sections[i].Coefficients().MagnitudeDB(freqHz, sampleRate)
	}
	return db
}
