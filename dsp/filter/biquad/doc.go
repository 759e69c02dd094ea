// Package biquad provides the second-order IIR section used throughout the
// equalizer.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. A section can be bypassed: it then forwards its input
// untouched and keeps its two delay registers frozen, so re-enabling it later
// continues from the state it had when it was switched off.
//
// Replacing coefficients with [Section.SetCoefficients] never clears the
// delay registers. Only [Section.Reset] does, and the equalizer calls it on
// stream reconfiguration only.
//
// Coefficient design (Butterworth cut filters, peaking EQ) lives in
// dsp/filter/design.
package biquad
