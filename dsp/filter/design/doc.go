// Package design computes biquad coefficients for the equalizer stages.
//
// [Butterworth] builds the maximally-flat lowpass or highpass cut filters as a
// cascade of second-order sections, one per conjugate pole pair. [Peak]
// builds the single bell section of the mid band. Both are pure functions:
// identical inputs always give bit-identical coefficients.
//
// The designers do not guard against a cutoff at or above Nyquist. Callers
// keep cutoffs below sampleRate/2; the eq package clamps at its configuration
// boundary.
package design
