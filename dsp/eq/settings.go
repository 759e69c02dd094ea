package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/core"
)

// Declared parameter ranges.
const (
	MinFreq    = 20.0
	MaxFreq    = 20000.0
	MinGainDB  = -24.0
	MaxGainDB  = 24.0
	MinQuality = 0.1
	MaxQuality = 10.0
)

// Settings is one parameter snapshot. It is a plain value: a processor
// copies it and never holds a reference.
type Settings struct {
	PeakFreq    float64 // Hz
	PeakGainDB  float64 // dB, 0 leaves the peak section transparent
	PeakQuality float64

	LowCutFreq  float64 // Hz, corner of the lowpass low-cut stage
	HighCutFreq float64 // Hz, corner of the highpass high-cut stage

	LowCutSlope  Slope
	HighCutSlope Slope
}

// DefaultSettings returns the initial values of the parameter layout. With
// the low-cut stage a lowpass at 20 Hz and the high-cut stage a highpass at
// 20 kHz, the default chain passes almost nothing; see the package doc.
func DefaultSettings() Settings {
	return Settings{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQuality:  1,
		LowCutFreq:   MinFreq,
		HighCutFreq:  MaxFreq,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// Validate reports values no processor can design filters for: unknown
// slopes, non-finite numbers, and non-positive frequencies or quality.
// Values outside the declared ranges but otherwise usable pass.
func (s Settings) Validate() error {
	if !s.LowCutSlope.Valid() {
		return fmt.Errorf("%w: low-cut %d", ErrInvalidSlope, int(s.LowCutSlope))
	}
	if !s.HighCutSlope.Valid() {
		return fmt.Errorf("%w: high-cut %d", ErrInvalidSlope, int(s.HighCutSlope))
	}

	for _, f := range [...]struct {
		name string
		v    float64
	}{
		{"peak frequency", s.PeakFreq},
		{"peak quality", s.PeakQuality},
		{"low-cut frequency", s.LowCutFreq},
		{"high-cut frequency", s.HighCutFreq},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidArgument, f.name, f.v)
		}
	}

	if math.IsNaN(s.PeakGainDB) || math.IsInf(s.PeakGainDB, 0) {
		return fmt.Errorf("%w: peak gain %v dB", ErrInvalidArgument, s.PeakGainDB)
	}
	return nil
}

// Clamp limits every field to its declared range. NaN fields fall back to
// the default value and slopes are clamped into Slope12..Slope48, so the
// result always validates.
func (s Settings) Clamp() Settings {
	d := DefaultSettings()
	return Settings{
		PeakFreq:     clampOr(s.PeakFreq, MinFreq, MaxFreq, d.PeakFreq),
		PeakGainDB:   clampOr(s.PeakGainDB, MinGainDB, MaxGainDB, d.PeakGainDB),
		PeakQuality:  clampOr(s.PeakQuality, MinQuality, MaxQuality, d.PeakQuality),
		LowCutFreq:   clampOr(s.LowCutFreq, MinFreq, MaxFreq, d.LowCutFreq),
		HighCutFreq:  clampOr(s.HighCutFreq, MinFreq, MaxFreq, d.HighCutFreq),
		LowCutSlope:  clampSlope(s.LowCutSlope),
		HighCutSlope: clampSlope(s.HighCutSlope),
	}
}

func clampOr(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return core.Clamp(v, lo, hi)
}

func clampSlope(s Slope) Slope {
	return min(max(s, Slope12), Slope48)
}
