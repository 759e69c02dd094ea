// Package eqflags binds equalizer settings to command-line flags shared by
// the commands.
package eqflags

import (
	"flag"
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// Values holds the parsed flag values.
type Values struct {
	LowCutFreq   float64
	LowCutSlope  int // dB/oct
	HighCutFreq  float64
	HighCutSlope int // dB/oct
	PeakFreq     float64
	PeakGainDB   float64
	PeakQuality  float64
}

// Register adds the EQ flags to fs, defaulting to eq.DefaultSettings.
func Register(fs *flag.FlagSet) *Values {
	d := eq.DefaultSettings()
	v := &Values{}
	fs.Float64Var(&v.LowCutFreq, "lowcut", d.LowCutFreq, "low-cut frequency in Hz")
	fs.IntVar(&v.LowCutSlope, "lowcut-slope", d.LowCutSlope.DBPerOctave(), "low-cut slope in dB/oct (12, 24, 36, 48)")
	fs.Float64Var(&v.HighCutFreq, "highcut", d.HighCutFreq, "high-cut frequency in Hz")
	fs.IntVar(&v.HighCutSlope, "highcut-slope", d.HighCutSlope.DBPerOctave(), "high-cut slope in dB/oct (12, 24, 36, 48)")
	fs.Float64Var(&v.PeakFreq, "peak", d.PeakFreq, "peak centre frequency in Hz")
	fs.Float64Var(&v.PeakGainDB, "gain", d.PeakGainDB, "peak gain in dB")
	fs.Float64Var(&v.PeakQuality, "q", d.PeakQuality, "peak quality factor")
	return v
}

// Settings converts the flag values. Slopes must be one of 12, 24, 36, 48;
// everything else is clamped to the declared ranges.
func (v *Values) Settings() (eq.Settings, error) {
	low, err := slopeFromDB(v.LowCutSlope)
	if err != nil {
		return eq.Settings{}, fmt.Errorf("-lowcut-slope: %w", err)
	}
	high, err := slopeFromDB(v.HighCutSlope)
	if err != nil {
		return eq.Settings{}, fmt.Errorf("-highcut-slope: %w", err)
	}

	s := eq.Settings{
		LowCutFreq:   v.LowCutFreq,
		LowCutSlope:  low,
		HighCutFreq:  v.HighCutFreq,
		HighCutSlope: high,
		PeakFreq:     v.PeakFreq,
		PeakGainDB:   v.PeakGainDB,
		PeakQuality:  v.PeakQuality,
	}
	return s.Clamp(), nil
}

func slopeFromDB(db int) (eq.Slope, error) {
	for _, s := range eq.Slopes {
		if s.DBPerOctave() == db {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %d dB/oct", eq.ErrInvalidSlope, db)
}
