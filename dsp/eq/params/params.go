// Package params declares the user-facing parameter layout of the
// equalizer and a lock-free store that hosts and control surfaces write to.
//
// Every parameter has a plain value in its own unit and a normalized value
// in [0, 1]. Frequency parameters use a skewed mapping so that the lower
// half of the normalized range covers roughly 20 Hz to 1.3 kHz.
package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
)

// ID is the stable host-facing identifier of a parameter.
type ID string

const (
	LowCutFreq   ID = "LowCut Freq"
	HighCutFreq  ID = "HighCut Freq"
	PeakFreq     ID = "Peak Freq"
	PeakGain     ID = "Peak Gain"
	PeakQuality  ID = "Peak Quality"
	LowCutSlope  ID = "LowCut Slope"
	HighCutSlope ID = "HighCut Slope"
)

var (
	// ErrUnknownParam is returned for IDs and keys not in the layout.
	ErrUnknownParam = errors.New("params: unknown parameter")

	// ErrInvalidValue is returned for NaN values and unparsable text.
	ErrInvalidValue = errors.New("params: invalid value")
)

// Unit selects formatting and parsing.
type Unit int

const (
	UnitHertz Unit = iota
	UnitDecibel
	UnitQuality
	UnitChoice
)

// frequencySkew puts 1 kHz near normalized 0.47.
const frequencySkew = 0.25

// Param describes one parameter.
type Param struct {
	ID      ID
	Key     string // URL- and topic-safe name, e.g. "lowcut_freq"
	Unit    Unit
	Min     float64
	Max     float64
	Step    float64 // 0 for continuous
	Skew    float64 // 1 for linear
	Default float64
	Choices []string // UnitChoice only; plain value is the index
}

var slopeChoices = []string{"12 db/Oct", "24 db/Oct", "36 db/Oct", "48 db/Oct"}

// index order of the layout; Store uses it for its value slots.
const (
	idxLowCutFreq = iota
	idxHighCutFreq
	idxPeakFreq
	idxPeakGain
	idxPeakQuality
	idxLowCutSlope
	idxHighCutSlope
	numParams
)

var layout = [numParams]Param{
	idxLowCutFreq:   freqParam(LowCutFreq, "lowcut_freq", eq.MinFreq),
	idxHighCutFreq:  freqParam(HighCutFreq, "highcut_freq", eq.MaxFreq),
	idxPeakFreq:     freqParam(PeakFreq, "peak_freq", 750),
	idxPeakGain:     {ID: PeakGain, Key: "peak_gain", Unit: UnitDecibel, Min: eq.MinGainDB, Max: eq.MaxGainDB, Step: 0.5, Skew: 1},
	idxPeakQuality:  {ID: PeakQuality, Key: "peak_quality", Unit: UnitQuality, Min: eq.MinQuality, Max: eq.MaxQuality, Step: 0.05, Skew: 1, Default: 1},
	idxLowCutSlope:  choiceParam(LowCutSlope, "lowcut_slope"),
	idxHighCutSlope: choiceParam(HighCutSlope, "highcut_slope"),
}

func freqParam(id ID, key string, def float64) Param {
	return Param{ID: id, Key: key, Unit: UnitHertz, Min: eq.MinFreq, Max: eq.MaxFreq, Step: 1, Skew: frequencySkew, Default: def}
}

func choiceParam(id ID, key string) Param {
	return Param{ID: id, Key: key, Unit: UnitChoice, Min: 0, Max: float64(len(slopeChoices) - 1), Step: 1, Skew: 1, Choices: slopeChoices}
}

// Layout returns every parameter in declaration order.
func Layout() []Param {
	out := make([]Param, numParams)
	copy(out, layout[:])
	return out
}

// Lookup finds a parameter by ID or Key.
func Lookup(name string) (Param, bool) {
	i := indexOf(name)
	if i < 0 {
		return Param{}, false
	}
	return layout[i], true
}

func indexOf(name string) int {
	for i := range layout {
		if string(layout[i].ID) == name || layout[i].Key == name {
			return i
		}
	}
	return -1
}

// Snap clamps plain into [Min, Max] and rounds it to the nearest step.
func (p Param) Snap(plain float64) float64 {
	if p.Step > 0 {
		plain = p.Min + p.Step*math.Floor((plain-p.Min)/p.Step+0.5)
		// Drop the representation error of the step arithmetic.
		plain = math.Round(plain*1e9) / 1e9
	}
	return core.Clamp(plain, p.Min, p.Max)
}

// Normalize maps a plain value to [0, 1]. Values outside the range clamp.
func (p Param) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	proportion := core.Clamp((plain-p.Min)/(p.Max-p.Min), 0, 1)
	if p.Skew > 0 && p.Skew != 1 {
		proportion = math.Pow(proportion, p.Skew)
	}
	return proportion
}

// Denormalize maps [0, 1] back to a snapped plain value.
func (p Param) Denormalize(normalized float64) float64 {
	proportion := core.Clamp(normalized, 0, 1)
	if p.Skew > 0 && p.Skew != 1 && proportion > 0 {
		proportion = math.Exp(math.Log(proportion) / p.Skew)
	}
	return p.Snap(p.Min + (p.Max-p.Min)*proportion)
}

// Format renders a plain value for display.
func (p Param) Format(plain float64) string {
	switch p.Unit {
	case UnitHertz:
		if plain >= 1000 {
			return fmt.Sprintf("%.2f kHz", plain/1000)
		}
		return fmt.Sprintf("%.0f Hz", plain)
	case UnitDecibel:
		return fmt.Sprintf("%.1f dB", plain)
	case UnitChoice:
		i := int(p.Snap(plain))
		return p.Choices[i]
	default:
		return fmt.Sprintf("%.2f", plain)
	}
}

// Parse reads a plain value from text as produced by Format. Units are
// optional; choices match by name (case-insensitive) or index.
func (p Param) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)

	if p.Unit == UnitChoice {
		for i, c := range p.Choices {
			if strings.EqualFold(s, c) {
				return float64(i), nil
			}
		}
	}

	scale := 1.0
	lower := strings.ToLower(s)
	switch {
	case p.Unit == UnitHertz && strings.HasSuffix(lower, "khz"):
		s, scale = s[:len(s)-3], 1000
	case p.Unit == UnitHertz && strings.HasSuffix(lower, "hz"):
		s = s[:len(s)-2]
	case p.Unit == UnitDecibel && strings.HasSuffix(lower, "db"):
		s = s[:len(s)-2]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, p.ID, text)
	}
	return v * scale, nil
}
