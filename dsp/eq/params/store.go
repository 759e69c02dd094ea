package params

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// Store holds the current plain value of every parameter. Each value is an
// atomic float, so a control goroutine may Set while the audio goroutine
// calls Load. Updates to different parameters are not published together:
// a Load racing a multi-parameter change may see some of it.
type Store struct {
	values [numParams]atomic.Uint64
}

var _ eq.SettingsSource = (*Store)(nil)

// NewStore returns a store holding the defaults.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores every default.
func (s *Store) Reset() {
	for i := range layout {
		s.values[i].Store(math.Float64bits(layout[i].Default))
	}
}

// Set stores plain for the parameter named by ID or Key after clamping and
// step snapping, and returns the value actually stored.
func (s *Store) Set(name string, plain float64) (float64, error) {
	i := indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if math.IsNaN(plain) {
		return 0, fmt.Errorf("%w: %s is NaN", ErrInvalidValue, layout[i].ID)
	}
	v := layout[i].Snap(plain)
	s.values[i].Store(math.Float64bits(v))
	return v, nil
}

// SetNormalized is Set with a value in [0, 1].
func (s *Store) SetNormalized(name string, normalized float64) (float64, error) {
	i := indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if math.IsNaN(normalized) {
		return 0, fmt.Errorf("%w: %s is NaN", ErrInvalidValue, layout[i].ID)
	}
	return s.Set(name, layout[i].Denormalize(normalized))
}

// SetText parses text with the parameter's Parse and stores the result.
func (s *Store) SetText(name, text string) (float64, error) {
	p, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	v, err := p.Parse(text)
	if err != nil {
		return 0, err
	}
	return s.Set(name, v)
}

// Get returns the plain value of a parameter.
func (s *Store) Get(name string) (float64, error) {
	i := indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return s.get(i), nil
}

func (s *Store) get(i int) float64 {
	return math.Float64frombits(s.values[i].Load())
}

// Apply stores every field of settings.
func (s *Store) Apply(settings eq.Settings) {
	c := settings.Clamp()
	for i, v := range [numParams]float64{
		idxLowCutFreq:   c.LowCutFreq,
		idxHighCutFreq:  c.HighCutFreq,
		idxPeakFreq:     c.PeakFreq,
		idxPeakGain:     c.PeakGainDB,
		idxPeakQuality:  c.PeakQuality,
		idxLowCutSlope:  float64(c.LowCutSlope),
		idxHighCutSlope: float64(c.HighCutSlope),
	} {
		s.values[i].Store(math.Float64bits(layout[i].Snap(v)))
	}
}

// Load returns the current values as a clamped snapshot. It does not lock
// or allocate.
func (s *Store) Load() eq.Settings {
	return eq.Settings{
		LowCutFreq:   s.get(idxLowCutFreq),
		HighCutFreq:  s.get(idxHighCutFreq),
		PeakFreq:     s.get(idxPeakFreq),
		PeakGainDB:   s.get(idxPeakGain),
		PeakQuality:  s.get(idxPeakQuality),
		LowCutSlope:  eq.Slope(math.Round(s.get(idxLowCutSlope))),
		HighCutSlope: eq.Slope(math.Round(s.get(idxHighCutSlope))),
	}.Clamp()
}
