package eq

import "fmt"

// Slope selects the roll-off steepness of a cut cascade.
type Slope int

const (
	Slope12 Slope = iota // 12 dB/oct, order 2, one section
	Slope24              // 24 dB/oct, order 4
	Slope36              // 36 dB/oct, order 6
	Slope48              // 48 dB/oct, order 8, all four sections
)

// Slopes lists the valid selectors in ascending steepness.
var Slopes = [...]Slope{Slope12, Slope24, Slope36, Slope48}

// Valid reports whether s is one of the four selectors.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// Order returns the Butterworth order 2*(s+1).
func (s Slope) Order() int {
	return 2 * (int(s) + 1)
}

// Sections returns the number of active biquads, s+1.
func (s Slope) Sections() int {
	return int(s) + 1
}

// DBPerOctave returns the asymptotic roll-off.
func (s Slope) DBPerOctave() int {
	return 12 * (int(s) + 1)
}

func (s Slope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slope(%d)", int(s))
	}
	return fmt.Sprintf("%d dB/oct", s.DBPerOctave())
}

// SlopeForOrder maps an order back to its selector.
func SlopeForOrder(order int) (Slope, error) {
	if order < 2 || order > 2*MaxSections || order%2 != 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	return Slope(order/2 - 1), nil
}
