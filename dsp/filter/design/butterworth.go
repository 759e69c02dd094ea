package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// MaxOrder is the highest Butterworth order the cut cascades can hold
// (four second-order sections).
const MaxOrder = 8

var (
	// ErrInvalidArgument is matched by every argument error of this package.
	ErrInvalidArgument = errors.New("design: invalid argument")

	// ErrInvalidOrder reports an order that is odd or outside 2..MaxOrder.
	ErrInvalidOrder = fmt.Errorf("%w: order must be even and in 2..%d", ErrInvalidArgument, MaxOrder)

	// ErrInvalidKind reports an unknown filter kind.
	ErrInvalidKind = fmt.Errorf("%w: unknown filter kind", ErrInvalidArgument)
)

// Kind selects the response of a cut filter.
type Kind int

const (
	// Lowpass passes content below the cutoff.
	Lowpass Kind = iota
	// Highpass passes content above the cutoff.
	Highpass
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Butterworth designs a maximally-flat cut filter of the given even order as
// order/2 cascaded second-order sections. Sections are returned lowest Q
// first; their product is the order-N Butterworth response with -3 dB at
// cutoffHz.
//
// cutoffHz must stay below sampleRate/2; that is not checked here.
func Butterworth(kind Kind, cutoffHz, sampleRate float64, order int) ([]biquad.Coefficients, error) {
	if err := validate(kind, cutoffHz, sampleRate, order); err != nil {
		return nil, err
	}
	sections := make([]biquad.Coefficients, order/2)
	if err := ButterworthInto(sections, kind, cutoffHz, sampleRate, order); err != nil {
		return nil, err
	}
	return sections, nil
}

// ButterworthInto is Butterworth writing into dst, which must hold at least
// order/2 sections. It does not allocate, which lets the real-time path
// redesign coefficients every block.
func ButterworthInto(dst []biquad.Coefficients, kind Kind, cutoffHz, sampleRate float64, order int) error {
	if err := validate(kind, cutoffHz, sampleRate, order); err != nil {
		return err
	}
	n2 := order / 2
	if len(dst) < n2 {
		return fmt.Errorf("%w: need %d sections, have room for %d", ErrInvalidArgument, n2, len(dst))
	}

	for i := range n2 {
		q := ButterworthQ(order, n2-1-i)
		if kind == Lowpass {
			dst[i] = LowpassSection(cutoffHz, q, sampleRate)
		} else {
			dst[i] = HighpassSection(cutoffHz, q, sampleRate)
		}
	}
	return nil
}

func validate(kind Kind, cutoffHz, sampleRate float64, order int) error {
	if order < 2 || order > MaxOrder || order%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if kind != Lowpass && kind != Highpass {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}
	if !(cutoffHz > 0) || !(sampleRate > 0) {
		return fmt.Errorf("%w: cutoff %v Hz at %v Hz sample rate", ErrInvalidArgument, cutoffHz, sampleRate)
	}
	return nil
}

// ButterworthQ returns the quality factor of pole pair index (0..order/2-1)
// of an order-N Butterworth filter: 1 / (2 sin(pi(2i+1)/(2N))).
func ButterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}
