package eq

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every argument error of this package.
	ErrInvalidArgument = errors.New("eq: invalid argument")

	// ErrInvalidSlope reports a slope selector outside Slope12..Slope48.
	ErrInvalidSlope = fmt.Errorf("%w: slope must be in 0..3", ErrInvalidArgument)

	// ErrInvalidOrder reports a cascade order other than 2, 4, 6 or 8.
	ErrInvalidOrder = fmt.Errorf("%w: order must be one of 2, 4, 6, 8", ErrInvalidArgument)

	// ErrNotConfigured is returned by Update before the first Configure.
	ErrNotConfigured = errors.New("eq: processor not configured")
)
