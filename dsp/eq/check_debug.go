//go:build eqdebug

package eq

import "errors"

const debugChecks = true

// checked panics on invalid arguments so misuse surfaces at the call site.
func checked(err error) error {
	if err != nil && errors.Is(err, ErrInvalidArgument) {
		panic(err)
	}
	return err
}
