//go:build !purego

package biquad

import (
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/generic"  // register generic backend
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry" // initialize backend registry
	_ "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/unroll4"  // register wide-issue backends
)
