package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(512),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d valid=%v\n", cfg.SampleRate, cfg.BlockSize, cfg.Validate() == nil)

	// Output:
	// sampleRate=44100 blockSize=512 valid=true
}

func ExampleDeinterleave() {
	left := make([]float64, 2)
	right := make([]float64, 2)
	n := core.Deinterleave(left, right, []float64{1, 2, 3, 4})
	fmt.Println(n, left, right)

	// Output:
	// 2 [1 3] [2 4]
}
