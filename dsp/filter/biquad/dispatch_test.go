//go:build !purego

package biquad

import (
	"sync"
	"testing"

	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func resetProcessBlockDispatchForTest() {
	processBlockImpl = nil
	processBlockInitOnce = sync.Once{}
}

func TestProcessBlockDispatch_Modes(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		wantImpl string
	}{
		{
			name:     "generic-forced",
			features: cpu.Features{ForceGeneric: true, Architecture: "amd64"},
			wantImpl: "generic",
		},
		{
			name:     "sse2",
			features: cpu.Features{HasSSE2: true, Architecture: "amd64"},
			wantImpl: "unroll4-sse2",
		},
		{
			name:     "avx2",
			features: cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"},
			wantImpl: "unroll4-avx2",
		},
		{
			name:     "neon",
			features: cpu.Features{HasNEON: true, Architecture: "arm64"},
			wantImpl: "unroll4-neon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)
			defer cpu.ResetDetection()

			resetProcessBlockDispatchForTest()
			defer resetProcessBlockDispatchForTest()

			entry := archregistry.Global.Lookup(cpu.DetectFeatures())
			if entry == nil {
				t.Fatal("Lookup returned nil")
			}
			if entry.Name != tt.wantImpl {
				t.Fatalf("expected %q, got %q", tt.wantImpl, entry.Name)
			}

			sRef := NewSection(smoothing())
			sGot := NewSection(smoothing())
			input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}

			ref := make([]float64, len(input))
			for i, x := range input {
				ref[i] = sRef.ProcessSample(x)
			}

			got := append([]float64(nil), input...)
			sGot.ProcessBlock(got)

			for i := range got {
				if !almostEqual(got[i], ref[i], eps) {
					t.Fatalf("sample %d mismatch: got %.15f, want %.15f", i, got[i], ref[i])
				}
			}
		})
	}
}
