package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := smoothing()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := smoothing()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := smoothing()
	for _, freq := range []float64{100, 1000, 10000} {
		if got, want := c.Phase(freq, 48000), cmplx.Phase(c.Response(freq, 48000)); !almostEqual(got, want, 1e-12) {
			t.Errorf("freq=%v: Phase=%v, want %v", freq, got, want)
		}
	}
}

func TestResponse_Identity(t *testing.T) {
	c := Identity()
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		if mag := cmplx.Abs(c.Response(freq, 48000)); !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestIsIdentity(t *testing.T) {
	if !Identity().IsIdentity(0) {
		t.Fatal("Identity() should be identity")
	}
	// Numerator equal to denominator cancels.
	if !(Coefficients{B0: 1, B1: -1.2, B2: 0.5, A1: -1.2, A2: 0.5}).IsIdentity(1e-15) {
		t.Fatal("cancelling section should be identity")
	}
	if smoothing().IsIdentity(1e-6) {
		t.Fatal("smoothing section reported as identity")
	}
}

func TestCascadeMagnitudeDB_SumsSections(t *testing.T) {
	a := smoothing()
	b := Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1}
	sr := 48000.0
	for _, freq := range []float64{50, 1000, 15000} {
		want := a.MagnitudeDB(freq, sr) + b.MagnitudeDB(freq, sr)
		got := CascadeMagnitudeDB([]Coefficients{a, b}, freq, sr)
		if !almostEqual(got, want, 1e-12) {
			t.Errorf("freq=%v: got %v, want %v", freq, got, want)
		}
	}
	if got := CascadeMagnitudeDB(nil, 1000, sr); got != 0 {
		t.Errorf("empty cascade: got %v, want 0 dB", got)
	}
}

func TestSection_ImpulseResponse(t *testing.T) {
	s := NewSection(smoothing())
	s.ProcessSample(0.3)
	saved := s.State()

	ir := s.ImpulseResponse(4)
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Errorf("ir[%d]=%v, want %v", i, ir[i], want[i])
		}
	}
	if s.State() != saved {
		t.Fatalf("ImpulseResponse disturbed state: %v vs %v", s.State(), saved)
	}
	if s.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestSection_ImpulseResponse_Bypassed(t *testing.T) {
	s := NewSection(smoothing())
	s.SetBypassed(true)
	ir := s.ImpulseResponse(3)
	if ir[0] != 1 || ir[1] != 0 || ir[2] != 0 {
		t.Fatalf("bypassed impulse response = %v, want unit impulse", ir)
	}
}
