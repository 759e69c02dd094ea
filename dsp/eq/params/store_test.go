package params_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/eq/params"
)

func TestStore_DefaultsMatchSettings(t *testing.T) {
	s := params.NewStore()
	assert.Equal(t, eq.DefaultSettings(), s.Load())

	for _, p := range params.Layout() {
		v, err := s.Get(string(p.ID))
		require.NoError(t, err)
		assert.Equal(t, p.Default, v, p.ID)
	}
}

func TestStore_Set(t *testing.T) {
	s := params.NewStore()

	v, err := s.Set("Peak Gain", 5.2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = s.Set("highcut_freq", 50000)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, v)

	_, err = s.Set("Drive", 1)
	require.ErrorIs(t, err, params.ErrUnknownParam)

	_, err = s.Set("Peak Freq", math.NaN())
	require.ErrorIs(t, err, params.ErrInvalidValue)

	got := s.Load()
	assert.Equal(t, 5.0, got.PeakGainDB)
	assert.Equal(t, 20000.0, got.HighCutFreq)
	assert.Equal(t, 750.0, got.PeakFreq)
}

func TestStore_SetNormalizedAndText(t *testing.T) {
	s := params.NewStore()

	v, err := s.SetNormalized("LowCut Slope", 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = s.SetNormalized("peak_freq", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1269.0, v)

	_, err = s.SetNormalized("peak_freq", math.NaN())
	require.ErrorIs(t, err, params.ErrInvalidValue)

	v, err = s.SetText("HighCut Slope", "24 db/Oct")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = s.SetText("HighCut Slope", "steep")
	require.ErrorIs(t, err, params.ErrInvalidValue)
	_, err = s.SetText("Mix", "1")
	require.ErrorIs(t, err, params.ErrUnknownParam)

	got := s.Load()
	assert.Equal(t, eq.Slope48, got.LowCutSlope)
	assert.Equal(t, eq.Slope24, got.HighCutSlope)
	assert.Equal(t, 1269.0, got.PeakFreq)
}

func TestStore_ApplyLoad(t *testing.T) {
	want := eq.Settings{
		PeakFreq: 2500, PeakGainDB: -7.5, PeakQuality: 2.35,
		LowCutFreq: 120, HighCutFreq: 9000,
		LowCutSlope: eq.Slope36, HighCutSlope: eq.Slope24,
	}
	s := params.NewStore()
	s.Apply(want)
	assert.Equal(t, want, s.Load())

	s.Reset()
	assert.Equal(t, eq.DefaultSettings(), s.Load())
}

func TestStore_LoadDoesNotAllocate(t *testing.T) {
	s := params.NewStore()
	var src eq.SettingsSource = s
	var sink eq.Settings
	assert.Zero(t, testing.AllocsPerRun(100, func() { sink = src.Load() }))
	_ = sink
}

func TestStore_DrivesProcessor(t *testing.T) {
	p, err := eq.New()
	require.NoError(t, err)

	s := params.NewStore()
	_, err = s.Set("Peak Gain", 12)
	require.NoError(t, err)
	_, err = s.Set("LowCut Slope", 2)
	require.NoError(t, err)

	buf := make([]float64, 64)
	require.NoError(t, p.Process(s, buf, buf))

	assert.Equal(t, 3, p.Chain(0).LowCut().ActiveSections())
	assert.InDelta(t, 12, p.Chain(1).Peak().Coefficients().MagnitudeDB(750, 48000), 1e-9)
}
