package eqflags

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

func parse(t *testing.T, args ...string) (*Values, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	v := Register(fs)
	return v, fs.Parse(args)
}

func TestDefaults(t *testing.T) {
	v, err := parse(t)
	require.NoError(t, err)

	s, err := v.Settings()
	require.NoError(t, err)
	assert.Equal(t, eq.DefaultSettings(), s)
}

func TestSettings(t *testing.T) {
	v, err := parse(t, "-lowcut", "8000", "-lowcut-slope", "48", "-highcut", "30",
		"-highcut-slope", "24", "-peak", "1500", "-gain", "-30", "-q", "2")
	require.NoError(t, err)

	s, err := v.Settings()
	require.NoError(t, err)
	assert.Equal(t, eq.Settings{
		LowCutFreq: 8000, LowCutSlope: eq.Slope48,
		HighCutFreq: 30, HighCutSlope: eq.Slope24,
		PeakFreq: 1500, PeakGainDB: eq.MinGainDB, PeakQuality: 2,
	}, s)
}

func TestSettings_InvalidSlope(t *testing.T) {
	v, err := parse(t, "-highcut-slope", "18")
	require.NoError(t, err)

	_, err = v.Settings()
	require.ErrorIs(t, err, eq.ErrInvalidSlope)
	assert.Contains(t, err.Error(), "-highcut-slope")
}
