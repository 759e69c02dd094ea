package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

const testRate = 48000

// writeTestWAV writes 16-bit PCM with the given per-channel sine
// frequencies at half scale.
func writeTestWAV(t *testing.T, path string, frames int, freqs ...float64) {
	t.Helper()
	channels := len(freqs)

	data := make([]int, frames*channels)
	for i := range frames {
		for ch, f := range freqs {
			v := 0.5 * math.Sin(2*math.Pi*f*float64(i)/testRate)
			data[i*channels+ch] = int(math.Round(v * maxInt16))
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, testRate, 16, channels, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: testRate, NumChannels: channels},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readTestWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf
}

// channelRMS skips the first skip frames of the settling transient.
func channelRMS(buf *audio.IntBuffer, ch, skip int) float64 {
	channels := buf.Format.NumChannels
	var sum float64
	n := 0
	for i := skip*channels + ch; i < len(buf.Data); i += channels {
		v := float64(buf.Data[i]) / maxInt16
		sum += v * v
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}

// bandSettings passes roughly 20 Hz to 500 Hz: the low-cut stage is a
// 48 dB/oct lowpass at 500 Hz, the high-cut stage a highpass at 20 Hz.
func bandSettings() eq.Settings {
	s := eq.DefaultSettings()
	s.LowCutFreq = 500
	s.LowCutSlope = eq.Slope48
	s.HighCutFreq = 20
	s.HighCutSlope = eq.Slope12
	return s
}

func TestEqualizeFileStereo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	const frames = testRate
	writeTestWAV(t, in, frames, 100, 5000)

	stats, err := equalizeFile(options{
		input:     in,
		output:    out,
		blockSize: 1000,
		parallel:  true,
		settings:  bandSettings(),
	})
	require.NoError(t, err)
	assert.Equal(t, testRate, stats.sampleRate)
	assert.Equal(t, 2, stats.channels)
	assert.Equal(t, 16, stats.bitDepth)
	assert.EqualValues(t, frames, stats.frames)

	src := readTestWAV(t, in)
	got := readTestWAV(t, out)
	require.Equal(t, 2, got.Format.NumChannels)
	assert.Equal(t, testRate, got.Format.SampleRate)
	require.Len(t, got.Data, len(src.Data))

	const skip = testRate / 10
	passIn, passOut := channelRMS(src, 0, skip), channelRMS(got, 0, skip)
	assert.InDelta(t, 1, passOut/passIn, 0.01, "100 Hz should pass")

	stopIn, stopOut := channelRMS(src, 1, skip), channelRMS(got, 1, skip)
	assert.Less(t, stopOut/stopIn, 0.001, "5 kHz should be removed")
}

func TestEqualizeFileParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, 12345, 220, 3000)

	var outputs [2]*audio.IntBuffer
	for i, parallel := range []bool{false, true} {
		out := filepath.Join(dir, "out.wav")
		_, err := equalizeFile(options{
			input:     in,
			output:    out,
			blockSize: 512,
			parallel:  parallel,
			settings:  bandSettings(),
		})
		require.NoError(t, err)
		outputs[i] = readTestWAV(t, out)
	}
	assert.Equal(t, outputs[0].Data, outputs[1].Data)
}

func TestEqualizeFileMono(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeTestWAV(t, in, 4800, 100)

	stats, err := equalizeFile(options{
		input:     in,
		output:    out,
		blockSize: 256,
		parallel:  true,
		settings:  bandSettings(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.channels)

	got := readTestWAV(t, out)
	assert.Equal(t, 1, got.Format.NumChannels)
	assert.Len(t, got.Data, 4800)
}

func TestEqualizeFileErrors(t *testing.T) {
	dir := t.TempDir()

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not a wav file"), 0o600))

	surround := filepath.Join(dir, "surround.wav")
	writeTestWAV(t, surround, 100, 100, 200, 300)

	valid := filepath.Join(dir, "valid.wav")
	writeTestWAV(t, valid, 100, 100)

	tests := []struct {
		name    string
		opts    options
		wantErr error
	}{
		{"missing", options{input: filepath.Join(dir, "missing.wav"), blockSize: 64}, os.ErrNotExist},
		{"not wav", options{input: bogus, blockSize: 64}, errInvalidWAV},
		{"three channels", options{input: surround, blockSize: 64}, errUnsupportedWAV},
		{"zero block", options{input: valid, blockSize: 0}, errInvalidBlockLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.output = filepath.Join(dir, "out.wav")
			tt.opts.settings = eq.DefaultSettings()
			_, err := equalizeFile(tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFullScale(t *testing.T) {
	for depth, want := range map[int]float64{16: maxInt16, 24: maxInt24, 32: maxInt32} {
		got, err := fullScale(depth)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := fullScale(8)
	assert.ErrorIs(t, err, errUnsupportedWAV)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeTestWAV(t, in, 2000, 440, 880)

	var stdout bytes.Buffer
	err := run([]string{"-lowcut", "8000", "-lowcut-slope", "24", "-highcut", "40", in, out}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Equalized in.wav -> out.wav")
	assert.Contains(t, stdout.String(), "2 channels, 16-bit, 2000 frames")
	assert.FileExists(t, out)
}

func TestRunUsageErrors(t *testing.T) {
	var stdout bytes.Buffer

	err := run([]string{"only-one.wav"}, &stdout)
	assert.ErrorIs(t, err, errUsage)

	err = run([]string{"-lowcut-slope", "18", "a.wav", "b.wav"}, &stdout)
	assert.ErrorIs(t, err, eq.ErrInvalidSlope)
}
