package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
)

const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
)

var (
	errInvalidWAV      = errors.New("eqwav: invalid WAV file")
	errUnsupportedWAV  = errors.New("eqwav: unsupported WAV format")
	errInvalidBlockLen = errors.New("eqwav: block size must be positive")
)

type equalizeStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
}

// fullScale returns the largest sample value of a signed PCM bit depth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return maxInt16, nil
	case 24:
		return maxInt24, nil
	case 32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit", errUnsupportedWAV, bitDepth)
	}
}

// equalizeFile reads opts.input block by block, runs it through a Processor
// configured for the file's sample rate and writes opts.output.
func equalizeFile(opts options) (stats *equalizeStats, err error) {
	if opts.blockSize <= 0 {
		return nil, errInvalidBlockLen
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", errInvalidWAV, opts.input)
	}
	format := dec.Format()
	bitDepth := int(dec.BitDepth)
	channels := format.NumChannels
	if channels < 1 || channels > eq.Channels {
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedWAV, channels)
	}
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, channels, bitDepth)
	}

	proc, err := eq.New(core.WithSampleRate(float64(format.SampleRate)), core.WithBlockSize(opts.blockSize))
	if err != nil {
		return nil, err
	}
	if err := proc.Update(opts.settings); err != nil {
		return nil, err
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	enc := wav.NewEncoder(out, format.SampleRate, bitDepth, channels, wavFormatPCM)
	defer func() {
		// Close writes the final chunk sizes into the header.
		if closeErr := enc.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("finalize output: %w", closeErr)
		}
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	bufs := newBlockBuffers(opts.blockSize, channels, format)
	stats = &equalizeStats{
		sampleRate: format.SampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}

	for {
		n, readErr := dec.PCMBuffer(bufs.pcm)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read audio data: %w", readErr)
		}
		frames := n / channels
		if frames == 0 {
			break
		}

		left, right := bufs.split(frames, channels, 1/scale)
		if err := filterBlock(proc, left, right, opts.parallel); err != nil {
			return nil, err
		}
		bufs.join(left, right, scale)

		if err := enc.Write(bufs.pcm); err != nil {
			return nil, fmt.Errorf("write audio data: %w", err)
		}
		stats.frames += int64(frames)
		bufs.pcm.Data = bufs.pcm.Data[:cap(bufs.pcm.Data)]
	}

	if opts.verbose {
		log.Printf("Processed %d frames", stats.frames)
	}
	return stats, nil
}

// filterBlock runs each channel through its own chain. With parallel set
// the two chains run on separate goroutines; they share no state.
func filterBlock(proc *eq.Processor, left, right []float64, parallel bool) error {
	if !parallel || len(right) == 0 {
		proc.ProcessBlock(left, right)
		return nil
	}

	var g errgroup.Group
	for ch, buf := range [eq.Channels][]float64{left, right} {
		g.Go(func() error {
			proc.Chain(ch).ProcessBlock(buf)
			return nil
		})
	}
	return g.Wait()
}

type blockBuffers struct {
	pcm   *audio.IntBuffer
	left  []float64
	right []float64
	tmp   []float64
}

func newBlockBuffers(blockSize, channels int, format *audio.Format) *blockBuffers {
	b := &blockBuffers{
		pcm: &audio.IntBuffer{
			Data:   make([]int, blockSize*channels),
			Format: format,
		},
		left: make([]float64, blockSize),
		tmp:  make([]float64, blockSize),
	}
	if channels == eq.Channels {
		b.right = make([]float64, blockSize)
	}
	return b
}

// split deinterleaves frames from the PCM buffer into the float channels
// and scales them to [-1, 1].
func (b *blockBuffers) split(frames, channels int, invScale float64) (left, right []float64) {
	data := b.pcm.Data
	left = b.left[:frames]
	if channels == 1 {
		for i := range frames {
			left[i] = float64(data[i])
		}
		f64.Scale(left, left, invScale)
		return left, nil
	}

	right = b.right[:frames]
	for i := range frames {
		left[i] = float64(data[2*i])
		right[i] = float64(data[2*i+1])
	}
	f64.Scale(left, left, invScale)
	f64.Scale(right, right, invScale)
	return left, right
}

// join writes the filtered channels back into the PCM buffer, clipping to
// full scale, and trims the buffer to the frames present.
func (b *blockBuffers) join(left, right []float64, scale float64) {
	channels := 1
	if right != nil {
		channels = 2
	}
	data := b.pcm.Data[:len(left)*channels]

	for ch, src := range [2][]float64{left, right} {
		if src == nil {
			continue
		}
		tmp := b.tmp[:len(src)]
		f64.Scale(tmp, src, scale)
		for i, v := range tmp {
			data[i*channels+ch] = int(math.Round(core.Clamp(v, -scale, scale)))
		}
	}
	b.pcm.Data = data
}
