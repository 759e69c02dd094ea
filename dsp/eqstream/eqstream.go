// Package eqstream runs an equalizer over a beep stereo stream.
package eqstream

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// ErrNilStreamer is returned by New for a nil source or processor.
var ErrNilStreamer = errors.New("eqstream: nil streamer or processor")

// Streamer equalizes the frames of a source streamer in place. Frames are
// split into per-channel scratch buffers and processed in chunks of at most
// the processor's block size; each chunk first applies one snapshot from
// the settings source, so parameter changes take effect between chunks.
type Streamer struct {
	src      beep.Streamer
	proc     *eq.Processor
	settings eq.SettingsSource

	left, right []float64
	updateErr   error
}

var _ beep.Streamer = (*Streamer)(nil)

// New wraps src. proc must be configured for the stream's sample rate. The
// scratch buffers are sized for the block size at this point; a later
// reconfigure to a smaller block size shrinks the chunks, a larger one
// keeps the original chunk size.
// settings may be nil, in which case the processor keeps its current
// coefficients.
func New(src beep.Streamer, proc *eq.Processor, settings eq.SettingsSource) (*Streamer, error) {
	if src == nil || proc == nil {
		return nil, ErrNilStreamer
	}
	if !proc.Configured() {
		return nil, fmt.Errorf("eqstream: %w", eq.ErrNotConfigured)
	}

	n := proc.Config().BlockSize
	return &Streamer{
		src:      src,
		proc:     proc,
		settings: settings,
		left:     make([]float64, n),
		right:    make([]float64, n),
	}, nil
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.src.Stream(samples)

	// The processor may have been reconfigured since New; never exceed its
	// current block size or the scratch capacity.
	block := min(s.proc.Config().BlockSize, len(s.left))
	for off := 0; off < n; off += block {
		chunk := samples[off:min(off+block, n)]
		l, r := s.left[:len(chunk)], s.right[:len(chunk)]

		for i := range chunk {
			l[i], r[i] = chunk[i][0], chunk[i][1]
		}
		if err := s.proc.Process(s.settings, l, r); err != nil {
			s.updateErr = err
		}
		for i := range chunk {
			chunk[i][0], chunk[i][1] = l[i], r[i]
		}
	}

	return n, ok
}

// Err returns the error of the source streamer.
func (s *Streamer) Err() error {
	return s.src.Err()
}

// UpdateErr returns the most recent snapshot rejection, if any. A rejected
// snapshot does not stop the stream; the previous coefficients stay active.
func (s *Streamer) UpdateErr() error {
	return s.updateErr
}
