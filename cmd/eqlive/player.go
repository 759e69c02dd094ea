package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	oto "github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/signal"
)

const bytesPerFrame = 2 * 4 // stereo float32

// eqReader is the io.Reader oto pulls from. Each block it draws pink noise
// for both channels, applies the latest parameter snapshot and filters the
// block, then hands out interleaved float32 little-endian frames.
type eqReader struct {
	proc      *eq.Processor
	settings  eq.SettingsSource
	leftSrc   *signal.PinkSource
	rightSrc  *signal.PinkSource
	amplitude float64

	left, right []float64
	out         []byte
	pos         int

	rejected atomic.Int64
}

func newEQReader(proc *eq.Processor, settings eq.SettingsSource, amplitude float64, seed int64) *eqReader {
	n := proc.Config().BlockSize
	return &eqReader{
		proc:      proc,
		settings:  settings,
		leftSrc:   signal.NewPinkSource(seed),
		rightSrc:  signal.NewPinkSource(seed + 1),
		amplitude: amplitude,
		left:      make([]float64, n),
		right:     make([]float64, n),
		out:       make([]byte, 0, n*bytesPerFrame),
	}
}

func (r *eqReader) Read(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		if r.pos >= len(r.out) {
			r.render()
		}
		n := copy(buf[total:], r.out[r.pos:])
		r.pos += n
		total += n
	}
	return total, nil
}

// Rejected counts snapshots the processor refused.
func (r *eqReader) Rejected() int64 { return r.rejected.Load() }

func (r *eqReader) render() {
	r.leftSrc.Fill(r.left, r.amplitude)
	r.rightSrc.Fill(r.right, r.amplitude)

	if err := r.proc.Process(r.settings, r.left, r.right); err != nil {
		r.rejected.Add(1)
	}

	out := r.out[:len(r.left)*bytesPerFrame]
	for i := range r.left {
		binary.LittleEndian.PutUint32(out[i*bytesPerFrame:], float32Bits(r.left[i]))
		binary.LittleEndian.PutUint32(out[i*bytesPerFrame+4:], float32Bits(r.right[i]))
	}
	r.out = out
	r.pos = 0
}

func float32Bits(v float64) uint32 {
	return math.Float32bits(float32(core.Clamp(v, -1, 1)))
}

type player struct {
	ctx    *oto.Context
	player *oto.Player
}

func newPlayer(sampleRate int, src *eqReader) (*player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: eq.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   100 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &player{ctx: ctx, player: ctx.NewPlayer(src)}
	p.player.Play()
	return p, nil
}

func (p *player) Close() error {
	p.player.Pause()
	return p.player.Close()
}
