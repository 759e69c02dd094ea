package eq

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// Channels is the number of chains a Processor owns: left and right.
const Channels = 2

// nyquistGuard caps designed frequencies below sampleRate/2.
const nyquistGuard = 0.49

// Processor turns parameter snapshots into coefficients for two channel
// chains and filters stereo blocks in place.
//
// The zero value is unconfigured: Update fails and ProcessBlock leaves
// audio untouched until Configure succeeds. A Processor is driven by one
// audio goroutine; snapshots from other goroutines arrive through a
// SettingsSource.
type Processor struct {
	cfg        core.ProcessorConfig
	configured bool

	settings    Settings
	hasSettings bool

	chains [Channels]ChannelChain

	lowCut  [MaxSections]biquad.Coefficients
	highCut [MaxSections]biquad.Coefficients
}

// New returns a configured Processor. Without options it runs at 48 kHz
// with 1024-sample blocks.
func New(opts ...core.ProcessorOption) (*Processor, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	p := &Processor{}
	if err := p.Configure(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure prepares the processor for a stream: it stores the sample rate
// and maximum block size, clears the delay state of both chains and applies
// the last accepted Settings (DefaultSettings before the first Update).
func (p *Processor) Configure(sampleRate float64, blockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	s := DefaultSettings()
	if p.hasSettings {
		s = p.settings
	}
	if err := s.Validate(); err != nil {
		return err
	}

	p.cfg = cfg
	p.configured = true
	for i := range p.chains {
		p.chains[i].Reset()
	}

	return p.Update(s)
}

// Config returns the active stream configuration.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Configured reports whether Configure has succeeded.
func (p *Processor) Configured() bool { return p.configured }

// Settings returns the last snapshot accepted by Update.
func (p *Processor) Settings() Settings {
	if !p.hasSettings {
		return DefaultSettings()
	}
	return p.settings
}

// Update designs coefficients for s and installs them into both chains.
// Frequencies are capped at 0.49 times the sample rate. Delay state is not
// touched, so calling Update with an unchanged snapshot has no audible
// effect.
//
// On error nothing changes. Update does not allocate on success.
func (p *Processor) Update(s Settings) error {
	if !p.configured {
		return ErrNotConfigured
	}
	if err := s.Validate(); err != nil {
		return checked(err)
	}

	sr := p.cfg.SampleRate
	lowOrder := s.LowCutSlope.Order()
	highOrder := s.HighCutSlope.Order()

	peak := design.Peak(sr, p.capFreq(s.PeakFreq), s.PeakQuality, core.DBToLinear(s.PeakGainDB))

	err := design.ButterworthInto(p.lowCut[:], design.Lowpass, p.capFreq(s.LowCutFreq), sr, lowOrder)
	if err != nil {
		return checked(fmt.Errorf("%w: low-cut: %w", ErrInvalidArgument, err))
	}
	err = design.ButterworthInto(p.highCut[:], design.Highpass, p.capFreq(s.HighCutFreq), sr, highOrder)
	if err != nil {
		return checked(fmt.Errorf("%w: high-cut: %w", ErrInvalidArgument, err))
	}

	for i := range p.chains {
		c := &p.chains[i]
		c.peak.SetCoefficients(peak)
		c.peak.SetBypassed(false)
		// Orders and coefficient counts were checked above.
		_ = c.lowCut.ApplyOrder(lowOrder, p.lowCut[:])
		_ = c.highCut.ApplyOrder(highOrder, p.highCut[:])
	}

	p.settings = s
	p.hasSettings = true
	return nil
}

func (p *Processor) capFreq(f float64) float64 {
	return min(f, nyquistGuard*p.cfg.SampleRate)
}

// ProcessBlock filters left through chain 0 and right through chain 1 in
// place. Either channel may be nil or empty. Before Configure the buffers
// are left as they are.
func (p *Processor) ProcessBlock(left, right []float64) {
	if !p.configured {
		return
	}
	p.chains[0].ProcessBlock(left)
	p.chains[1].ProcessBlock(right)
}

// Process is the per-block entry point: it loads one snapshot from src,
// applies it and filters the block. If the snapshot is rejected the
// previous coefficients stay in place, the block is still processed and
// the Update error is returned.
func (p *Processor) Process(src SettingsSource, left, right []float64) error {
	var err error
	if src != nil {
		err = p.Update(src.Load())
	}
	p.ProcessBlock(left, right)
	return err
}

// Chain returns the chain for channel ch (0 left, 1 right), or nil if ch is
// out of range. Callers may run both chains on separate goroutines.
func (p *Processor) Chain(ch int) *ChannelChain {
	if ch < 0 || ch >= Channels {
		return nil
	}
	return &p.chains[ch]
}

// Reset clears the delay state of both chains without touching
// coefficients.
func (p *Processor) Reset() {
	for i := range p.chains {
		p.chains[i].Reset()
	}
}
