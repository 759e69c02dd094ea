package eq

import "github.com/cwbudde/algo-peq/dsp/filter/biquad"

// ChannelChain is the per-channel signal path: low-cut, peak, high-cut.
// Chains own their delay state; two chains never share mutable data and may
// run on different goroutines.
type ChannelChain struct {
	lowCut  CutCascade
	peak    biquad.Section
	highCut CutCascade
}

// LowCut returns the low-cut stage.
func (c *ChannelChain) LowCut() *CutCascade { return &c.lowCut }

// Peak returns the bell section.
func (c *ChannelChain) Peak() *biquad.Section { return &c.peak }

// HighCut returns the high-cut stage.
func (c *ChannelChain) HighCut() *CutCascade { return &c.highCut }

// ProcessSample filters one sample through all three stages.
func (c *ChannelChain) ProcessSample(x float64) float64 {
	x = c.lowCut.ProcessSample(x)
	x = c.peak.ProcessSample(x)
	return c.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in place. Each stage is linear and causal, so
// running the stages one after another over the whole block gives the same
// result as the per-sample order.
func (c *ChannelChain) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}
	c.lowCut.ProcessBlock(buf)
	c.peak.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// Reset clears all delay state.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// MagnitudeDB returns the response of the whole chain at freqHz.
func (c *ChannelChain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := c.lowCut.MagnitudeDB(freqHz, sampleRate)
	if !c.peak.Bypassed() {
		db += c.peak.Coefficients().MagnitudeDB(freqHz, sampleRate)
	}
	return db + c.highCut.MagnitudeDB(freqHz, sampleRate)
}
