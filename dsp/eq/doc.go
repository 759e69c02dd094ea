// Package eq is the processing core of a three-band parametric equalizer.
//
// Each audio channel runs through a [ChannelChain]: a low-cut [CutCascade],
// a single peak (bell) section and a high-cut [CutCascade]. A [Processor]
// owns one chain per channel, turns a [Settings] snapshot into coefficients
// and processes stereo blocks in place.
//
// Typical host loop:
//
//	var cell eq.SettingsCell
//	p := &eq.Processor{}
//	if err := p.Configure(48000, 512); err != nil {
//		return err
//	}
//
//	// control thread
//	cell.Store(settings)
//
//	// audio thread, once per block
//	_ = p.Process(&cell, left, right)
//
// The low-cut stage is a Butterworth lowpass at LowCutFreq and the high-cut
// stage a Butterworth highpass at HighCutFreq, so the pass band lies between
// HighCutFreq and LowCutFreq. A wide-open chain is LowCutFreq 20 kHz with
// HighCutFreq 20 Hz.
//
// Configure resets all filter memory. Update and Process never do, so
// parameter changes morph the running response instead of clicking.
// Neither ProcessBlock nor Process allocate or lock.
//
// Building with -tags eqdebug turns invalid-argument errors from
// [Processor.Update] and [CutCascade.ApplyOrder] into panics.
package eq
