package signal

import "math/rand"

// pinkPoles are the one-pole smoothing factors of the seven octave-spaced
// bands summed into pink noise.
var pinkPoles = [7]float64{0.1294, 0.1875, 0.2414, 0.3026, 0.3830, 0.4962, 0.7195}

// PinkSource is a running pink-noise generator for streaming use: Fill
// continues where the previous call stopped and never allocates.
type PinkSource struct {
	rng   *rand.Rand
	state [7]float64
}

// NewPinkSource returns a generator seeded with seed.
func NewPinkSource(seed int64) *PinkSource {
	return &PinkSource{rng: rand.New(rand.NewSource(seed))}
}

// Fill overwrites buf with the next len(buf) samples.
func (p *PinkSource) Fill(buf []float64, amplitude float64) {
	for i := range buf {
		white := p.rng.Float64()*2 - 1
		sum := 0.0
		for k, c := range pinkPoles {
			p.state[k] += c * (white - p.state[k])
			sum += p.state[k]
		}
		buf[i] = sum / 2.5 * amplitude
	}
}
