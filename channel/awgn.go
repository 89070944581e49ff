package channel

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gta100/susa/errs"
)

// Modulate maps bits to antipodal BPSK symbols: 0 → −1, 1 → +1. Only the
// low bit of each input byte is used. This is the symbol convention the
// BCJR decoder expects.
func Modulate(bits []uint8) []float64 {
	symbols := make([]float64, len(bits))
	for i, b := range bits {
		symbols[i] = 2*float64(b&1) - 1
	}

	return symbols
}

// Demodulate hard-decides antipodal symbols back to bits at the zero
// threshold.
func Demodulate(symbols []float64) []uint8 {
	bits := make([]uint8, len(symbols))
	for i, s := range symbols {
		if s > 0 {
			bits[i] = 1
		}
	}

	return bits
}

// AWGN is an additive-white-Gaussian-noise channel for antipodal signaling
// at a fixed Eb/N0 and code rate. The noise stream is driven by a seeded
// source, so two channels built with the same parameters produce identical
// noise. An AWGN is not safe for concurrent use; give each stream its own.
type AWGN struct {
	sigma2 float64
	noise  distuv.Normal
}

// NewAWGN builds a channel for the given linear Eb/N0 and code rate r,
// with noise variance σ² = 1/(2·r·Eb/N0). ebn0 must be positive and r must
// be in (0, 1].
func NewAWGN(ebn0, rate float64, seed uint64) (*AWGN, error) {
	if ebn0 <= 0 || math.IsNaN(ebn0) {
		return nil, fmt.Errorf("%w: got %v", errs.ErrInvalidEbN0, ebn0)
	}
	if !(rate > 0 && rate <= 1) {
		return nil, fmt.Errorf("%w: rate %v outside (0, 1]", errs.ErrInvalidCodeParam, rate)
	}

	sigma2 := 1 / (2 * rate * ebn0)

	return &AWGN{
		sigma2: sigma2,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: math.Sqrt(sigma2),
			Src:   rand.NewSource(seed),
		},
	}, nil
}

// Sigma2 returns the channel noise variance σ².
func (ch *AWGN) Sigma2() float64 { return ch.sigma2 }

// Transmit returns a new slice holding symbols plus one Gaussian noise
// sample each. The input is not modified.
func (ch *AWGN) Transmit(symbols []float64) []float64 {
	out := make([]float64, len(symbols))
	for i, s := range symbols {
		out[i] = s + ch.noise.Rand()
	}

	return out
}
