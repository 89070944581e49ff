package ccode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/gta100/susa/errs"
	"github.com/gta100/susa/internal/options"
	"github.com/gta100/susa/internal/pool"
)

// DecodeBCJR runs the BCJR forward-backward algorithm over the received
// channel observations and returns one soft value per original input bit.
//
// received holds n real-valued samples per trellis step: the antipodal
// symbols (bit 0 → −1, bit 1 → +1) of the encoded stream after the AWGN
// channel, in the same time-major order Encode produces. ebn0 is the
// linear (not dB) Eb/N0 of the channel; the noise variance is derived from
// it and the code rate as σ² = 1/(2·r·Eb/N0).
//
// By default the result holds the a-posteriori probability P(bit=1) for
// each step; see WithLLROutput and WithPrior. The forward recursion starts
// from the zero state (matching Encode) and the backward recursion starts
// from the uniform terminal distribution, since Encode appends no
// termination tail.
//
// Errors are raised before any recursion begins: ErrInvalidEbN0 for a
// non-positive ebn0, ErrShapeMismatch when len(received) is not a multiple
// of n, and ErrGeneratorNotSet for an unconfigured code.
func (c *Code) DecodeBCJR(received []float64, ebn0 float64, opts ...DecodeOption) ([]float64, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if ebn0 <= 0 || math.IsNaN(ebn0) {
		return nil, fmt.Errorf("%w: got %v", errs.ErrInvalidEbN0, ebn0)
	}
	if len(received)%c.n != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a multiple of n=%d", errs.ErrShapeMismatch, len(received), c.n)
	}

	cfg := decodeConfig{prior: 0.5}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	steps := len(received) / c.n
	if steps == 0 {
		return []float64{}, nil
	}

	sigma2 := 1 / (2 * c.Rate() * ebn0)
	tt := c.transitions()

	gamma, freeGamma := c.branchMetrics(tt, received, sigma2, cfg.prior)
	defer freeGamma()

	alpha, freeAlpha, err := c.forward(tt, gamma, steps)
	defer freeAlpha()
	if err != nil {
		return nil, err
	}

	beta, freeBeta, err := c.backward(tt, gamma, steps)
	defer freeBeta()
	if err != nil {
		return nil, err
	}

	return c.combine(tt, gamma, alpha, beta, steps, cfg.llr)
}

// transitionTable caches the full trellis: for every (state, input) pair
// the successor state and the expected antipodal channel symbols of the
// emitted output bits. Index layout is state*2 + input.
type transitionTable struct {
	next []uint32  // len numStates*2
	sym  []float64 // len numStates*2*n
}

func (c *Code) transitions() *transitionTable {
	numStates := c.NumStates()
	tt := &transitionTable{
		next: make([]uint32, numStates*2),
		sym:  make([]float64, numStates*2*c.n),
	}

	out := make([]uint8, c.n)
	for s := range numStates {
		for b := range 2 {
			idx := s*2 + b
			tt.next[idx] = c.NextState(uint32(s), uint8(b))
			c.fillOutput(out, uint32(s), uint8(b))
			for j, bit := range out {
				tt.sym[idx*c.n+j] = antipodal(bit)
			}
		}
	}

	return tt
}

// branchMetrics computes γ_t(s', b) for every step and transition: the
// input prior times the Gaussian likelihood of the n received samples
// given the transition's expected symbols. Layout is (t*numStates+s)*2+b.
func (c *Code) branchMetrics(tt *transitionTable, received []float64, sigma2, prior float64) ([]float64, func()) {
	numStates := c.NumStates()
	steps := len(received) / c.n

	gamma, cleanup := pool.GetFloat64Slice(steps * numStates * 2)

	norm := 1 / math.Sqrt(2*math.Pi*sigma2)
	inv := 1 / (2 * sigma2)
	priors := [2]float64{1 - prior, prior}

	for t := range steps {
		y := received[t*c.n : (t+1)*c.n]
		base := t * numStates * 2
		for idx := 0; idx < numStates*2; idx++ {
			like := priors[idx&1]
			sym := tt.sym[idx*c.n : (idx+1)*c.n]
			for j, x := range sym {
				d := y[j] - x
				like *= norm * math.Exp(-d*d*inv)
			}
			gamma[base+idx] = like
		}
	}

	return gamma, cleanup
}

// forward runs the α recursion. α_0 concentrates on the zero state; each
// later vector is the γ-weighted push of its predecessor, renormalized to
// sum to 1 so long sequences cannot underflow. The returned slice holds
// steps+1 state vectors back to back.
func (c *Code) forward(tt *transitionTable, gamma []float64, steps int) ([]float64, func(), error) {
	numStates := c.NumStates()

	alpha, cleanup := pool.GetFloat64Slice((steps + 1) * numStates)
	alpha[0] = 1

	for t := 1; t <= steps; t++ {
		prev := alpha[(t-1)*numStates : t*numStates]
		cur := alpha[t*numStates : (t+1)*numStates]
		g := gamma[(t-1)*numStates*2:]

		for s := range numStates {
			if prev[s] == 0 {
				continue
			}
			cur[tt.next[s*2]] += prev[s] * g[s*2]
			cur[tt.next[s*2+1]] += prev[s] * g[s*2+1]
		}

		sum := floats.Sum(cur)
		if sum == 0 {
			return alpha, cleanup, fmt.Errorf("%w: forward pass at step %d", errs.ErrVanishingMetric, t)
		}
		floats.Scale(1/sum, cur)
	}

	return alpha, cleanup, nil
}

// backward runs the β recursion from the uniform terminal distribution
// (every state is an equally likely end point because the encoder appends
// no termination tail), renormalizing each step like forward does.
func (c *Code) backward(tt *transitionTable, gamma []float64, steps int) ([]float64, func(), error) {
	numStates := c.NumStates()

	beta, cleanup := pool.GetFloat64Slice((steps + 1) * numStates)
	last := beta[steps*numStates:]
	for s := range last {
		last[s] = 1 / float64(numStates)
	}

	for t := steps - 1; t >= 0; t-- {
		next := beta[(t+1)*numStates : (t+2)*numStates]
		cur := beta[t*numStates : (t+1)*numStates]
		g := gamma[t*numStates*2:]

		for s := range numStates {
			cur[s] = g[s*2]*next[tt.next[s*2]] + g[s*2+1]*next[tt.next[s*2+1]]
		}

		sum := floats.Sum(cur)
		if sum == 0 {
			return beta, cleanup, fmt.Errorf("%w: backward pass at step %d", errs.ErrVanishingMetric, t)
		}
		floats.Scale(1/sum, cur)
	}

	return beta, cleanup, nil
}

// combine folds α, γ and β into the per-step soft outputs, partitioning
// every transition by its input bit.
func (c *Code) combine(tt *transitionTable, gamma, alpha, beta []float64, steps int, llr bool) ([]float64, error) {
	numStates := c.NumStates()
	out := make([]float64, steps)

	for t := 1; t <= steps; t++ {
		prev := alpha[(t-1)*numStates : t*numStates]
		cur := beta[t*numStates : (t+1)*numStates]
		g := gamma[(t-1)*numStates*2:]

		var l0, l1 float64
		for s := range numStates {
			if prev[s] == 0 {
				continue
			}
			l0 += prev[s] * g[s*2] * cur[tt.next[s*2]]
			l1 += prev[s] * g[s*2+1] * cur[tt.next[s*2+1]]
		}

		total := l0 + l1
		if total == 0 {
			return nil, fmt.Errorf("%w: combination at step %d", errs.ErrVanishingMetric, t)
		}

		if llr {
			out[t-1] = math.Log(l1 / l0)
		} else {
			out[t-1] = l1 / total
		}
	}

	return out, nil
}

// antipodal maps an output bit to its BPSK channel symbol: 0 → −1, 1 → +1.
func antipodal(bit uint8) float64 {
	return 2*float64(bit) - 1
}
