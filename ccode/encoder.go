package ccode

import (
	"fmt"

	"github.com/gta100/susa/errs"
)

// Encode runs the encoder over bits starting from the zero state and
// returns the n·len(bits) output bits, time-major: all n outputs for input
// t precede those for input t+1. Only the low bit of each input byte is
// used. An empty input yields an empty output.
//
// No termination tail is appended: the trellis is left wherever the last
// input bit drove it, and the output length is exactly n times the input
// length. DecodeBCJR assumes the same convention.
func (c *Code) Encode(bits []uint8) ([]uint8, error) {
	out, _, err := c.EncodeFrom(0, bits)

	return out, err
}

// EncodeFrom is Encode starting from an explicit register state instead of
// the zero state. It returns the output bits together with the final
// register state, so successive calls can be chained over a split stream:
//
//	head, state, _ := code.EncodeFrom(0, first)
//	tail, state, _ := code.EncodeFrom(state, rest)
//
// Decoding assumes the zero start state; EncodeFrom with a non-zero state
// is for stream continuation and trellis inspection.
func (c *Code) EncodeFrom(state uint32, bits []uint8) ([]uint8, uint32, error) {
	if err := c.ready(); err != nil {
		return nil, 0, err
	}
	if state > c.mask {
		return nil, 0, fmt.Errorf("%w: state %d does not fit the %d-bit register", errs.ErrInvalidCodeParam, state, c.m)
	}

	out := make([]uint8, 0, len(bits)*c.n)
	for _, b := range bits {
		b &= 1
		out = c.appendOutput(out, state, b)
		state = c.NextState(state, b)
	}

	return out, state, nil
}
