package ccode

import "math/bits"

// NextState returns the register state after shifting in one input bit.
// Only the low bit of input is used; the oldest retained bit falls off the
// top of the m-bit window.
func (c *Code) NextState(state uint32, input uint8) uint32 {
	return ((state << 1) | uint32(input&1)) & c.mask
}

// NextOutput returns the n output bits emitted when input is shifted into
// the register at state. Output j is the parity of the (m+1)-bit window
// (input in the low-order position, state above it) masked by generator
// j's taps. The function is pure: it depends only on the arguments and the
// configured generators.
func (c *Code) NextOutput(state uint32, input uint8) []uint8 {
	out := make([]uint8, c.n)
	c.fillOutput(out, state, input)

	return out
}

// PrevStates returns every state s' with NextState(s', b) == state for
// some input bit b. The inverse shift has at most two solutions: the upper
// window bit vacated by the shift may have been 0 or 1. For m = 0 the only
// state is its own predecessor.
func (c *Code) PrevStates(state uint32) []uint32 {
	state &= c.mask
	if c.m == 0 {
		return []uint32{0}
	}

	low := state >> 1

	return []uint32{low, low | 1<<(c.m-1)}
}

// PrevOutput recovers the output bits of the transition that leads from
// predecessor pred into state. The input bit of that transition is forced
// to the low bit of state, so the branch label is fully determined by the
// pair; the BCJR recursions use this to weight each (predecessor,
// successor) edge without re-deriving the transition.
func (c *Code) PrevOutput(state, pred uint32) []uint8 {
	return c.NextOutput(pred, uint8(state&1))
}

// OnesInWindow returns the number of set bits of x restricted to the
// code's (m+1)-bit tap window.
func (c *Code) OnesInWindow(x uint32) int {
	return bits.OnesCount32(x & c.win)
}

// ZerosInWindow returns the number of clear bits of x restricted to the
// code's (m+1)-bit tap window. Together with OnesInWindow it supports
// Hamming-distance style branch metrics.
func (c *Code) ZerosInWindow(x uint32) int {
	return c.m + 1 - c.OnesInWindow(x)
}

// fillOutput writes the n output bits for (state, input) into dst, which
// must have length n.
func (c *Code) fillOutput(dst []uint8, state uint32, input uint8) {
	window := ((state << 1) | uint32(input&1)) & c.win
	for j, gen := range c.gens {
		dst[j] = uint8(bits.OnesCount32(window&gen) & 1)
	}
}

// appendOutput appends the n output bits for (state, input) to dst.
func (c *Code) appendOutput(dst []uint8, state uint32, input uint8) []uint8 {
	window := ((state << 1) | uint32(input&1)) & c.win
	for _, gen := range c.gens {
		dst = append(dst, uint8(bits.OnesCount32(window&gen)&1))
	}

	return dst
}
