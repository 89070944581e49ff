// Package ccode implements non-recursive convolutional channel codes: a
// 1/n encoder and a soft-decision BCJR (forward-backward) decoder for the
// binary-antipodal AWGN channel.
//
// A code is described by its (n, k, m) parameters (n output bits per
// input bit, k = 1 input, m register stages) plus one generator
// polynomial per output, given in the conventional octal notation:
//
//	code, _ := ccode.New(2, 1, 2)
//	_ = code.SetGenerator(7, 0) // taps 111
//	_ = code.SetGenerator(5, 1) // taps 101
//
//	encoded, _ := code.Encode([]uint8{1, 0, 1, 1})
//	// encoded = 1 1 1 0 0 0 0 1
//
// Decoding takes one real-valued channel observation per output bit and
// the linear Eb/N0 of the channel, and returns one a-posteriori P(bit=1)
// per input bit (or a log-likelihood ratio with WithLLROutput):
//
//	soft, _ := code.DecodeBCJR(received, ebn0)
//
// A Code is immutable once its generators are configured; all trellis
// functions thread the register state explicitly, so a configured Code is
// safe for concurrent use.
package ccode
