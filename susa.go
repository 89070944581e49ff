// Package susa provides convolutional channel coding for Go: a 1/n
// non-recursive encoder and a soft-decision BCJR decoder over the AWGN
// channel, with supporting channel models, Monte-Carlo simulation and
// frame capture.
//
// # Basic Usage
//
// Configure the classic rate-1/2 code with octal generators (7, 5) and
// encode a bit sequence:
//
//	code, _ := susa.NewConvCode(2, 7, 5)
//	encoded, _ := code.Encode([]uint8{1, 0, 1, 1})
//	// encoded = 1 1 1 0 0 0 0 1
//
// Decode noisy antipodal observations back to per-bit posteriors:
//
//	soft, _ := code.DecodeBCJR(received, ebn0)
//
// # Package Structure
//
// This package provides convenient top-level wrappers, including
// gonum/mat based entry points for callers that carry their bit and
// probability streams in dense matrices. The underlying packages give
// fine-grained control:
//
//   - ccode: code configuration, trellis, encoder, BCJR decoder
//   - channel: BPSK mapping and the seeded AWGN channel
//   - sim: Monte-Carlo BER sweeps
//   - capture: compressed frame recording
package susa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gta100/susa/ccode"
	"github.com/gta100/susa/errs"
)

// NewConvCode creates a (len(generators), 1, m) convolutional code with
// the given octal generator polynomials, one per output.
func NewConvCode(m int, generators ...uint32) (*ccode.Code, error) {
	code, err := ccode.New(len(generators), 1, m)
	if err != nil {
		return nil, err
	}
	for i, gen := range generators {
		if err := code.SetGenerator(gen, i); err != nil {
			return nil, err
		}
	}

	return code, nil
}

// Encode encodes a column vector of hard bits (any non-zero element is
// read as 1) and returns the encoded bits as an n·T × 1 column vector,
// time-major.
func Encode(code *ccode.Code, bits mat.Matrix) (*mat.VecDense, error) {
	rows, cols := bits.Dims()
	if cols != 1 {
		return nil, fmt.Errorf("%w: bit matrix must have one column, got %d", errs.ErrShapeMismatch, cols)
	}

	in := make([]uint8, rows)
	for i := range rows {
		if bits.At(i, 0) != 0 {
			in[i] = 1
		}
	}

	out, err := code.Encode(in)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return &mat.VecDense{}, nil
	}

	vec := mat.NewVecDense(len(out), nil)
	for i, b := range out {
		vec.SetVec(i, float64(b))
	}

	return vec, nil
}

// DecodeBCJR decodes a T × n matrix of received channel observations (one
// row per trellis step, one column per output bit) and returns the T soft
// outputs as a column vector. See ccode.Code.DecodeBCJR for the channel
// model and options.
func DecodeBCJR(code *ccode.Code, received mat.Matrix, ebn0 float64, opts ...ccode.DecodeOption) (*mat.VecDense, error) {
	rows, cols := received.Dims()
	if cols != code.N() {
		return nil, fmt.Errorf("%w: %d columns for code with n=%d", errs.ErrShapeMismatch, cols, code.N())
	}

	flat := make([]float64, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			flat = append(flat, received.At(i, j))
		}
	}

	soft, err := code.DecodeBCJR(flat, ebn0, opts...)
	if err != nil {
		return nil, err
	}
	if len(soft) == 0 {
		return &mat.VecDense{}, nil
	}

	return mat.NewVecDense(len(soft), soft), nil
}
