package ccode

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/gta100/susa/errs"
)

// maxMemory bounds the register size so the (m+1)-bit tap window fits in a
// uint32 state word.
const maxMemory = 31

// Code describes one (n, 1, m) non-recursive convolutional code.
//
// The zero value is not usable; construct with New and configure every
// generator with SetGenerator before encoding or decoding. Configuration
// is not safe for concurrent use, but a fully configured Code is: the
// generator table is read-only afterwards and no method retains register
// state between calls.
type Code struct {
	n    int
	k    int
	m    int
	mask uint32 // 2^m - 1, bounds all state arithmetic
	win  uint32 // 2^(m+1) - 1, the tap window including the fresh input bit

	gens   []uint32
	genSet []bool
}

// New creates a convolutional code with n output bits per input bit,
// k input bits (only k = 1 is supported) and m register stages.
func New(n, k, m int) (*Code, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be >= 1, got %d", errs.ErrInvalidCodeParam, n)
	}
	if k != 1 {
		return nil, fmt.Errorf("%w: only single-input codes are supported, got k=%d", errs.ErrInvalidCodeParam, k)
	}
	if m < 0 || m > maxMemory {
		return nil, fmt.Errorf("%w: m must be in [0, %d], got %d", errs.ErrInvalidCodeParam, maxMemory, m)
	}

	return &Code{
		n:      n,
		k:      k,
		m:      m,
		mask:   uint32(1)<<m - 1,
		win:    uint32(1)<<(m+1) - 1,
		gens:   make([]uint32, n),
		genSet: make([]bool, n),
	}, nil
}

// N returns the number of output bits emitted per input bit.
func (c *Code) N() int { return c.n }

// K returns the number of input bits consumed per trellis step (always 1).
func (c *Code) K() int { return c.k }

// M returns the number of register stages.
func (c *Code) M() int { return c.m }

// NumStates returns the size of the state space, 2^m.
func (c *Code) NumStates() int { return 1 << c.m }

// Rate returns the code rate k/n as a floating-point ratio.
func (c *Code) Rate() float64 {
	return float64(c.k) / float64(c.n)
}

// SetGenerator decodes the octal generator polynomial and stores it at the
// given output index. The octal value is written with decimal digits, one
// octal digit per three taps, most significant digit first: 7 is taps 111,
// 5 is taps 101. The decoded pattern must fit in the m+1 bit constraint
// length.
//
// On any error the generator table is left untouched.
func (c *Code) SetGenerator(octal uint32, index int) error {
	if index < 0 || index >= c.n {
		return fmt.Errorf("%w: index %d for code with n=%d", errs.ErrGeneratorIndex, index, c.n)
	}

	taps, err := octalToTaps(octal)
	if err != nil {
		return err
	}
	if taps&^c.win != 0 {
		return fmt.Errorf("%w: octal %d needs more than %d taps", errs.ErrGeneratorTooWide, octal, c.m+1)
	}

	c.gens[index] = taps
	c.genSet[index] = true

	return nil
}

// Generator returns the decoded tap pattern at the given output index and
// whether it has been configured.
func (c *Code) Generator(index int) (uint32, bool) {
	if index < 0 || index >= c.n {
		return 0, false
	}

	return c.gens[index], c.genSet[index]
}

// Fingerprint returns a 64-bit xxHash digest of the code configuration
// (n, k, m and every generator tap pattern). Two codes with the same
// fingerprint encode identically; the simulation and capture packages use
// it to tag recorded data with the code that produced it.
func (c *Code) Fingerprint() uint64 {
	d := xxhash.New()

	var buf [4]byte
	for _, v := range []uint32{uint32(c.n), uint32(c.k), uint32(c.m)} {
		binary.LittleEndian.PutUint32(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	for _, g := range c.gens {
		binary.LittleEndian.PutUint32(buf[:], g)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

// ready reports whether every generator has been configured.
func (c *Code) ready() error {
	for i, set := range c.genSet {
		if !set {
			return fmt.Errorf("%w: generator %d of %d missing", errs.ErrGeneratorNotSet, i, c.n)
		}
	}

	return nil
}

// octalToTaps expands a generator written in octal notation (using decimal
// digits) into its binary tap pattern.
func octalToTaps(octal uint32) (uint32, error) {
	var taps uint64
	shift := 0

	for v := octal; v > 0; v /= 10 {
		digit := v % 10
		if digit > 7 {
			return 0, fmt.Errorf("%w: digit %d in %d", errs.ErrInvalidOctalDigit, digit, octal)
		}
		taps |= uint64(digit) << shift
		shift += 3
	}
	if taps > 0xFFFFFFFF {
		return 0, fmt.Errorf("%w: octal %d overflows the tap word", errs.ErrGeneratorTooWide, octal)
	}

	return uint32(taps), nil
}
