// Package errs defines the sentinel errors shared across the susa packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to add detail; callers
// match them with errors.Is. The taxonomy follows the failure modes of the
// codec: configuration errors are raised while a code is being set up,
// domain and shape errors are raised before any decoding work starts, and
// numeric errors indicate a degenerate metric computation.
package errs

import "errors"

// Configuration errors, reported at setup time.
var (
	// ErrInvalidCodeParam indicates invalid (n, k, m) code parameters,
	// such as n = 0, k != 1, or a memory size too wide for the state word.
	ErrInvalidCodeParam = errors.New("invalid code parameters")

	// ErrGeneratorIndex indicates a generator output index >= n.
	ErrGeneratorIndex = errors.New("generator index out of range")

	// ErrInvalidOctalDigit indicates a generator digit outside 0-7.
	ErrInvalidOctalDigit = errors.New("invalid octal digit")

	// ErrGeneratorTooWide indicates a decoded tap pattern that does not
	// fit in the m+1 bit constraint length.
	ErrGeneratorTooWide = errors.New("generator exceeds constraint length")

	// ErrGeneratorNotSet indicates encode/decode was called before all n
	// generator polynomials were configured.
	ErrGeneratorNotSet = errors.New("generator polynomials not fully configured")
)

// Domain and shape errors, reported before any recursion begins.
var (
	// ErrInvalidEbN0 indicates a non-positive linear Eb/N0; the AWGN noise
	// variance is undefined there.
	ErrInvalidEbN0 = errors.New("Eb/N0 must be positive")

	// ErrInvalidPrior indicates an input-bit prior outside (0, 1).
	ErrInvalidPrior = errors.New("input prior must be in (0, 1)")

	// ErrShapeMismatch indicates a received sequence whose sample count is
	// not a multiple of the code's output count n.
	ErrShapeMismatch = errors.New("sequence shape does not match code")
)

// Numeric errors.
var (
	// ErrVanishingMetric indicates that every branch metric underflowed to
	// zero at some trellis step, so the posterior is undefined.
	ErrVanishingMetric = errors.New("branch metrics vanished")
)

// Capture errors.
var (
	// ErrInvalidCapture indicates a capture stream with a bad magic,
	// version, or codec byte.
	ErrInvalidCapture = errors.New("invalid capture stream")

	// ErrChecksumMismatch indicates a capture frame whose payload digest
	// does not match the recorded checksum.
	ErrChecksumMismatch = errors.New("capture frame checksum mismatch")

	// ErrInvalidCodec indicates an unknown compression codec identifier.
	ErrInvalidCodec = errors.New("invalid compression codec")
)
