// Package capture records simulation frames (transmitted bits, channel
// samples and decoder soft outputs) in a compact binary stream for
// offline analysis and replay.
//
// A stream starts with a fixed header carrying the compression codec and
// the fingerprint of the code that produced the frames, followed by one
// length-prefixed block per frame. Each block's payload is checksummed
// with xxHash64 before compression, so corruption is detected on read
// regardless of the codec. Compression is pluggable: None, S2, LZ4 or
// Zstd.
package capture
