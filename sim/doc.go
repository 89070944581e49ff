// Package sim runs Monte-Carlo bit-error-rate sweeps of a convolutional
// code over the AWGN channel: random frames are encoded, BPSK-modulated,
// passed through seeded Gaussian noise, BCJR-decoded and hard-decided, and
// the error counts aggregated per Eb/N0 point. Runs are reproducible from
// their seed and can record every frame to a capture stream.
package sim
