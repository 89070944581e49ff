// Package channel models the binary-antipodal AWGN channel used to
// exercise the convolutional codec: a BPSK mapper from bits to ±1 symbols
// and a seeded Gaussian noise source whose variance follows from the
// channel Eb/N0 and the code rate.
package channel
