package sim

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/gta100/susa/capture"
	"github.com/gta100/susa/ccode"
	"github.com/gta100/susa/channel"
	"github.com/gta100/susa/errs"
)

// Config describes one BER sweep.
type Config struct {
	// Code is the fully configured code under test.
	Code *ccode.Code

	// EbN0dB lists the channel qualities to sweep, in dB.
	EbN0dB []float64

	// Frames is the number of frames simulated per Eb/N0 point.
	Frames int

	// FrameBits is the number of information bits per frame.
	FrameBits int

	// Seed drives both the source bits and the channel noise. The same
	// seed reproduces the same sweep exactly.
	Seed uint64

	// Capture, when non-nil, records every simulated frame.
	Capture *capture.Writer
}

// Point aggregates one Eb/N0 point of a sweep.
type Point struct {
	EbN0dB      float64
	EbN0Linear  float64
	Frames      int
	Bits        int
	BitErrors   int
	FrameErrors int

	// BER and FER are the bit and frame error rates.
	BER float64
	FER float64

	// BERStdErr is the standard error of the per-frame bit error rates,
	// a rough confidence width for BER.
	BERStdErr float64
}

// Run executes the sweep and returns one Point per Eb/N0 value, in input
// order.
func Run(cfg Config) ([]Point, error) {
	if cfg.Code == nil {
		return nil, fmt.Errorf("%w: no code configured", errs.ErrInvalidCodeParam)
	}
	if cfg.Frames <= 0 || cfg.FrameBits <= 0 {
		return nil, fmt.Errorf("%w: frames=%d frameBits=%d", errs.ErrInvalidCodeParam, cfg.Frames, cfg.FrameBits)
	}

	points := make([]Point, 0, len(cfg.EbN0dB))
	src := rand.New(rand.NewSource(cfg.Seed))

	for _, db := range cfg.EbN0dB {
		point, err := runPoint(cfg, db, src)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

func runPoint(cfg Config, ebn0dB float64, src *rand.Rand) (Point, error) {
	ebn0 := math.Pow(10, ebn0dB/10)

	ch, err := channel.NewAWGN(ebn0, cfg.Code.Rate(), src.Uint64())
	if err != nil {
		return Point{}, err
	}

	point := Point{
		EbN0dB:     ebn0dB,
		EbN0Linear: ebn0,
		Frames:     cfg.Frames,
	}

	frameRates := make([]float64, cfg.Frames)
	bits := make([]uint8, cfg.FrameBits)

	for f := range cfg.Frames {
		for i := range bits {
			bits[i] = uint8(src.Uint32() & 1)
		}

		encoded, err := cfg.Code.Encode(bits)
		if err != nil {
			return Point{}, err
		}

		received := ch.Transmit(channel.Modulate(encoded))

		soft, err := cfg.Code.DecodeBCJR(received, ebn0)
		if err != nil {
			return Point{}, err
		}

		frameErrs := 0
		for i, p := range soft {
			decided := uint8(0)
			if p >= 0.5 {
				decided = 1
			}
			if decided != bits[i] {
				frameErrs++
			}
		}

		point.Bits += cfg.FrameBits
		point.BitErrors += frameErrs
		if frameErrs > 0 {
			point.FrameErrors++
		}
		frameRates[f] = float64(frameErrs) / float64(cfg.FrameBits)

		if cfg.Capture != nil {
			frame := capture.Frame{Bits: append([]uint8(nil), bits...), Samples: received, Soft: soft}
			if err := cfg.Capture.WriteFrame(frame); err != nil {
				return Point{}, err
			}
		}
	}

	point.BER = float64(point.BitErrors) / float64(point.Bits)
	point.FER = float64(point.FrameErrors) / float64(point.Frames)
	if cfg.Frames > 1 {
		point.BERStdErr = stat.StdDev(frameRates, nil) / math.Sqrt(float64(cfg.Frames))
	}

	return point, nil
}

// Fingerprint returns a 64-bit digest of the sweep configuration and the
// code under test, suitable for tagging stored results.
func (cfg Config) Fingerprint() uint64 {
	d := xxhash.New()

	var buf [8]byte
	if cfg.Code != nil {
		binary.LittleEndian.PutUint64(buf[:], cfg.Code.Fingerprint())
		_, _ = d.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], cfg.Seed)
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(cfg.Frames))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(cfg.FrameBits))
	_, _ = d.Write(buf[:])
	for _, db := range cfg.EbN0dB {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(db))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
