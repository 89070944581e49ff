// Command bersim sweeps the bit error rate of a convolutional code with
// BCJR decoding over a range of AWGN channel qualities. Results go to
// stdout and, optionally, to a sqlite database, an HTML chart and a frame
// capture file.
//
// Usage:
//
//	bersim [-config bersim.yaml] [-db results.db] [-chart ber.html]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gta100/susa"
	"github.com/gta100/susa/capture"
	"github.com/gta100/susa/sim"
)

func main() {
	configFile := flag.String("config", "", "path to configuration file (default: ./bersim.yaml if present)")
	database := flag.String("db", "", "sqlite database to record results in (overrides config)")
	chart := flag.String("chart", "", "HTML chart output path (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *database != "" {
		cfg.Database = *database
	}
	if *chart != "" {
		cfg.Chart = *chart
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *Config) error {
	code, err := susa.NewConvCode(cfg.Memory, cfg.Generators...)
	if err != nil {
		return fmt.Errorf("building code: %w", err)
	}

	simCfg := sim.Config{
		Code:      code,
		EbN0dB:    cfg.EbN0dB,
		Frames:    cfg.Frames,
		FrameBits: cfg.FrameBits,
		Seed:      cfg.Seed,
	}

	var captureFile *os.File
	if cfg.CapturePath != "" {
		compression, err := parseCompression(cfg.CaptureCodec)
		if err != nil {
			return err
		}
		captureFile, err = os.Create(cfg.CapturePath)
		if err != nil {
			return fmt.Errorf("creating capture file: %w", err)
		}
		defer captureFile.Close()

		simCfg.Capture, err = capture.NewWriter(captureFile, code.Fingerprint(), capture.WithCompression(compression))
		if err != nil {
			return err
		}
	}

	codeDesc := describeCode(cfg)
	runID := fmt.Sprintf("%016x", simCfg.Fingerprint())
	log.Printf("sweeping %s over %d Eb/N0 points, %d frames x %d bits each (run %s)",
		codeDesc, len(cfg.EbN0dB), cfg.Frames, cfg.FrameBits, runID)

	points, err := sim.Run(simCfg)
	if err != nil {
		return err
	}

	fmt.Printf("%8s %12s %12s %10s %10s\n", "Eb/N0", "bit errors", "bits", "BER", "FER")
	for _, p := range points {
		fmt.Printf("%7.1f  %12d %12d %10.3e %10.3e\n", p.EbN0dB, p.BitErrors, p.Bits, p.BER, p.FER)
	}

	if cfg.Database != "" {
		store, err := OpenStore(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		if err := store.RecordSweep(runID, codeDesc, points); err != nil {
			return fmt.Errorf("recording sweep: %w", err)
		}
		log.Printf("recorded %d points to %s", len(points), cfg.Database)
	}

	if cfg.Chart != "" {
		if err := renderChart(cfg.Chart, codeDesc, points); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		log.Printf("wrote chart to %s", cfg.Chart)
	}

	if simCfg.Capture != nil {
		log.Printf("captured %d frames to %s", simCfg.Capture.Frames(), cfg.CapturePath)
	}

	return nil
}

func describeCode(cfg *Config) string {
	gens := make([]string, len(cfg.Generators))
	for i, g := range cfg.Generators {
		gens[i] = fmt.Sprintf("%d", g)
	}

	return fmt.Sprintf("(%d,1,%d) generators (%s)", len(cfg.Generators), cfg.Memory, strings.Join(gens, ","))
}

func parseCompression(name string) (capture.Compression, error) {
	switch strings.ToLower(name) {
	case "", "s2":
		return capture.CompressionS2, nil
	case "none":
		return capture.CompressionNone, nil
	case "lz4":
		return capture.CompressionLZ4, nil
	case "zstd":
		return capture.CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown capture codec %q", name)
	}
}
