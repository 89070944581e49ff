package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gta100/susa/capture"
	"github.com/gta100/susa/sim"
)

func TestParseCompression(t *testing.T) {
	cases := map[string]capture.Compression{
		"":     capture.CompressionS2,
		"s2":   capture.CompressionS2,
		"S2":   capture.CompressionS2,
		"none": capture.CompressionNone,
		"lz4":  capture.CompressionLZ4,
		"zstd": capture.CompressionZstd,
	}
	for name, want := range cases {
		got, err := parseCompression(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := parseCompression("gzip")
	require.Error(t, err)
}

func TestDescribeCode(t *testing.T) {
	desc := describeCode(&Config{Memory: 2, Generators: []uint32{7, 5}})
	require.Equal(t, "(2,1,2) generators (7,5)", desc)
}

func TestStoreRecordSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	points := []sim.Point{
		{EbN0dB: 0, Frames: 10, Bits: 640, BitErrors: 41, FrameErrors: 9, BER: 41.0 / 640, FER: 0.9},
		{EbN0dB: 4, Frames: 10, Bits: 640, BitErrors: 2, FrameErrors: 2, BER: 2.0 / 640, FER: 0.2},
	}
	require.NoError(t, store.RecordSweep("abc123", "(2,1,2) generators (7,5)", points))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM ber_points WHERE run_id = ?", "abc123").Scan(&count))
	require.Equal(t, 2, count)

	var ber float64
	require.NoError(t, store.db.QueryRow("SELECT ber FROM ber_points WHERE run_id = ? AND ebn0_db = 4", "abc123").Scan(&ber))
	require.InDelta(t, 2.0/640, ber, 1e-12)
}
