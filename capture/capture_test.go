package capture

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gta100/susa/errs"
)

func sampleFrames() []Frame {
	return []Frame{
		{
			Bits:    []uint8{1, 0, 1, 1},
			Samples: []float64{0.91, 1.12, 0.87, -1.05, -0.96, -1.11, -1.02, 0.94},
			Soft:    []float64{0.999, 0.002, 0.998, 0.997},
		},
		{
			Bits:    []uint8{0, 0, 1, 0},
			Samples: []float64{-1.2, -0.8, -1.01, -0.99, 1.3, 0.7, -1.1, -0.92},
			Soft:    []float64{0.01, 0.04, 0.96, 0.03},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	const fingerprint = 0xDEADBEEFCAFE1234

	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, fingerprint, WithCompression(compression))
			require.NoError(t, err)

			frames := sampleFrames()
			for _, f := range frames {
				require.NoError(t, w.WriteFrame(f))
			}
			require.Equal(t, len(frames), w.Frames())

			r, err := NewReader(&buf)
			require.NoError(t, err)
			require.Equal(t, uint64(fingerprint), r.Fingerprint())
			require.Equal(t, compression, r.Compression())

			for _, want := range frames {
				got, err := r.ReadFrame()
				require.NoError(t, err)
				require.Equal(t, want.Bits, got.Bits)
				require.Equal(t, want.Samples, got.Samples)
				require.Equal(t, want.Soft, got.Soft)
			}

			_, err = r.ReadFrame()
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestWriterDefaultCompression(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, 1)
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(sampleFrames()[0]))

	r, err := NewReader(&buf)
	require.NoError(t, err)
	require.Equal(t, CompressionS2, r.Compression())
}

func TestWriterInvalidCompression(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewWriter(&buf, 1, WithCompression(Compression(0x7F)))
	require.ErrorIs(t, err, errs.ErrInvalidCodec)
}

func TestReaderChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, 1, WithCompression(CompressionNone))
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(sampleFrames()[0]))

	// Corrupt the last payload byte; the header and frame prefix stay intact.
	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = r.ReadFrame()
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestReaderInvalidHeader(t *testing.T) {
	t.Run("ShortHeader", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader([]byte{'S', 'C'}))
		require.ErrorIs(t, err, errs.ErrInvalidCapture)
	})

	t.Run("BadMagic", func(t *testing.T) {
		data := make([]byte, headerSize)
		copy(data, "NOPE")
		_, err := NewReader(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidCapture)
	})

	t.Run("BadVersion", func(t *testing.T) {
		data := make([]byte, headerSize)
		copy(data, magic[:])
		data[4] = 0x7F
		data[5] = byte(CompressionNone)
		_, err := NewReader(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidCapture)
	})

	t.Run("BadCodec", func(t *testing.T) {
		data := make([]byte, headerSize)
		copy(data, magic[:])
		data[4] = formatVersion
		data[5] = 0x7F
		_, err := NewReader(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidCapture)
	})
}

func TestReaderTruncatedFrame(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, 1, WithCompression(CompressionNone))
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(sampleFrames()[0]))

	data := buf.Bytes()
	r, err := NewReader(bytes.NewReader(data[:len(data)-4]))
	require.NoError(t, err)

	_, err = r.ReadFrame()
	require.ErrorIs(t, err, errs.ErrInvalidCapture)
}
