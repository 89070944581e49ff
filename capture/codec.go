package capture

import (
	"fmt"

	"github.com/gta100/susa/errs"
)

// Compression identifies the codec applied to frame payloads.
type Compression uint8

const (
	// CompressionNone stores payloads verbatim.
	CompressionNone Compression = 0x1
	// CompressionZstd applies Zstandard compression.
	CompressionZstd Compression = 0x2
	// CompressionS2 applies S2 (Snappy-compatible) compression.
	CompressionS2 Compression = 0x3
	// CompressionLZ4 applies LZ4 block compression.
	CompressionLZ4 Compression = 0x4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Codec compresses and decompresses frame payloads.
//
// Implementations return newly allocated slices (or the input itself for
// the no-op codec), never modify their input, and are safe for concurrent
// use.
type Codec interface {
	// Compress compresses data; the result is owned by the caller.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress; the input must have been produced by
	// the same codec.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Compression]Codec{
	CompressionNone: NoopCodec{},
	CompressionZstd: ZstdCodec{},
	CompressionS2:   S2Codec{},
	CompressionLZ4:  LZ4Codec{},
}

// GetCodec returns the built-in Codec for the given compression type.
func GetCodec(compression Compression) (Codec, error) {
	codec, ok := builtinCodecs[compression]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCodec, compression)
	}

	return codec, nil
}
