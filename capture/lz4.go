package capture

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressors pools lz4.Compressor instances; the compressor keeps
// internal hash tables that are worth reusing across frames.
var lz4Compressors = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec compresses payloads as raw LZ4 blocks. A leading marker byte
// distinguishes compressed blocks (1) from a raw fallback (0):
// CompressBlock signals incompressible input by returning an empty block,
// which could not round-trip on its own.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// Compress compresses data as a single LZ4 block, storing the input
// verbatim when LZ4 cannot shrink it.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		out := make([]byte, 1+len(data))
		copy(out[1:], data)

		return out, nil
	}

	dst[0] = 1

	return dst[:1+n], nil
}

// Decompress decodes a marked LZ4 block. The block format does not record
// the original size, so the output buffer starts at 4x the compressed size
// and doubles on lz4.ErrInvalidSourceShortBuffer up to a 128MB ceiling.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	marker, block := data[0], data[1:]
	if marker == 0 {
		out := make([]byte, len(block))
		copy(out, block)

		return out, nil
	}
	if len(block) == 0 {
		return nil, lz4.ErrInvalidSourceShortBuffer
	}

	const maxSize = 128 * 1024 * 1024

	for bufSize := len(block) * 4; bufSize <= maxSize; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
