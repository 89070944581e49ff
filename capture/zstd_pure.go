//go:build !cgo

package capture

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Pooled encoder/decoder instances; the klauspost implementation is
// designed to be reused after warmup.
var (
	zstdEncoders = sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd encoder init: %v", err))
			}

			return enc
		},
	}
	zstdDecoders = sync.Pool{
		New: func() any {
			dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("zstd decoder init: %v", err))
			}

			return dec
		},
	}
)

// Compress compresses data with Zstandard.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress decodes a Zstandard frame.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
