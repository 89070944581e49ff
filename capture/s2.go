package capture

import "github.com/klauspost/compress/s2"

// S2Codec compresses payloads with S2, the Snappy-compatible format tuned
// for speed. It is the default capture codec: float64 sample payloads
// compress modestly but the throughput cost is negligible next to a BCJR
// decode.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Compress compresses data as an S2 block.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
