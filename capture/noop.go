package capture

// NoopCodec passes payloads through untouched. Useful as a baseline and
// when captures will be post-processed by external tooling that expects
// raw payloads.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// Compress returns data as-is. The result shares memory with the input.
func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is. The result shares memory with the input.
func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
