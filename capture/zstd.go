package capture

// ZstdCodec compresses payloads with Zstandard. It trades speed for the
// best ratio of the built-in codecs, which matters for long sweeps where
// captures of soft outputs dominate disk usage.
//
// Two implementations back this type: the cgo build uses gozstd, the pure
// Go build uses klauspost/compress/zstd. The produced streams are
// interchangeable.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
