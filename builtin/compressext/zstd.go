package compressext

// ZstdCompressor implements Codec over Zstandard. Its methods are defined
// in zstd_cgo.go (valyala/gozstd, cgo builds) or zstd_pure.go
// (klauspost/compress/zstd, pure-Go builds), matching the teacher's split
// so a cgo-free build never links a cgo dependency.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
