package compressext

// NoOpCompressor bypasses compression; it exists so AlgorithmNone can be
// selected through the same Codec interface as the real algorithms, with
// no special case in the caller.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a compressor that passes data through unchanged
// (the same slice, not a copy).
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
