package compressext

import "fmt"

// Algorithm identifies which general-purpose compressor produced a
// CompressedBin payload. It is encoded as the first byte of the Ext
// payload, ahead of the compressed bytes, so a decoder never needs
// out-of-band configuration to know how to reverse it.
type Algorithm byte

const (
	AlgorithmNone Algorithm = iota
	AlgorithmLZ4
	AlgorithmS2
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmS2:
		return "s2"
	case AlgorithmZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Algorithm(%d)", byte(a))
	}
}

// Compressor compresses a byte payload.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCompressor(),
	AlgorithmLZ4:  NewLZ4Compressor(),
	AlgorithmS2:   NewS2Compressor(),
	AlgorithmZstd: NewZstdCompressor(),
}

// CodecFor returns the built-in Codec for alg.
func CodecFor(alg Algorithm) (Codec, error) {
	codec, ok := builtinCodecs[alg]
	if !ok {
		return nil, fmt.Errorf("compressext: unsupported algorithm %s", alg)
	}

	return codec, nil
}
