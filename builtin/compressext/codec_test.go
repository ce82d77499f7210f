package compressext

import (
	"testing"

	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/pack"
	"github.com/arloliu/msgpack/unpack"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, alg := range []Algorithm{AlgorithmNone, AlgorithmLZ4, AlgorithmS2, AlgorithmZstd} {
		t.Run(alg.String(), func(t *testing.T) {
			codec, err := CodecFor(alg)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			original, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, original)
		})
	}
}

func TestCodecFor_UnknownAlgorithm(t *testing.T) {
	_, err := CodecFor(Algorithm(99))
	require.Error(t, err)
}

func TestNoOpCompressor_EmptyInput(t *testing.T) {
	c := NewNoOpCompressor()

	out, err := c.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestCompressedBin_PackUnpackRoundTrip(t *testing.T) {
	reg := ext.New()
	require.NoError(t, Register(reg))

	original := CompressedBin{Algorithm: AlgorithmZstd, Data: []byte("hello hello hello hello hello")}

	data, err := pack.Pack(original, pack.WithRegistry(reg))
	require.NoError(t, err)

	raw, err := unpack.Unpack(data, unpack.WithRegistry(reg))
	require.NoError(t, err)

	code, _, ok := raw.AsExt()
	require.True(t, ok)
	require.Equal(t, CodeCompressedBin, code)

	got, err := unpack.UnpackAny(data, unpack.WithRegistry(reg))
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestCompressedBin_DefaultRegistryRegistersAtInit(t *testing.T) {
	original := CompressedBin{Algorithm: AlgorithmS2, Data: []byte("some payload data to compress")}

	data, err := pack.Pack(original)
	require.NoError(t, err)

	got, err := unpack.UnpackAny(data)
	require.NoError(t, err)
	require.Equal(t, original, got)
}
