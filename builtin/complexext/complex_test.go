package complexext

import (
	"testing"

	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/pack"
	"github.com/arloliu/msgpack/unpack"
	"github.com/stretchr/testify/require"
)

func TestPack_Complex64_MatchesSpecScenario(t *testing.T) {
	data, err := pack.Pack(complex64(complex(1.0, 4.0)))
	require.NoError(t, err)
	require.Equal(t, []byte{0xd7, 0x50, 0x3f, 0x80, 0x00, 0x00, 0x40, 0x80, 0x00, 0x00}, data)
}

func TestRoundTrip_Complex64(t *testing.T) {
	original := complex64(complex(-2.5, 3.25))

	data, err := pack.Pack(original)
	require.NoError(t, err)

	got, err := unpack.UnpackAny(data)
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestRoundTrip_Complex128(t *testing.T) {
	original := complex(1.0, 4.0)

	data, err := pack.Pack(original)
	require.NoError(t, err)
	require.Equal(t, byte(0xd8), data[0]) // fixext16

	got, err := unpack.UnpackAny(data)
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestUnpackComplex64_RejectsWrongLength(t *testing.T) {
	_, err := unpackComplex64([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestRegister_IsolatedRegistry(t *testing.T) {
	reg := ext.New()
	require.NoError(t, Register(reg))

	data, err := pack.Pack(complex64(complex(1, 2)), pack.WithRegistry(reg))
	require.NoError(t, err)

	got, err := unpack.UnpackAny(data, unpack.WithRegistry(reg))
	require.NoError(t, err)
	require.Equal(t, complex64(complex(1, 2)), got)
}
