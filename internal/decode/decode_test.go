package decode

import (
	"bytes"
	"testing"

	"github.com/arloliu/msgpack/errs"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode_Nil(t *testing.T) {
	dec := New(bytes.NewReader([]byte{0xc0}), Config{})

	val, err := dec.Decode()
	require.NoError(t, err)
	require.True(t, val.IsNil())
}

func TestDecoder_TryDecode_CleanEOF(t *testing.T) {
	dec := New(bytes.NewReader(nil), Config{})

	_, ok, err := dec.TryDecode()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecoder_Decode_EmptyIsInsufficientData(t *testing.T) {
	dec := New(bytes.NewReader(nil), Config{})

	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrInsufficientData)
}

func TestDecoder_OffsetAdvancesPastDecodedBytes(t *testing.T) {
	dec := New(bytes.NewReader([]byte{0xa2, 'h', 'i', 0xc0}), Config{})

	_, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, int64(3), dec.Offset())
}

func TestDecoder_DuplicateKeyDetectedByRawBytes(t *testing.T) {
	// {1: "a", 1: "b"} - same key bytes, different values.
	data := []byte{0x82, 0x01, 0xa1, 'a', 0x01, 0xa1, 'b'}
	dec := New(bytes.NewReader(data), Config{})

	_, err := dec.Decode()
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
}

func TestDecoder_NoFalseDuplicateAcrossDifferentKeys(t *testing.T) {
	data := []byte{0x82, 0x01, 0xa1, 'a', 0x02, 0xa1, 'b'}
	dec := New(bytes.NewReader(data), Config{})

	val, err := dec.Decode()
	require.NoError(t, err)

	pairs, _ := val.AsMap()
	require.Len(t, pairs, 2)
}

func TestDecoder_NoFalseDuplicateAcrossNestedMapKeysDifferingInside(t *testing.T) {
	// {{1: "x"}: 10, {2: "x"}: 11} - both outer keys are one-pair fixmaps
	// whose only difference is the inner key (1 vs 2); the inner value
	// ("x") is identical in both. This specifically exercises the capture
	// restore across a recursive decodeKeyCapturing call: discarding the
	// inner key's captured bytes on return (rather than folding them back
	// into the parent's capture) would make both outer keys capture as
	// identical raw bytes and falsely report ErrDuplicateKey.
	data := []byte{
		0x82,
		0x81, 0x01, 0xa1, 'x', 0x0a,
		0x81, 0x02, 0xa1, 'x', 0x0b,
	}
	dec := New(bytes.NewReader(data), Config{})

	val, err := dec.Decode()
	require.NoError(t, err)

	pairs, ok := val.AsMap()
	require.True(t, ok)
	require.Len(t, pairs, 2)
}
