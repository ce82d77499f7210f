package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arloliu/msgpack/value"
	"github.com/stretchr/testify/require"
)

// scenario7Bytes returns the three documents from spec.md §8 scenario 7:
// nil, [1,2,3], {"foo":1}.
func scenario7Bytes() []byte {
	return []byte{
		0xc0,
		0x93, 0x01, 0x02, 0x03,
		0x81, 0xa3, 'f', 'o', 'o', 0x01,
	}
}

func collect(t *testing.T, r *ChunkReader, opts ...Option) []value.Value {
	t.Helper()

	var out []value.Value

	for val, err := range Decode(r, opts...) {
		require.NoError(t, err)
		out = append(out, val)
	}

	return out
}

func TestDecode_ChunkedArbitraryBoundaries(t *testing.T) {
	r := NewChunkReader(scenario7Bytes(), 1, 3, 2, 5)
	vals := collect(t, r)

	require.Len(t, vals, 3)
	require.True(t, vals[0].IsNil())

	elems, ok := vals[1].AsArray()
	require.True(t, ok)
	require.Len(t, elems, 3)

	pairs, ok := vals[2].AsMap()
	require.True(t, ok)
	require.Len(t, pairs, 1)
}

func TestDecode_OneByteAtATime(t *testing.T) {
	r := NewChunkReader(scenario7Bytes(), 1)
	vals := collect(t, r)
	require.Len(t, vals, 3)
}

func TestDecode_EmptyStreamYieldsNothing(t *testing.T) {
	r := NewChunkReader(nil)
	vals := collect(t, r)
	require.Empty(t, vals)
}

func TestDecode_StopsAfterFirstYieldWhenConsumerBreaks(t *testing.T) {
	r := NewChunkReader(scenario7Bytes())

	var count int
	for range Decode(r) {
		count++
		break
	}

	require.Equal(t, 1, count)
}

func TestDecode_ErrorMidDocumentStopsIteration(t *testing.T) {
	// fixarray(3) header with only one element present: truncated document.
	data := []byte{0x93, 0x01}
	r := bytes.NewReader(data)

	var sawErr error
	var count int

	for _, err := range Decode(r) {
		count++
		if err != nil {
			sawErr = err
		}
	}

	require.Equal(t, 1, count)
	require.Error(t, sawErr)
}

func TestDecode_ObserverSeesFullDocumentBytes(t *testing.T) {
	data := scenario7Bytes()
	r := NewChunkReader(data, 1, 3, 2, 5)

	var got []byte
	var docsCompleted int

	opt := WithObserver(func(chunk []byte) {
		if chunk == nil {
			docsCompleted++
			return
		}

		got = append(got, chunk...)
	})

	var docs []value.Value
	for val, err := range Decode(r, opt) {
		require.NoError(t, err)
		docs = append(docs, val)
	}

	require.Len(t, docs, 3)
	require.Equal(t, 3, docsCompleted)
	require.Equal(t, data, got)
}

func TestDecode_ReaderErrorSurfacesAndStops(t *testing.T) {
	boom := errors.New("boom")
	r := failingReader{err: boom}

	var count int
	var sawErr error

	for _, err := range Decode(r) {
		count++
		sawErr = err
	}

	require.Equal(t, 1, count)
	require.ErrorIs(t, sawErr, boom)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }
