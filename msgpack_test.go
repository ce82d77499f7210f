package msgpack

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpsLoads_RoundTrip(t *testing.T) {
	data, err := Dumps(map[string]any{"foo": int64(1)})
	require.NoError(t, err)
	require.Equal(t, []byte{0x81, 0xa3, 'f', 'o', 'o', 0x01}, data)

	got, err := Loads(data)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.(map[any]any)["foo"])
}

func TestDumpLoad_ReaderAndWriter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Dump([]int{1, 2, 3}, &buf))

	val, err := Load(&buf)
	require.NoError(t, err)

	elems, ok := val.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 3)
}

func TestStreamLoad_YieldsEachDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(nil, &buf))
	require.NoError(t, Dump("hi", &buf))

	var docs int
	for val, err := range StreamLoad(&buf) {
		require.NoError(t, err)
		docs++

		if docs == 2 {
			s, ok := val.AsStr()
			require.True(t, ok)
			require.Equal(t, "hi", s)
		}
	}

	require.Equal(t, 2, docs)
}

func TestBuiltinExtensions_RegisteredByDefault(t *testing.T) {
	data, err := Dumps(complex64(complex(1, 4)))
	require.NoError(t, err)

	got, err := Loads(data)
	require.NoError(t, err)
	require.Equal(t, complex64(complex(1, 4)), got)
}

func TestRegisterUser_CustomType(t *testing.T) {
	type token struct{ ID uint32 }

	err := RegisterUser(reflect.TypeOf(token{}), 100,
		func(v any) ([]byte, error) {
			tk := v.(token)
			return []byte{byte(tk.ID)}, nil
		},
		func(data []byte) (any, error) {
			return token{ID: uint32(data[0])}, nil
		},
	)
	require.NoError(t, err)

	data, err := Dumps(token{ID: 7})
	require.NoError(t, err)

	got, err := Loads(data)
	require.NoError(t, err)
	require.Equal(t, token{ID: 7}, got)
}
