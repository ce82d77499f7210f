package pack

import (
	"math"
	"reflect"
	"testing"

	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/value"
	"github.com/stretchr/testify/require"
)

func TestPack_Nil(t *testing.T) {
	data, err := Pack(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc0}, data)
}

func TestPack_Bool(t *testing.T) {
	data, err := Pack(true)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc3}, data)

	data, err = Pack(false)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc2}, data)
}

func TestPack_PositiveFixint(t *testing.T) {
	data, err := Pack(0x7f)
	require.NoError(t, err)
	require.Equal(t, []byte{0x7f}, data)
}

func TestPack_NegativeFixint(t *testing.T) {
	data, err := Pack(int64(-1))
	require.NoError(t, err)
	require.Equal(t, []byte{0xff}, data)
}

func TestPack_Uint64_ChoosesMinimalWidth(t *testing.T) {
	data, err := Pack(uint64(300))
	require.NoError(t, err)
	require.Equal(t, []byte{0xcd, 0x01, 0x2c}, data)
}

func TestPack_Uint64_BeyondInt64Range(t *testing.T) {
	data, err := Pack(uint64(math.MaxUint64))
	require.NoError(t, err)
	require.Equal(t, byte(0xcf), data[0])
}

func TestPack_Int64_Minimal(t *testing.T) {
	data, err := Pack(int64(-1000))
	require.NoError(t, err)
	require.Equal(t, byte(0xd1), data[0]) // int16
}

func TestPack_FloatAuto_NarrowsExactValues(t *testing.T) {
	data, err := Pack(float64(1.5))
	require.NoError(t, err)
	require.Equal(t, byte(0xca), data[0]) // float32, exact round trip
}

func TestPack_FloatAuto_KeepsDoubleWhenLossy(t *testing.T) {
	data, err := Pack(math.Pi)
	require.NoError(t, err)
	require.Equal(t, byte(0xcb), data[0]) // float64
}

func TestPack_FloatDouble_Forced(t *testing.T) {
	data, err := Pack(float64(1.5), WithFloatPrecision(FloatDouble))
	require.NoError(t, err)
	require.Equal(t, byte(0xcb), data[0])
}

func TestPack_Str_Fixstr(t *testing.T) {
	data, err := Pack("hi")
	require.NoError(t, err)
	require.Equal(t, []byte{0xa2, 'h', 'i'}, data)
}

func TestPack_Bin(t *testing.T) {
	data, err := Pack([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []byte{0xc4, 0x03, 1, 2, 3}, data)
}

func TestPack_Array_Reflect(t *testing.T) {
	data, err := Pack([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []byte{0x93, 0x01, 0x02, 0x03}, data)
}

func TestPack_Map_Reflect(t *testing.T) {
	data, err := Pack(map[string]int{"a": 1})
	require.NoError(t, err)
	require.Equal(t, []byte{0x81, 0xa1, 'a', 0x01}, data)
}

func TestPack_ValuePassthrough_PreservesIntUintDistinction(t *testing.T) {
	data, err := Pack(value.Uint(1))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, data) // still positive fixint on the wire
	require.Equal(t, value.KindUint, value.Uint(1).Kind())
}

func TestPack_UnsupportedType(t *testing.T) {
	_, err := Pack(make(chan int))
	require.Error(t, err)
}

func TestPack_ExtensionDispatch(t *testing.T) {
	reg := ext.New()
	type point struct{ X, Y int32 }

	err := ext.RegisterUserT(reg, 42,
		func(p point) ([]byte, error) { return []byte{byte(p.X), byte(p.Y)}, nil },
		func(data []byte) (point, error) { return point{X: int32(data[0]), Y: int32(data[1])}, nil },
	)
	require.NoError(t, err)

	data, err := Pack(point{X: 3, Y: 4}, WithRegistry(reg))
	require.NoError(t, err)
	require.Equal(t, []byte{0xd5, 42, 3, 4}, data) // fixext2
}

func TestPack_ExtensionDispatch_NestedInArray(t *testing.T) {
	reg := ext.New()
	type tag struct{ Code byte }

	err := ext.RegisterUserT(reg, 7,
		func(tg tag) ([]byte, error) { return []byte{tg.Code}, nil },
		func(data []byte) (tag, error) { return tag{Code: data[0]}, nil },
	)
	require.NoError(t, err)

	data, err := Pack([]any{tag{Code: 9}}, WithRegistry(reg))
	require.NoError(t, err)
	require.Equal(t, []byte{0x91, 0xd4, 7, 9}, data) // fixarray(1), fixext1
}

func TestPackValue_RoundTripFast(t *testing.T) {
	val := value.Array([]value.Value{value.Int(1), value.Str("x")})
	data, err := PackValue(val)
	require.NoError(t, err)
	require.Equal(t, []byte{0x92, 0x01, 0xa1, 'x'}, data)
}

func TestPackTo_WritesToWriter(t *testing.T) {
	var buf writerBuf

	err := PackTo(&buf, int64(1))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, buf.data)
}

type writerBuf struct{ data []byte }

func (w *writerBuf) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func TestPack_NilPointer(t *testing.T) {
	var p *int

	data, err := Pack(p)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc0}, data)
}

func TestPack_TypeOfLargeArrayUsesArray16(t *testing.T) {
	elems := make([]int, 16)
	data, err := Pack(elems)
	require.NoError(t, err)
	require.Equal(t, byte(0xdc), data[0]) // array16, since fixarray caps at 15
}

func TestToValueReflect_UnsupportedKindWraps(t *testing.T) {
	_, err := toValueReflect(newConfig(), reflect.ValueOf(func() {}))
	require.Error(t, err)
}
