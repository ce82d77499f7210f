package pack

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/internal/pool"
	"github.com/arloliu/msgpack/value"
	"github.com/arloliu/msgpack/wire"
)

const maxUint32 = 1<<32 - 1

// encodeValue writes val's minimal-width MessagePack encoding to buf,
// recursing into Array elements and Map pairs. Ext values are written
// as-is: their payload was already produced by toValue's registry
// dispatch, so no further conversion happens here.
func encodeValue(buf *pool.ByteBuffer, val value.Value, cfg *config) error {
	switch val.Kind() {
	case value.KindNil:
		buf.MustWrite([]byte{wire.PrefixNil})
		return nil

	case value.KindBool:
		b, _ := val.AsBool()
		if b {
			buf.MustWrite([]byte{wire.PrefixTrue})
		} else {
			buf.MustWrite([]byte{wire.PrefixFalse})
		}

		return nil

	case value.KindInt:
		i, _ := val.AsInt()
		return encodeInt(buf, i)

	case value.KindUint:
		u, _ := val.AsUint()
		return encodeUint(buf, u)

	case value.KindFloat:
		f, _ := val.AsFloat()
		return encodeFloat(buf, f, cfg.floatPrecision)

	case value.KindStr:
		s, _ := val.AsStr()
		return encodeStr(buf, s)

	case value.KindBin:
		b, _ := val.AsBin()
		return encodeBin(buf, b)

	case value.KindArray:
		elems, _ := val.AsArray()
		if err := encodeArrayHeader(buf, len(elems)); err != nil {
			return err
		}

		for _, e := range elems {
			if err := encodeValue(buf, e, cfg); err != nil {
				return err
			}
		}

		return nil

	case value.KindMap:
		pairs, _ := val.AsMap()
		if err := encodeMapHeader(buf, len(pairs)); err != nil {
			return err
		}

		for _, p := range pairs {
			if err := encodeValue(buf, p.Key, cfg); err != nil {
				return err
			}

			if err := encodeValue(buf, p.Val, cfg); err != nil {
				return err
			}
		}

		return nil

	case value.KindExt:
		code, data, _ := val.AsExt()
		return encodeExt(buf, code, data)

	default:
		return fmt.Errorf("%w: value.Kind(%d)", errs.ErrUnsupportedType, val.Kind())
	}
}

// encodeUint picks the narrowest family able to hold u: positive fixint,
// then uint8/16/32/64 in ascending order (spec.md §4.2 minimal-width rule).
func encodeUint(buf *pool.ByteBuffer, u uint64) error {
	switch {
	case u <= uint64(math.MaxUint8)>>1: // 0x7f, positive fixint range
		buf.MustWrite([]byte{byte(u)})
	case u <= math.MaxUint8:
		buf.MustWrite([]byte{wire.PrefixUint8, byte(u)})
	case u <= math.MaxUint16:
		var b [3]byte
		b[0] = wire.PrefixUint16
		binary.BigEndian.PutUint16(b[1:], uint16(u))
		buf.MustWrite(b[:])
	case u <= math.MaxUint32:
		var b [5]byte
		b[0] = wire.PrefixUint32
		binary.BigEndian.PutUint32(b[1:], uint32(u))
		buf.MustWrite(b[:])
	default:
		var b [9]byte
		b[0] = wire.PrefixUint64
		binary.BigEndian.PutUint64(b[1:], u)
		buf.MustWrite(b[:])
	}

	return nil
}

// encodeInt picks the narrowest family able to hold i: negative fixint or
// positive fixint, then int8/16/32/64 in ascending order. A nonnegative i
// is encoded exactly as encodeUint would for the same magnitude, since the
// positive fixint and unsigned families overlap in the low range.
func encodeInt(buf *pool.ByteBuffer, i int64) error {
	if i >= 0 {
		return encodeUint(buf, uint64(i))
	}

	switch {
	case i >= -32:
		buf.MustWrite([]byte{byte(int8(i))})
	case i >= math.MinInt8:
		buf.MustWrite([]byte{wire.PrefixInt8, byte(int8(i))})
	case i >= math.MinInt16:
		var b [3]byte
		b[0] = wire.PrefixInt16
		binary.BigEndian.PutUint16(b[1:], uint16(int16(i)))
		buf.MustWrite(b[:])
	case i >= math.MinInt32:
		var b [5]byte
		b[0] = wire.PrefixInt32
		binary.BigEndian.PutUint32(b[1:], uint32(int32(i)))
		buf.MustWrite(b[:])
	default:
		var b [9]byte
		b[0] = wire.PrefixInt64
		binary.BigEndian.PutUint64(b[1:], uint64(i))
		buf.MustWrite(b[:])
	}

	return nil
}

// encodeFloat writes f as float64, or as float32 when precision requests it
// or FloatAuto determines the value round-trips exactly through binary32.
func encodeFloat(buf *pool.ByteBuffer, f float64, precision FloatPrecision) error {
	useSingle := false

	switch precision {
	case FloatSingle:
		useSingle = true
	case FloatDouble:
		useSingle = false
	case FloatAuto:
		narrowed := float64(float32(f))
		useSingle = narrowed == f || (math.IsNaN(f) && math.IsNaN(narrowed))
	}

	if useSingle {
		var b [5]byte
		b[0] = wire.PrefixFloat32
		binary.BigEndian.PutUint32(b[1:], math.Float32bits(float32(f)))
		buf.MustWrite(b[:])

		return nil
	}

	var b [9]byte
	b[0] = wire.PrefixFloat64
	binary.BigEndian.PutUint64(b[1:], math.Float64bits(f))
	buf.MustWrite(b[:])

	return nil
}

func encodeStr(buf *pool.ByteBuffer, s string) error {
	n := len(s)

	switch {
	case n <= 31:
		buf.MustWrite([]byte{wire.MakeFixstr(n)})
	case n <= math.MaxUint8:
		buf.MustWrite([]byte{wire.PrefixStr8, byte(n)})
	case n <= math.MaxUint16:
		var b [3]byte
		b[0] = wire.PrefixStr16
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		buf.MustWrite(b[:])
	case n <= maxUint32:
		var b [5]byte
		b[0] = wire.PrefixStr32
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		buf.MustWrite(b[:])
	default:
		return fmt.Errorf("%w: string length %d exceeds 2^32-1", errs.ErrUnsupportedType, n)
	}

	buf.MustWrite([]byte(s))

	return nil
}

func encodeBin(buf *pool.ByteBuffer, b []byte) error {
	n := len(b)

	switch {
	case n <= math.MaxUint8:
		buf.MustWrite([]byte{wire.PrefixBin8, byte(n)})
	case n <= math.MaxUint16:
		var hdr [3]byte
		hdr[0] = wire.PrefixBin16
		binary.BigEndian.PutUint16(hdr[1:], uint16(n))
		buf.MustWrite(hdr[:])
	case n <= maxUint32:
		var hdr [5]byte
		hdr[0] = wire.PrefixBin32
		binary.BigEndian.PutUint32(hdr[1:], uint32(n))
		buf.MustWrite(hdr[:])
	default:
		return fmt.Errorf("%w: bin length %d exceeds 2^32-1", errs.ErrUnsupportedType, n)
	}

	buf.MustWrite(b)

	return nil
}

func encodeArrayHeader(buf *pool.ByteBuffer, n int) error {
	switch {
	case n <= 15:
		buf.MustWrite([]byte{wire.MakeFixarray(n)})
	case n <= math.MaxUint16:
		var b [3]byte
		b[0] = wire.PrefixArray16
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		buf.MustWrite(b[:])
	case n <= maxUint32:
		var b [5]byte
		b[0] = wire.PrefixArray32
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		buf.MustWrite(b[:])
	default:
		return fmt.Errorf("%w: array length %d exceeds 2^32-1", errs.ErrUnsupportedType, n)
	}

	return nil
}

func encodeMapHeader(buf *pool.ByteBuffer, n int) error {
	switch {
	case n <= 15:
		buf.MustWrite([]byte{wire.MakeFixmap(n)})
	case n <= math.MaxUint16:
		var b [3]byte
		b[0] = wire.PrefixMap16
		binary.BigEndian.PutUint16(b[1:], uint16(n))
		buf.MustWrite(b[:])
	case n <= maxUint32:
		var b [5]byte
		b[0] = wire.PrefixMap32
		binary.BigEndian.PutUint32(b[1:], uint32(n))
		buf.MustWrite(b[:])
	default:
		return fmt.Errorf("%w: map length %d exceeds 2^32-1", errs.ErrUnsupportedType, n)
	}

	return nil
}

func encodeExt(buf *pool.ByteBuffer, code int8, data []byte) error {
	n := len(data)

	if prefix, ok := wire.FixextPrefixFor(n); ok {
		buf.MustWrite([]byte{prefix, byte(code)})
		buf.MustWrite(data)

		return nil
	}

	switch {
	case n <= math.MaxUint8:
		buf.MustWrite([]byte{wire.PrefixExt8, byte(n), byte(code)})
	case n <= math.MaxUint16:
		var hdr [4]byte
		hdr[0] = wire.PrefixExt16
		binary.BigEndian.PutUint16(hdr[1:3], uint16(n))
		hdr[3] = byte(code)
		buf.MustWrite(hdr[:])
	case n <= maxUint32:
		var hdr [6]byte
		hdr[0] = wire.PrefixExt32
		binary.BigEndian.PutUint32(hdr[1:5], uint32(n))
		hdr[5] = byte(code)
		buf.MustWrite(hdr[:])
	default:
		return fmt.Errorf("%w: ext length %d exceeds 2^32-1", errs.ErrUnsupportedType, n)
	}

	buf.MustWrite(data)

	return nil
}
