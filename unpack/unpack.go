package unpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/internal/decode"
	"github.com/arloliu/msgpack/internal/options"
	"github.com/arloliu/msgpack/value"
)

// ErrTrailingBytes is returned by UnpackStrict when bytes remain after the
// single top-level document it decoded. It is not part of the closed
// unpack error taxonomy in spec.md §7 (the base spec leaves strict/non-strict
// as an Open Question); UnpackStrict is the "MAY also provide a strict
// variant" allowance in spec.md §4.3.
var ErrTrailingBytes = errors.New("msgpack: trailing bytes after document")

// Unpack reads exactly one top-level MessagePack document from data.
// Leftover bytes are not consumed and are not an error: spec.md §4.3
// leaves strict/non-strict as an Open Question, resolved here (see
// DESIGN.md) in favor of non-strict by default, with UnpackStrict
// available when trailing bytes should fail.
func Unpack(data []byte, opts ...Option) (value.Value, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return value.Value{}, err
	}

	dec := decode.New(bytes.NewReader(data), *cfg)
	defer dec.Release()

	return dec.Decode()
}

// UnpackStrict behaves like Unpack but fails with ErrTrailingBytes if data
// contains more than one document's worth of bytes.
func UnpackStrict(data []byte, opts ...Option) (value.Value, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return value.Value{}, err
	}

	r := bytes.NewReader(data)
	dec := decode.New(r, *cfg)
	defer dec.Release()

	val, err := dec.Decode()
	if err != nil {
		return value.Value{}, err
	}

	if r.Len() > 0 {
		return value.Value{}, fmt.Errorf("%w: %d byte(s)", ErrTrailingBytes, r.Len())
	}

	return val, nil
}

// UnpackReader reads exactly one top-level MessagePack document from r,
// consuming only the bytes that document needs.
func UnpackReader(r io.Reader, opts ...Option) (value.Value, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return value.Value{}, err
	}

	dec := decode.New(r, *cfg)
	defer dec.Release()

	return dec.Decode()
}

// UnpackAny decodes data the way Unpack does, then recursively converts
// the result into native Go types (nil, bool, int64, uint64, float64,
// string, []byte, []any, map[any]any), resolving any registered Ext code
// via its unpack function. This is the dual of pack.Pack's any-typed entry
// point, used for round-tripping values like complex128 without the
// caller handling value.Value directly.
func UnpackAny(data []byte, opts ...Option) (any, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dec := decode.New(bytes.NewReader(data), *cfg)
	defer dec.Release()

	val, err := dec.Decode()
	if err != nil {
		return nil, err
	}

	return fromValue(cfg.Registry, val)
}

func fromValue(reg *ext.Registry, val value.Value) (any, error) {
	switch val.Kind() {
	case value.KindNil:
		return nil, nil
	case value.KindBool:
		b, _ := val.AsBool()
		return b, nil
	case value.KindInt:
		i, _ := val.AsInt()
		return i, nil
	case value.KindUint:
		u, _ := val.AsUint()
		return u, nil
	case value.KindFloat:
		f, _ := val.AsFloat()
		return f, nil
	case value.KindStr:
		s, _ := val.AsStr()
		return s, nil
	case value.KindBin:
		b, _ := val.AsBin()
		return b, nil

	case value.KindArray:
		elems, _ := val.AsArray()
		out := make([]any, len(elems))

		for i, e := range elems {
			v, err := fromValue(reg, e)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil

	case value.KindMap:
		pairs, _ := val.AsMap()
		out := make(map[any]any, len(pairs))

		for _, p := range pairs {
			k, err := fromValue(reg, p.Key)
			if err != nil {
				return nil, err
			}

			v, err := fromValue(reg, p.Val)
			if err != nil {
				return nil, err
			}

			if err := safeMapSet(out, k, v); err != nil {
				return nil, err
			}
		}

		return out, nil

	case value.KindExt:
		code, data, _ := val.AsExt()
		if unpackFn, ok := reg.LookupByCode(code); ok {
			return unpackFn(data)
		}

		return val, nil

	default:
		return nil, fmt.Errorf("%w: value.Kind(%d)", errs.ErrUnsupportedType, val.Kind())
	}
}

// safeMapSet assigns m[k]=v, converting the runtime panic Go raises when k
// is a non-comparable dynamic type (e.g. a decoded []any) into
// ErrUnhashableKey, per spec.md §7.
func safeMapSet(m map[any]any, k, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ErrUnhashableKey
		}
	}()

	m[k] = v

	return nil
}
