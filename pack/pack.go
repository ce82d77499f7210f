// Package pack implements the MessagePack packer (spec.md §4.2): mapping a
// dynamically-typed Go value onto the wire's type/length prefix scheme with
// mandatory minimal-width encoding.
//
// Pack accepts any Go value the same way the teacher's encoders accepted a
// fixed set of numeric kinds, except the switch here is over the full
// value taxonomy instead of float64/int64: nil, bool, every integer width,
// float32/float64, string, []byte, slices, maps, and anything registered
// in the extension registry.
package pack

import (
	"fmt"
	"io"
	"reflect"

	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/internal/options"
	"github.com/arloliu/msgpack/internal/pool"
	"github.com/arloliu/msgpack/value"
)

// Pack serializes v into a freshly owned MessagePack document.
//
// v may be a value.Value (used as-is, enabling exact control over Int vs
// Uint and Map pair order), any native Go scalar/slice/map reachable from
// the taxonomy in spec.md §3, or any type registered in the configured
// extension registry. Nested slices and maps are converted element by
// element, so a registered extension type may appear anywhere in the
// structure, not just at the top level.
func Pack(v any, opts ...Option) ([]byte, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	val, err := toValue(cfg, v)
	if err != nil {
		return nil, err
	}

	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	if err := encodeValue(buf, val, cfg); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// PackValue serializes an already-built value.Value, skipping the
// reflection-based conversion Pack performs on arbitrary Go values. This is
// the fast path for round-tripping a Value produced by unpack.Unpack.
func PackValue(val value.Value, opts ...Option) ([]byte, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	if err := encodeValue(buf, val, cfg); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// PackTo serializes v to w the same way Pack does, writing the packed
// document to w in a single Write call.
func PackTo(w io.Writer, v any, opts ...Option) error {
	data, err := Pack(v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// toValue converts an arbitrary Go value into the tagged taxonomy,
// consulting the extension registry by dynamic type before falling back to
// the native-kind switch, exactly matching spec.md §4.2's dispatch order:
// "before the standard family switch, the packer consults the registry."
func toValue(cfg *config, v any) (value.Value, error) {
	if v == nil {
		return value.Nil(), nil
	}

	if val, ok := v.(value.Value); ok {
		return val, nil
	}

	typ := reflect.TypeOf(v)
	if packFn, code, ok := cfg.registry.LookupByType(typ); ok {
		payload, err := packFn(v)
		if err != nil {
			return value.Value{}, err
		}

		return value.Ext(code, payload), nil
	}

	switch x := v.(type) {
	case bool:
		return value.Bool(x), nil
	case int:
		return value.Int(int64(x)), nil
	case int8:
		return value.Int(int64(x)), nil
	case int16:
		return value.Int(int64(x)), nil
	case int32:
		return value.Int(int64(x)), nil
	case int64:
		return value.Int(x), nil
	case uint:
		return value.Uint(uint64(x)), nil
	case uint8:
		return value.Uint(uint64(x)), nil
	case uint16:
		return value.Uint(uint64(x)), nil
	case uint32:
		return value.Uint(uint64(x)), nil
	case uint64:
		return value.Uint(x), nil
	case float32:
		return value.Float(float64(x)), nil
	case float64:
		return value.Float(x), nil
	case string:
		return value.Str(x), nil
	case []byte:
		return value.Bin(x), nil
	}

	return toValueReflect(cfg, reflect.ValueOf(v))
}

func toValueReflect(cfg *config, rv reflect.Value) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return value.Nil(), nil
		}

		return toValue(cfg, rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		n := rv.Len()
		elems := make([]value.Value, n)

		for i := 0; i < n; i++ {
			elem, err := toValue(cfg, rv.Index(i).Interface())
			if err != nil {
				return value.Value{}, err
			}

			elems[i] = elem
		}

		return value.Array(elems), nil

	case reflect.Map:
		keys := rv.MapKeys()
		pairs := make([]value.Pair, len(keys))

		for i, k := range keys {
			kv, err := toValue(cfg, k.Interface())
			if err != nil {
				return value.Value{}, err
			}

			vv, err := toValue(cfg, rv.MapIndex(k).Interface())
			if err != nil {
				return value.Value{}, err
			}

			pairs[i] = value.Pair{Key: kv, Val: vv}
		}

		return value.Map(pairs), nil

	default:
		return value.Value{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, rv.Type())
	}
}
