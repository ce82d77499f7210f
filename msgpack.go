// Package msgpack provides a MessagePack codec: serialization of in-memory
// values into the MessagePack binary wire format and back, with a registry
// for extending the format with application-defined or additional built-in
// types.
//
// # Core Features
//
//   - Minimal-width encoding of integers, strings, binaries, arrays, maps,
//     and extensions, bit-exact with the MessagePack specification
//   - A streaming unpacker that consumes an io.Reader delivering bytes in
//     arbitrary chunks, yielding one value per document via iter.Seq2
//   - An extension registry binding Go types to stable one-byte Ext codes,
//     with CompressedBin (general-purpose compression) and Complex
//     (complex64/complex128) registered by default
//
// # Basic Usage
//
// Packing and unpacking a value:
//
//	import "github.com/arloliu/msgpack"
//
//	data, err := msgpack.Dumps(map[string]any{"foo": 1})
//	if err != nil {
//	    return err
//	}
//
//	val, err := msgpack.Loads(data)
//	if err != nil {
//	    return err
//	}
//
// Streaming a byte source that may deliver data in arbitrary chunks:
//
//	for val, err := range msgpack.StreamLoad(conn) {
//	    if err != nil {
//	        return err
//	    }
//	    handle(val)
//	}
//
// # Package Structure
//
// This file provides convenient top-level wrappers around the pack,
// unpack, and stream packages, matching their option types directly. For
// advanced usage — a private extension registry, the raw value.Value
// taxonomy, offset-carrying decode errors — use those packages directly.
package msgpack

import (
	"io"
	"iter"
	"reflect"

	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/pack"
	"github.com/arloliu/msgpack/stream"
	"github.com/arloliu/msgpack/unpack"
	"github.com/arloliu/msgpack/value"

	_ "github.com/arloliu/msgpack/builtin/complexext"
	_ "github.com/arloliu/msgpack/builtin/compressext"
)

// Dumps serializes v into a freshly owned MessagePack document. v may be
// any native Go value reachable from the taxonomy in spec.md §3, a
// value.Value, or any type registered with RegisterBuiltin/RegisterUser.
func Dumps(v any, opts ...pack.Option) ([]byte, error) {
	return pack.Pack(v, opts...)
}

// Dump serializes v to sink the same way Dumps does.
func Dump(v any, sink io.Writer, opts ...pack.Option) error {
	return pack.PackTo(sink, v, opts...)
}

// Loads reads exactly one top-level MessagePack document from data and
// converts it to native Go types, resolving any registered Ext code.
// Leftover bytes in data are not consumed and are not an error.
func Loads(data []byte, opts ...unpack.Option) (any, error) {
	return unpack.UnpackAny(data, opts...)
}

// Load reads exactly one top-level MessagePack document from source.
func Load(source io.Reader, opts ...unpack.Option) (value.Value, error) {
	return unpack.UnpackReader(source, opts...)
}

// StreamLoad returns an iterator yielding one decoded value per top-level
// document read from source, in arrival order. source may deliver bytes in
// arbitrary chunks; iteration suspends (blocks) whenever more bytes are
// needed and stops cleanly at a document boundary once source is
// exhausted.
func StreamLoad(source io.Reader, opts ...stream.Option) iter.Seq2[value.Value, error] {
	return stream.Decode(source, opts...)
}

// RegisterBuiltin registers a built-in-type packer on the process-wide
// default registry: a Go type the codec itself ships support for,
// dispatched automatically whenever Dumps/Loads meets that dynamic type.
func RegisterBuiltin(typ reflect.Type, code int8, packFn ext.PackFunc, unpackFn ext.UnpackFunc) error {
	return ext.RegisterBuiltin(typ, code, packFn, unpackFn)
}

// RegisterUser registers a user-class packer on the process-wide default
// registry: the same mechanism as RegisterBuiltin, for application-owned
// types.
func RegisterUser(typ reflect.Type, code int8, packFn ext.PackFunc, unpackFn ext.UnpackFunc) error {
	return ext.RegisterUser(typ, code, packFn, unpackFn)
}
