// Package ext implements the MessagePack codec's extension registry
// (spec.md §4.5): the process-wide table binding Go types to one-byte Ext
// codes, consulted by the packer before its standard family switch and by
// unpack.UnpackAny when it converts a decoded Ext value to a Go value.
//
// The registry is modeled the way the teacher tracked metric-name hash
// collisions — two indices over the same set of entries, guarded by a
// single mutex — except here the two indices are "by Go type" and "by
// wire code" rather than "by hash" and "by insertion order".
package ext

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/arloliu/msgpack/errs"
)

// PackFunc converts a registered value to its Ext payload bytes.
type PackFunc func(v any) ([]byte, error)

// UnpackFunc converts an Ext payload back into a registered value.
type UnpackFunc func(data []byte) (any, error)

type entry struct {
	code   int8
	typ    reflect.Type
	pack   PackFunc
	unpack UnpackFunc
}

// Registry is the two-index extension table described in spec.md §4.5.
// The zero value is not usable; construct one with New.
//
// A Registry is safe for concurrent reads once registration has quiesced.
// Concurrent writes are not required to be atomic with respect to each
// other; the intended usage is "register during init" (spec.md §5).
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*entry
	byCode map[int8]*entry
}

// New creates an empty Registry. Most callers should use the process-wide
// Default registry instead; New exists for tests and for callers who need
// an isolated extension namespace.
func New() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*entry),
		byCode: make(map[int8]*entry),
	}
}

// register is shared by RegisterBuiltin and RegisterUser: the spec
// distinguishes the two call sites (built-in types vs user classes) but
// the mechanism — last-write-wins on either index — is identical.
func (r *Registry) register(typ reflect.Type, code int8, pack PackFunc, unpack UnpackFunc) error {
	if code < 0 || code > 127 {
		return fmt.Errorf("%w: ext code %d is outside the application-defined range [0,127]", errs.ErrReservedCode, code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := &entry{code: code, typ: typ, pack: pack, unpack: unpack}

	// Replacing an existing type or code registration is last-write-wins;
	// drop the stale index entries for whichever side is being displaced.
	if old, ok := r.byType[typ]; ok {
		delete(r.byCode, old.code)
	}

	if old, ok := r.byCode[code]; ok {
		delete(r.byType, old.typ)
	}

	r.byType[typ] = e
	r.byCode[code] = e

	return nil
}

// RegisterBuiltin registers a built-in-type packer: a Go type the codec
// itself ships support for (e.g. complex128), invoked automatically by the
// packer whenever it packs a value of that dynamic type.
func (r *Registry) RegisterBuiltin(typ reflect.Type, code int8, pack PackFunc, unpack UnpackFunc) error {
	return r.register(typ, code, pack, unpack)
}

// RegisterUser registers a user-class packer: the same mechanism as
// RegisterBuiltin, for application-owned types.
func (r *Registry) RegisterUser(typ reflect.Type, code int8, pack PackFunc, unpack UnpackFunc) error {
	return r.register(typ, code, pack, unpack)
}

// LookupByType returns the registered pack function and Ext code for typ,
// and false if typ has no registered packer.
func (r *Registry) LookupByType(typ reflect.Type) (PackFunc, int8, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byType[typ]
	if !ok {
		return nil, 0, false
	}

	return e.pack, e.code, true
}

// LookupByCode returns the registered unpack function for code, and false
// if code has no registered unpacker.
func (r *Registry) LookupByCode(code int8) (UnpackFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byCode[code]
	if !ok {
		return nil, false
	}

	return e.unpack, true
}

// Default is the process-wide registry consulted by the pack and unpack
// packages when callers don't supply their own. Built-in extensions
// (builtin/complexext, builtin/compressext) register themselves here from
// an init function.
var Default = New()

// RegisterBuiltin registers typ on the Default registry. See
// RegisterBuiltinT for a generic, type-checked wrapper.
func RegisterBuiltin(typ reflect.Type, code int8, pack PackFunc, unpack UnpackFunc) error {
	return Default.RegisterBuiltin(typ, code, pack, unpack)
}

// RegisterUser registers typ on the Default registry. See RegisterUserT
// for a generic, type-checked wrapper.
func RegisterUser(typ reflect.Type, code int8, pack PackFunc, unpack UnpackFunc) error {
	return Default.RegisterUser(typ, code, pack, unpack)
}

// RegisterBuiltinT is a generic convenience wrapper around
// Registry.RegisterBuiltin that takes and returns T directly instead of
// any, so callers don't need reflect or type assertions at the call site.
func RegisterBuiltinT[T any](r *Registry, code int8, pack func(T) ([]byte, error), unpack func([]byte) (T, error)) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	return r.RegisterBuiltin(typ, code,
		func(v any) ([]byte, error) { return pack(v.(T)) },
		func(data []byte) (any, error) { return unpack(data) },
	)
}

// RegisterUserT is the RegisterUser counterpart of RegisterBuiltinT.
func RegisterUserT[T any](r *Registry, code int8, pack func(T) ([]byte, error), unpack func([]byte) (T, error)) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	return r.RegisterUser(typ, code,
		func(v any) ([]byte, error) { return pack(v.(T)) },
		func(data []byte) (any, error) { return unpack(data) },
	)
}
