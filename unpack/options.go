// Package unpack implements the synchronous MessagePack unpacker (spec.md
// §4.3): a prefix-directed recursive decoder over a byte slice or an
// io.Reader. The recursive descent itself lives in internal/decode, shared
// verbatim with the stream package per spec.md §4.4's design note.
package unpack

import (
	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/internal/decode"
	"github.com/arloliu/msgpack/internal/options"
)

// Option is a functional option for Unpack, UnpackReader, UnpackStrict, and
// UnpackAny.
type Option = options.Option[*decode.Config]

func newConfig() *decode.Config {
	return &decode.Config{Registry: ext.Default}
}

// WithRegistry overrides the extension registry UnpackAny consults to
// resolve Ext codes. Unpack, UnpackStrict and UnpackReader return Ext
// values unresolved. The default is ext.Default.
func WithRegistry(r *ext.Registry) Option {
	return options.NoError(func(c *decode.Config) {
		c.Registry = r
	})
}

// WithAllowInvalidUTF8 permits a Str payload that fails UTF-8 validation to
// decode as a Bin-flavoured value preserving the raw bytes instead of
// failing with ErrInvalidString (spec.md §4.3 step 4). The default is
// false, matching spec.md §3.
func WithAllowInvalidUTF8(allow bool) Option {
	return options.NoError(func(c *decode.Config) {
		c.AllowInvalidUTF8 = allow
	})
}

// WithUseOrderedDict is accepted for parity with spec.md §3's option set.
// It has no observable effect: a decoded Map is always an ordered []Pair.
func WithUseOrderedDict(use bool) Option {
	return options.NoError(func(c *decode.Config) {
		c.UseOrderedDict = use
	})
}

// WithUseTuple is accepted for parity with spec.md §3's option set. It has
// no observable effect: a decoded Array is always a plain []Value.
func WithUseTuple(use bool) Option {
	return options.NoError(func(c *decode.Config) {
		c.UseTuple = use
	})
}

// WithObserver registers a callback invoked with every chunk read from the
// source, followed by one nil-slice call when a document completes
// (spec.md §4.4). It applies to every entry point, Unpack included: each
// prefix, length and payload read is delivered as its own chunk.
func WithObserver(fn func(chunk []byte)) Option {
	return options.NoError(func(c *decode.Config) {
		c.Observer = fn
	})
}
