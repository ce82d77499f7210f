// Package stream implements the streaming MessagePack unpacker (spec.md
// §4.4): the same recursive decoder as the unpack package, run over an
// io.Reader that may deliver its bytes in arbitrary chunks, yielding one
// value.Value per top-level document via an iter.Seq2 iterator.
//
// Per spec.md §4.4's key design decision, there is no second decoder here:
// Decode builds on internal/decode, the package unpack also builds on.
// What distinguishes "streaming" is only that the io.Reader is expected to
// block (a socket, a pipe, ChunkReader) rather than replay an in-memory
// slice; Go's goroutine-blocking read already is the "await exactly N
// bytes" primitive spec.md asks for, so no separate suspend/resume state
// machine is needed.
package stream

import (
	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/internal/decode"
	"github.com/arloliu/msgpack/internal/options"
)

// Option is a functional option for Decode.
type Option = options.Option[*decode.Config]

func newConfig() *decode.Config {
	return &decode.Config{Registry: ext.Default}
}

// WithRegistry sets the extension registry held in the decoder's config.
// Decode yields the raw value.Value taxonomy and does not resolve Ext
// codes, so this registry is not consulted while streaming.
func WithRegistry(r *ext.Registry) Option {
	return options.NoError(func(c *decode.Config) {
		c.Registry = r
	})
}

// WithAllowInvalidUTF8 permits a Str payload that fails UTF-8 validation to
// decode as a Bin-flavoured value preserving the raw bytes instead of
// failing with ErrInvalidString (spec.md §4.3 step 4).
func WithAllowInvalidUTF8(allow bool) Option {
	return options.NoError(func(c *decode.Config) {
		c.AllowInvalidUTF8 = allow
	})
}

// WithObserver registers a callback invoked with every chunk read from the
// source, followed by one nil-slice call when a document completes
// (spec.md §4.4). The concatenation of the non-nil chunks for one document
// equals that document's full encoded bytes (testable property 6).
func WithObserver(fn func(chunk []byte)) Option {
	return options.NoError(func(c *decode.Config) {
		c.Observer = fn
	})
}
