package stream

import (
	"io"
	"iter"

	"github.com/arloliu/msgpack/internal/decode"
	"github.com/arloliu/msgpack/internal/options"
	"github.com/arloliu/msgpack/value"
)

// Decode returns an iterator yielding one value.Value per top-level
// MessagePack document read from r, in arrival order (spec.md §5
// Ordering). Iteration stops cleanly when r is exhausted at a document
// boundary. If r returns an error mid-document, or decoding a document
// fails, the iterator yields the zero Value paired with that error and
// then stops; per spec.md §7, a failed document's partial bytes are
// discarded and the error is not retried.
//
// Range-over-func costs here map directly to spec.md §4.4's await model:
// each time Decode needs more bytes than r currently has buffered, the
// underlying Read call blocks the goroutine driving the range loop — the
// same suspension spec.md describes, expressed as an ordinary blocking
// call instead of a separate coroutine state machine.
func Decode(r io.Reader, opts ...Option) iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		cfg := newConfig()
		if err := options.Apply(cfg, opts...); err != nil {
			yield(value.Value{}, err)
			return
		}

		dec := decode.New(r, *cfg)
		defer dec.Release()

		for {
			val, ok, err := dec.TryDecode()
			if err != nil {
				yield(value.Value{}, err)
				return
			}

			if !ok {
				return
			}

			if !yield(val, nil) {
				return
			}
		}
	}
}
