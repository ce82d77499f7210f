// Package errs defines the codec's closed error taxonomy (spec.md §7) and
// the DecodeError wrapper that attaches a byte offset to unpack failures.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match these with errors.Is; DecodeError wraps
// one of them with positional context.
var (
	// ErrUnsupportedType is returned by the packer when a value's type has
	// no native encoding and no registered extension.
	ErrUnsupportedType = errors.New("msgpack: unsupported type")

	// ErrInsufficientData is returned by an unpacker when the input ends
	// before a prefix-declared field is complete.
	ErrInsufficientData = errors.New("msgpack: insufficient data")

	// ErrInvalidString is returned when a Str payload is not valid UTF-8
	// and allow_invalid_utf8 is false.
	ErrInvalidString = errors.New("msgpack: invalid UTF-8 string")

	// ErrReservedCode is returned for the reserved 0xc1 prefix, or for an
	// Ext type code in [-128,-1] the codec does not implement.
	ErrReservedCode = errors.New("msgpack: reserved code")

	// ErrUnhashableKey is returned when a decoded Map key cannot be placed
	// in the target map representation.
	ErrUnhashableKey = errors.New("msgpack: unhashable map key")

	// ErrDuplicateKey is returned when a Map contains two equal keys.
	ErrDuplicateKey = errors.New("msgpack: duplicate map key")
)

// DecodeError wraps one of the sentinel errors above with the byte offset
// at which it was detected, so callers can locate the offending byte in
// the source without re-scanning.
type DecodeError struct {
	Err    error
	Offset int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("msgpack: %v at offset %d", e.Err, e.Offset)
}

// Unwrap makes errors.Is(err, errs.ErrXxx) work through a DecodeError.
func (e *DecodeError) Unwrap() error { return e.Err }

// At wraps err with the offset at which it was detected. If err is nil, At
// returns nil.
func At(err error, offset int64) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Err: err, Offset: offset}
}
