// Package complexext registers complex64 and complex128 as built-in Ext
// types, directly grounded in spec.md §8 scenario 5: packing
// complex(1.0, 4.0) with the Complex extension registered at code 0x50
// must produce `d7 50 3f800000 40800000` — a fixext8 holding two
// big-endian IEEE-754 binary32 halves.
package complexext

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/msgpack/ext"
)

// CodeComplex64 is the Ext type code for complex64, matching spec.md §8
// scenario 5's literal byte example.
const CodeComplex64 int8 = 0x50

// CodeComplex128 is the Ext type code for complex128: the same layout
// widened to two binary64 halves (fixext16).
const CodeComplex128 int8 = 0x52

func init() {
	must(ext.RegisterBuiltinT[complex64](ext.Default, CodeComplex64, packComplex64, unpackComplex64))
	must(ext.RegisterBuiltinT[complex128](ext.Default, CodeComplex128, packComplex128, unpackComplex128))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("complexext: %v", err))
	}
}

// Register adds complex64 and complex128 pack/unpack functions to r. The
// Default registry already carries both from init; Register exists for
// callers using an isolated *ext.Registry.
func Register(r *ext.Registry) error {
	if err := ext.RegisterBuiltinT[complex64](r, CodeComplex64, packComplex64, unpackComplex64); err != nil {
		return err
	}

	return ext.RegisterBuiltinT[complex128](r, CodeComplex128, packComplex128, unpackComplex128)
}

func packComplex64(c complex64) ([]byte, error) {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], math.Float32bits(real(c)))
	binary.BigEndian.PutUint32(buf[4:8], math.Float32bits(imag(c)))

	return buf[:], nil
}

func unpackComplex64(data []byte) (complex64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("complexext: complex64 payload must be 8 bytes, got %d", len(data))
	}

	re := math.Float32frombits(binary.BigEndian.Uint32(data[0:4]))
	im := math.Float32frombits(binary.BigEndian.Uint32(data[4:8]))

	return complex(re, im), nil
}

func packComplex128(c complex128) ([]byte, error) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(real(c)))
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(imag(c)))

	return buf[:], nil
}

func unpackComplex128(data []byte) (complex128, error) {
	if len(data) != 16 {
		return 0, fmt.Errorf("complexext: complex128 payload must be 16 bytes, got %d", len(data))
	}

	re := math.Float64frombits(binary.BigEndian.Uint64(data[0:8]))
	im := math.Float64frombits(binary.BigEndian.Uint64(data[8:16]))

	return complex(re, im), nil
}
