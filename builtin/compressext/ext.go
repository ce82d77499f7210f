package compressext

import (
	"fmt"
	"reflect"

	"github.com/arloliu/msgpack/ext"
)

// CodeCompressedBin is the Ext type code CompressedBin registers at,
// chosen from the application-defined range spec.md §3 sets aside
// ([0,127]); it has no meaning outside this package's own registration.
const CodeCompressedBin int8 = 0x51

// CompressedBin is a byte payload that packs as a compressed Ext value and
// unpacks back to its original bytes. Wrapping a value in CompressedBin
// before handing it to pack.Pack is how a caller opts a single field into
// compression; the rest of the document is unaffected.
type CompressedBin struct {
	Algorithm Algorithm
	Data      []byte
}

func init() {
	if err := ext.RegisterBuiltinT[CompressedBin](ext.Default, CodeCompressedBin, packCompressedBin, unpackCompressedBin); err != nil {
		panic(fmt.Sprintf("compressext: register CompressedBin: %v", err))
	}
}

// Type returns the reflect.Type RegisterBuiltinT keyed this registration
// on, for callers that want to register CompressedBin on a non-default
// *ext.Registry.
func Type() reflect.Type {
	return reflect.TypeOf(CompressedBin{})
}

// Register adds CompressedBin's pack/unpack functions to r at
// CodeCompressedBin. ext.Default already carries this registration from
// init; Register exists for callers using an isolated *ext.Registry.
func Register(r *ext.Registry) error {
	return ext.RegisterBuiltinT[CompressedBin](r, CodeCompressedBin, packCompressedBin, unpackCompressedBin)
}

func packCompressedBin(v CompressedBin) ([]byte, error) {
	codec, err := CodecFor(v.Algorithm)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(v.Data)
	if err != nil {
		return nil, fmt.Errorf("compressext: compress with %s: %w", v.Algorithm, err)
	}

	payload := make([]byte, 1+len(compressed))
	payload[0] = byte(v.Algorithm)
	copy(payload[1:], compressed)

	return payload, nil
}

func unpackCompressedBin(data []byte) (CompressedBin, error) {
	if len(data) < 1 {
		return CompressedBin{}, fmt.Errorf("compressext: payload too short to hold an algorithm byte")
	}

	alg := Algorithm(data[0])

	codec, err := CodecFor(alg)
	if err != nil {
		return CompressedBin{}, err
	}

	original, err := codec.Decompress(data[1:])
	if err != nil {
		return CompressedBin{}, fmt.Errorf("compressext: decompress with %s: %w", alg, err)
	}

	return CompressedBin{Algorithm: alg, Data: original}, nil
}
