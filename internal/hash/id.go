// Package hash provides the xxHash64 helper the unpack package uses to
// detect duplicate Map keys by their raw encoded bytes (spec.md §4.3 step 5
// and the Open Question on key equality, resolved in favor of raw-byte
// equality — see DESIGN.md).
package hash

import "github.com/cespare/xxhash/v2"

// OfBytes computes the xxHash64 of a Map key's raw encoded wire bytes. Two
// keys with the same hash still require a full byte compare before being
// treated as equal; OfBytes only narrows the candidate set.
func OfBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
