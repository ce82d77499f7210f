// Package wire holds the MessagePack prefix byte table: the single shared
// source of truth for which first byte means which family, and the width
// thresholds the packer uses to pick the narrowest encoding. Both pack and
// unpack import this package instead of duplicating the table.
package wire

// Family identifies which row of the MessagePack prefix table a byte
// belongs to.
type Family uint8

const (
	FamilyReserved Family = iota
	FamilyPosFixint
	FamilyFixmap
	FamilyFixarray
	FamilyFixstr
	FamilyNil
	FamilyFalse
	FamilyTrue
	FamilyBin8
	FamilyBin16
	FamilyBin32
	FamilyExt8
	FamilyExt16
	FamilyExt32
	FamilyFloat32
	FamilyFloat64
	FamilyUint8
	FamilyUint16
	FamilyUint32
	FamilyUint64
	FamilyInt8
	FamilyInt16
	FamilyInt32
	FamilyInt64
	FamilyFixext1
	FamilyFixext2
	FamilyFixext4
	FamilyFixext8
	FamilyFixext16
	FamilyStr8
	FamilyStr16
	FamilyStr32
	FamilyArray16
	FamilyArray32
	FamilyMap16
	FamilyMap32
	FamilyNegFixint
)

// Prefix bytes for the non-fix families (§4.1). Fix families are ranges,
// tested with the helpers below rather than a single constant.
const (
	PrefixNil     byte = 0xc0
	PrefixInvalid byte = 0xc1 // reserved, always rejected
	PrefixFalse   byte = 0xc2
	PrefixTrue    byte = 0xc3

	PrefixBin8  byte = 0xc4
	PrefixBin16 byte = 0xc5
	PrefixBin32 byte = 0xc6

	PrefixExt8  byte = 0xc7
	PrefixExt16 byte = 0xc8
	PrefixExt32 byte = 0xc9

	PrefixFloat32 byte = 0xca
	PrefixFloat64 byte = 0xcb

	PrefixUint8  byte = 0xcc
	PrefixUint16 byte = 0xcd
	PrefixUint32 byte = 0xce
	PrefixUint64 byte = 0xcf

	PrefixInt8  byte = 0xd0
	PrefixInt16 byte = 0xd1
	PrefixInt32 byte = 0xd2
	PrefixInt64 byte = 0xd3

	PrefixFixext1  byte = 0xd4
	PrefixFixext2  byte = 0xd5
	PrefixFixext4  byte = 0xd6
	PrefixFixext8  byte = 0xd7
	PrefixFixext16 byte = 0xd8

	PrefixStr8  byte = 0xd9
	PrefixStr16 byte = 0xda
	PrefixStr32 byte = 0xdb

	PrefixArray16 byte = 0xdc
	PrefixArray32 byte = 0xdd

	PrefixMap16 byte = 0xde
	PrefixMap32 byte = 0xdf
)

// Fix-family ranges and masks.
const (
	fixmapMask  byte = 0xf0
	fixmapTag   byte = 0x80
	fixmapBits  byte = 0x0f
	fixarrMask  byte = 0xf0
	fixarrTag   byte = 0x90
	fixarrBits  byte = 0x0f
	fixstrMask  byte = 0xe0
	fixstrTag   byte = 0xa0
	fixstrBits  byte = 0x1f
	posFixMax   byte = 0x7f // 0x00-0x7f
	negFixMask  byte = 0xe0
	negFixTag   byte = 0xe0
	negFixMin   int8 = -32
)

// ClassifyPrefix maps a prefix byte to its Family. It never fails: every
// byte value belongs to exactly one family, including FamilyReserved for
// 0xc1.
func ClassifyPrefix(b byte) Family {
	switch {
	case b <= posFixMax:
		return FamilyPosFixint
	case b&fixmapMask == fixmapTag:
		return FamilyFixmap
	case b&fixarrMask == fixarrTag:
		return FamilyFixarray
	case b&fixstrMask == fixstrTag:
		return FamilyFixstr
	case b&negFixMask == negFixTag:
		return FamilyNegFixint
	}

	switch b {
	case PrefixNil:
		return FamilyNil
	case PrefixInvalid:
		return FamilyReserved
	case PrefixFalse:
		return FamilyFalse
	case PrefixTrue:
		return FamilyTrue
	case PrefixBin8:
		return FamilyBin8
	case PrefixBin16:
		return FamilyBin16
	case PrefixBin32:
		return FamilyBin32
	case PrefixExt8:
		return FamilyExt8
	case PrefixExt16:
		return FamilyExt16
	case PrefixExt32:
		return FamilyExt32
	case PrefixFloat32:
		return FamilyFloat32
	case PrefixFloat64:
		return FamilyFloat64
	case PrefixUint8:
		return FamilyUint8
	case PrefixUint16:
		return FamilyUint16
	case PrefixUint32:
		return FamilyUint32
	case PrefixUint64:
		return FamilyUint64
	case PrefixInt8:
		return FamilyInt8
	case PrefixInt16:
		return FamilyInt16
	case PrefixInt32:
		return FamilyInt32
	case PrefixInt64:
		return FamilyInt64
	case PrefixFixext1:
		return FamilyFixext1
	case PrefixFixext2:
		return FamilyFixext2
	case PrefixFixext4:
		return FamilyFixext4
	case PrefixFixext8:
		return FamilyFixext8
	case PrefixFixext16:
		return FamilyFixext16
	case PrefixStr8:
		return FamilyStr8
	case PrefixStr16:
		return FamilyStr16
	case PrefixStr32:
		return FamilyStr32
	case PrefixArray16:
		return FamilyArray16
	case PrefixArray32:
		return FamilyArray32
	case PrefixMap16:
		return FamilyMap16
	case PrefixMap32:
		return FamilyMap32
	default:
		return FamilyReserved
	}
}

// FixUint extracts the embedded value of a positive fixint prefix.
func FixUint(b byte) uint8 { return b }

// FixInt extracts the embedded value of a negative fixint prefix.
func FixInt(b byte) int8 { return int8(b) }

// FixmapLen extracts the embedded element-pair count of a fixmap prefix.
func FixmapLen(b byte) int { return int(b & fixmapBits) }

// FixarrayLen extracts the embedded element count of a fixarray prefix.
func FixarrayLen(b byte) int { return int(b & fixarrBits) }

// FixstrLen extracts the embedded byte length of a fixstr prefix.
func FixstrLen(b byte) int { return int(b & fixstrBits) }

// MakeFixmap builds a fixmap prefix for n key/value pairs. n must be in [0,15].
func MakeFixmap(n int) byte { return fixmapTag | byte(n) }

// MakeFixarray builds a fixarray prefix for n elements. n must be in [0,15].
func MakeFixarray(n int) byte { return fixarrTag | byte(n) }

// MakeFixstr builds a fixstr prefix for n bytes. n must be in [0,31].
func MakeFixstr(n int) byte { return fixstrTag | byte(n) }

// FixextLen returns the fixed payload length for one of the fixext
// prefixes, and false if p is not a fixext prefix.
func FixextLen(p byte) (int, bool) {
	switch p {
	case PrefixFixext1:
		return 1, true
	case PrefixFixext2:
		return 2, true
	case PrefixFixext4:
		return 4, true
	case PrefixFixext8:
		return 8, true
	case PrefixFixext16:
		return 16, true
	default:
		return 0, false
	}
}

// FixextPrefixFor returns the fixext prefix for an ext payload of length n,
// and false if n is not one of {1,2,4,8,16}.
func FixextPrefixFor(n int) (byte, bool) {
	switch n {
	case 1:
		return PrefixFixext1, true
	case 2:
		return PrefixFixext2, true
	case 4:
		return PrefixFixext4, true
	case 8:
		return PrefixFixext8, true
	case 16:
		return PrefixFixext16, true
	default:
		return 0, false
	}
}
