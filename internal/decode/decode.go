// Package decode holds the single recursive decoder shared by the sync and
// streaming unpackers (spec.md §4.4's key design decision: "the decoder
// logic is reused verbatim by parameterizing the read-N-bytes primitive").
// Both unpack.Unpack and stream.Decode build a Decoder over an io.Reader;
// the only difference between "synchronous" and "streaming" is whether
// that reader blocks on a socket/pipe or replays an in-memory buffer.
package decode

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"

	"github.com/arloliu/msgpack/errs"
	"github.com/arloliu/msgpack/ext"
	"github.com/arloliu/msgpack/internal/hash"
	"github.com/arloliu/msgpack/internal/pool"
	"github.com/arloliu/msgpack/value"
	"github.com/arloliu/msgpack/wire"
)

// Config holds the unpack-time settings recognized by both the sync and
// streaming front-ends (spec.md §3 "Unpack options").
type Config struct {
	Registry         *ext.Registry
	AllowInvalidUTF8 bool
	// UseOrderedDict and UseTuple are accepted for API parity with
	// spec.md §3 but have no effect on the decoded representation: a
	// value.Value Map is always an ordered []Pair and a value.Value
	// Array is always a plain slice, so there is no separate
	// unordered-map or tuple flavor to opt out of in this taxonomy.
	UseOrderedDict bool
	UseTuple       bool
	// Observer, if set, receives every chunk read from the underlying
	// reader, followed by one empty-slice call when a document completes
	// (spec.md §4.4 Observer hook).
	Observer func([]byte)
}

// errEOFAtBoundary is returned internally when the reader is exhausted
// exactly at a document boundary (zero bytes consumed for the prefix).
// Decode and TryDecode each give this its own caller-facing meaning.
var errEOFAtBoundary = errors.New("decode: clean eof at document boundary")

// Decoder reads MessagePack documents from an io.Reader, tracking the byte
// offset for error reporting and optionally capturing raw bytes for Map
// key duplicate detection.
//
// Per spec.md §4.4's buffer discipline, every read needed to decode the
// current document goes through a single pooled scratch buffer (see
// internal/pool) instead of a fresh allocation per field: memory stays
// bounded to the largest single document rather than growing with the
// stream. The scratch buffer is borrowed on first use and returned with
// Release, which callers invoke once per Decoder lifetime (unpack.Unpack
// after its one Decode call; stream.Decode when the iterator stops).
type Decoder struct {
	r      io.Reader
	cfg    Config
	offset int64

	scratch *pool.ByteBuffer

	capturing bool
	capture   []byte
}

// New creates a Decoder reading from r.
func New(r io.Reader, cfg Config) *Decoder {
	if cfg.Registry == nil {
		cfg.Registry = ext.Default
	}

	return &Decoder{r: r, cfg: cfg}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.offset }

// Release returns the Decoder's pooled scratch buffer, if one was ever
// borrowed. Callers should invoke it once they are done driving this
// Decoder (after the last Decode/TryDecode call returns).
func (d *Decoder) Release() {
	if d.scratch != nil {
		pool.PutReadBuffer(d.scratch)
		d.scratch = nil
	}
}

// Decode reads exactly one top-level document, failing with
// ErrInsufficientData if the reader has nothing left to give.
func (d *Decoder) Decode() (value.Value, error) {
	val, err := d.decodeTop()
	if err == errEOFAtBoundary {
		return value.Value{}, errs.At(errs.ErrInsufficientData, d.offset)
	}

	return val, err
}

// TryDecode reads one top-level document. If the reader is cleanly
// exhausted at a document boundary it returns (zero, false, nil); this is
// the "end of stream" signal the streaming unpacker's loop checks for.
func (d *Decoder) TryDecode() (value.Value, bool, error) {
	val, err := d.decodeTop()
	if err == errEOFAtBoundary {
		return value.Value{}, false, nil
	}

	if err != nil {
		return value.Value{}, false, err
	}

	return val, true, nil
}

func (d *Decoder) decodeTop() (value.Value, error) {
	b, err := d.readByte()
	if err != nil {
		if err == io.EOF {
			return value.Value{}, errEOFAtBoundary
		}

		return value.Value{}, err
	}

	val, err := d.decodeFromPrefix(b)
	if err != nil {
		return value.Value{}, err
	}

	if d.cfg.Observer != nil {
		d.cfg.Observer(nil)
	}

	return val, nil
}

// readFull reads exactly n bytes from the pooled scratch buffer,
// translating a short read into ErrInsufficientData and a clean zero-byte
// EOF into io.EOF so callers can tell the two apart. The returned slice
// aliases the scratch buffer and is only valid until the next readFull
// call; callers that must retain bytes past that point (decodeBinWithLen,
// finishExt) copy them out explicitly.
func (d *Decoder) readFull(n int) ([]byte, error) {
	if d.scratch == nil {
		d.scratch = pool.GetReadBuffer()
	}

	d.scratch.Grow(n)
	buf := d.scratch.B[:n]

	read, err := io.ReadFull(d.r, buf)
	d.offset += int64(read)

	if err != nil {
		switch err {
		case io.EOF:
			if read == 0 {
				return nil, io.EOF
			}

			return nil, errs.At(errs.ErrInsufficientData, d.offset)
		case io.ErrUnexpectedEOF:
			return nil, errs.At(errs.ErrInsufficientData, d.offset)
		default:
			return nil, err
		}
	}

	if d.capturing {
		d.capture = append(d.capture, buf...)
	}

	if d.cfg.Observer != nil {
		d.cfg.Observer(buf)
	}

	return buf, nil
}

func (d *Decoder) readByte() (byte, error) {
	buf, err := d.readFull(1)
	if err != nil {
		return 0, err
	}

	return buf[0], nil
}

func (d *Decoder) decodeFromPrefix(b byte) (value.Value, error) {
	switch wire.ClassifyPrefix(b) {
	case wire.FamilyPosFixint:
		return value.Uint(uint64(wire.FixUint(b))), nil
	case wire.FamilyNegFixint:
		return value.Int(int64(wire.FixInt(b))), nil
	case wire.FamilyNil:
		return value.Nil(), nil
	case wire.FamilyFalse:
		return value.Bool(false), nil
	case wire.FamilyTrue:
		return value.Bool(true), nil
	case wire.FamilyReserved:
		return value.Value{}, errs.At(errs.ErrReservedCode, d.offset)

	case wire.FamilyFixmap:
		return d.decodeMap(wire.FixmapLen(b))
	case wire.FamilyFixarray:
		return d.decodeArray(wire.FixarrayLen(b))
	case wire.FamilyFixstr:
		return d.decodeStr(wire.FixstrLen(b))

	case wire.FamilyBin8:
		return d.decodeBinWithLen(1)
	case wire.FamilyBin16:
		return d.decodeBinWithLen(2)
	case wire.FamilyBin32:
		return d.decodeBinWithLen(4)

	case wire.FamilyStr8:
		return d.decodeStrWithLen(1)
	case wire.FamilyStr16:
		return d.decodeStrWithLen(2)
	case wire.FamilyStr32:
		return d.decodeStrWithLen(4)

	case wire.FamilyArray16:
		return d.decodeArrayWithLen(2)
	case wire.FamilyArray32:
		return d.decodeArrayWithLen(4)

	case wire.FamilyMap16:
		return d.decodeMapWithLen(2)
	case wire.FamilyMap32:
		return d.decodeMapWithLen(4)

	case wire.FamilyExt8:
		return d.decodeExtWithLen(1)
	case wire.FamilyExt16:
		return d.decodeExtWithLen(2)
	case wire.FamilyExt32:
		return d.decodeExtWithLen(4)

	case wire.FamilyFixext1:
		return d.decodeFixext(1)
	case wire.FamilyFixext2:
		return d.decodeFixext(2)
	case wire.FamilyFixext4:
		return d.decodeFixext(4)
	case wire.FamilyFixext8:
		return d.decodeFixext(8)
	case wire.FamilyFixext16:
		return d.decodeFixext(16)

	case wire.FamilyFloat32:
		buf, err := d.readFull(4)
		if err != nil {
			return value.Value{}, err
		}

		return value.Float(float64(math.Float32frombits(binary.BigEndian.Uint32(buf)))), nil

	case wire.FamilyFloat64:
		buf, err := d.readFull(8)
		if err != nil {
			return value.Value{}, err
		}

		return value.Float(math.Float64frombits(binary.BigEndian.Uint64(buf))), nil

	case wire.FamilyUint8:
		buf, err := d.readFull(1)
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint(uint64(buf[0])), nil
	case wire.FamilyUint16:
		buf, err := d.readFull(2)
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint(uint64(binary.BigEndian.Uint16(buf))), nil
	case wire.FamilyUint32:
		buf, err := d.readFull(4)
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint(uint64(binary.BigEndian.Uint32(buf))), nil
	case wire.FamilyUint64:
		buf, err := d.readFull(8)
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint(binary.BigEndian.Uint64(buf)), nil

	case wire.FamilyInt8:
		buf, err := d.readFull(1)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(int64(int8(buf[0]))), nil
	case wire.FamilyInt16:
		buf, err := d.readFull(2)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(int64(int16(binary.BigEndian.Uint16(buf)))), nil
	case wire.FamilyInt32:
		buf, err := d.readFull(4)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(int64(int32(binary.BigEndian.Uint32(buf)))), nil
	case wire.FamilyInt64:
		buf, err := d.readFull(8)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(int64(binary.BigEndian.Uint64(buf))), nil

	default:
		return value.Value{}, errs.At(errs.ErrReservedCode, d.offset)
	}
}

func (d *Decoder) decodeStr(n int) (value.Value, error) {
	buf, err := d.readFull(n)
	if err != nil {
		return value.Value{}, err
	}

	return d.finishStr(buf)
}

func (d *Decoder) decodeStrWithLen(lenBytes int) (value.Value, error) {
	n, err := d.readLen(lenBytes)
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeStr(n)
}

func (d *Decoder) finishStr(buf []byte) (value.Value, error) {
	if !utf8.Valid(buf) {
		if !d.cfg.AllowInvalidUTF8 {
			return value.Value{}, errs.At(errs.ErrInvalidString, d.offset)
		}

		// spec.md §4.3 step 4: when allow_invalid_utf8 permits a Str
		// payload that isn't valid UTF-8, return it as a Bin-flavoured
		// value preserving the raw bytes rather than a Str.
		owned := make([]byte, len(buf))
		copy(owned, buf)

		return value.Bin(owned), nil
	}

	return value.Str(string(buf)), nil
}

func (d *Decoder) decodeBinWithLen(lenBytes int) (value.Value, error) {
	n, err := d.readLen(lenBytes)
	if err != nil {
		return value.Value{}, err
	}

	buf, err := d.readFull(n)
	if err != nil {
		return value.Value{}, err
	}

	// buf aliases the scratch buffer; value.Bin keeps its slice without
	// copying, so it needs its own backing array.
	owned := make([]byte, n)
	copy(owned, buf)

	return value.Bin(owned), nil
}

func (d *Decoder) decodeArray(n int) (value.Value, error) {
	elems := make([]value.Value, n)

	for i := 0; i < n; i++ {
		v, err := d.decodeTopNested()
		if err != nil {
			return value.Value{}, err
		}

		elems[i] = v
	}

	return value.Array(elems), nil
}

func (d *Decoder) decodeArrayWithLen(lenBytes int) (value.Value, error) {
	n, err := d.readLen(lenBytes)
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeArray(n)
}

// keyRecord is one already-seen Map key's raw encoded bytes, kept so a hash
// collision can be resolved with an exact byte compare.
type keyRecord struct {
	hash uint64
	raw  []byte
}

func (d *Decoder) decodeMap(n int) (value.Value, error) {
	pairs := make([]value.Pair, n)
	seen := make(map[uint64][]keyRecord, n)

	for i := 0; i < n; i++ {
		key, keyBytes, err := d.decodeKeyCapturing()
		if err != nil {
			return value.Value{}, err
		}

		h := hash.OfBytes(keyBytes)
		for _, rec := range seen[h] {
			if bytesEqual(rec.raw, keyBytes) {
				return value.Value{}, errs.At(errs.ErrDuplicateKey, d.offset)
			}
		}

		seen[h] = append(seen[h], keyRecord{hash: h, raw: keyBytes})

		val, err := d.decodeTopNested()
		if err != nil {
			return value.Value{}, err
		}

		pairs[i] = value.Pair{Key: key, Val: val}
	}

	return value.Map(pairs), nil
}

func (d *Decoder) decodeMapWithLen(lenBytes int) (value.Value, error) {
	n, err := d.readLen(lenBytes)
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeMap(n)
}

// decodeKeyCapturing decodes one Map key while also recording the exact
// wire bytes consumed, so duplicate keys can be detected by raw-byte
// equality (spec.md §9's Open Question, resolved in DESIGN.md).
func (d *Decoder) decodeKeyCapturing() (value.Value, []byte, error) {
	wasCapturing := d.capturing
	savedCapture := d.capture

	d.capturing = true
	d.capture = nil

	key, err := d.decodeTopNested()

	captured := d.capture
	d.capturing = wasCapturing

	// If the parent call (an enclosing Map key that is itself a Map or
	// Array) was already capturing, the bytes consumed decoding this key
	// belong to that parent's capture too; fold them back in instead of
	// discarding them, or a nested key differing only inside this child
	// would capture the same parent bytes as any other nested key and
	// false-positive as a duplicate.
	if wasCapturing {
		d.capture = append(savedCapture, captured...)
	} else {
		d.capture = savedCapture
	}

	if err != nil {
		return value.Value{}, nil, err
	}

	return key, captured, nil
}

// decodeTopNested decodes one Value that is not itself a top-level
// document (an Array element, a Map key or value); it does not signal
// clean-EOF specially, since running out of input mid-structure is always
// ErrInsufficientData.
func (d *Decoder) decodeTopNested() (value.Value, error) {
	b, err := d.readByte()
	if err != nil {
		if err == io.EOF {
			return value.Value{}, errs.At(errs.ErrInsufficientData, d.offset)
		}

		return value.Value{}, err
	}

	return d.decodeFromPrefix(b)
}

func (d *Decoder) decodeExtWithLen(lenBytes int) (value.Value, error) {
	n, err := d.readLen(lenBytes)
	if err != nil {
		return value.Value{}, err
	}

	codeByte, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	return d.finishExt(int8(codeByte), n)
}

func (d *Decoder) decodeFixext(n int) (value.Value, error) {
	codeByte, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	return d.finishExt(int8(codeByte), n)
}

func (d *Decoder) finishExt(code int8, n int) (value.Value, error) {
	if code < 0 {
		return value.Value{}, errs.At(errs.ErrReservedCode, d.offset)
	}

	data, err := d.readFull(n)
	if err != nil {
		return value.Value{}, err
	}

	// data aliases the scratch buffer; value.Ext keeps its slice without
	// copying, so it needs its own backing array.
	owned := make([]byte, n)
	copy(owned, data)

	return value.Ext(code, owned), nil
}

func (d *Decoder) readLen(lenBytes int) (int, error) {
	buf, err := d.readFull(lenBytes)
	if err != nil {
		return 0, err
	}

	switch lenBytes {
	case 1:
		return int(buf[0]), nil
	case 2:
		return int(binary.BigEndian.Uint16(buf)), nil
	default:
		return int(binary.BigEndian.Uint32(buf)), nil
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
