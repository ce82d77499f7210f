// Package pool provides a pooled, amortized-growth byte buffer used to
// assemble packed documents and to hold the streaming unpacker's rolling
// per-document buffer.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for the two buffer pools this package exposes:
// one tier sized for a single packed document, one sized for the streaming
// unpacker's rolling buffer (which, per spec.md §4.4, never needs to hold
// more than the single document currently being decoded, but that document
// can be larger than a typical pack target).
const (
	DocBufferDefaultSize   = 1024 * 4   // 4KiB
	DocBufferMaxThreshold  = 1024 * 128 // 128KiB
	ReadBufferDefaultSize  = 1024 * 16  // 16KiB
	ReadBufferMaxThreshold = 1024 * 1024 * 4
)

// ByteBuffer is a growable byte slice with amortized growth, borrowed from
// and returned to a sync.Pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but retains its allocated memory for reuse.
// ByteBufferPool.Put calls it before returning a buffer to the pool.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating.
//
// Growth strategy:
//   - For small buffers (<4x the default size), grow by DocBufferDefaultSize
//     to minimize reallocations for typical small documents.
//   - For larger buffers, grow by 25% of current capacity to balance memory
//     usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DocBufferDefaultSize
	if cap(bb.B) > 4*DocBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// It implements io.Writer so a ByteBuffer can be passed directly as a
// pack sink.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers with an optional maximum
// retained size, so one oversized document doesn't permanently bloat the
// pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool whose buffers start at
// defaultSize and are discarded, rather than recycled, once they grow past
// maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	docPool  = NewByteBufferPool(DocBufferDefaultSize, DocBufferMaxThreshold)
	readPool = NewByteBufferPool(ReadBufferDefaultSize, ReadBufferMaxThreshold)
)

// GetDocBuffer retrieves a ByteBuffer from the default pack-output pool.
func GetDocBuffer() *ByteBuffer {
	return docPool.Get()
}

// PutDocBuffer returns a ByteBuffer to the default pack-output pool.
func PutDocBuffer(bb *ByteBuffer) {
	docPool.Put(bb)
}

// GetReadBuffer retrieves a ByteBuffer from the default streaming rolling
// buffer pool.
func GetReadBuffer() *ByteBuffer {
	return readPool.Get()
}

// PutReadBuffer returns a ByteBuffer to the default streaming rolling
// buffer pool.
func PutReadBuffer(bb *ByteBuffer) {
	readPool.Put(bb)
}
