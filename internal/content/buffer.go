package content

import (
	"errors"
	"io"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// minReadChunk is the spare capacity ensured before each read in ReadFrom.
const minReadChunk = 512

// ByteBuffer is a growable byte buffer. Appends land in a staging area that is
// flushed into the backing array once it reaches the flush threshold; reads
// observe staged bytes exactly as if they had been written straight through.
//
// ByteBuffer is not safe for concurrent use.
type ByteBuffer struct {
	data    []byte // committed bytes, len(data) is the committed size
	stage   []byte // pending appends, never longer than flushAt
	flushAt int
	growth  int // 0 doubles the capacity, >0 grows by a fixed increment
}

// NewByteBuffer creates an empty buffer.
// A growthIncrement of 0 selects doubling growth; a flushThreshold of 0
// disables staging.
func NewByteBuffer(initialCapacity, growthIncrement, flushThreshold int) *ByteBuffer {
	b := &ByteBuffer{
		data:    make([]byte, 0, max(initialCapacity, 0)),
		flushAt: max(flushThreshold, 0),
		growth:  max(growthIncrement, 0),
	}
	if b.flushAt > 0 {
		b.stage = make([]byte, 0, b.flushAt)
	}
	return b
}

// Len returns the number of bytes written.
func (b *ByteBuffer) Len() int { return len(b.data) + len(b.stage) }

// WriteByte appends a single byte.
func (b *ByteBuffer) WriteByte(c byte) error {
	if b.flushAt == 0 {
		b.grow(1)
		b.data = append(b.data, c)
		return nil
	}
	if len(b.stage) == b.flushAt {
		b.flush()
	}
	b.stage = append(b.stage, c)
	return nil
}

// Write appends p. It never fails.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	switch {
	case len(p) == 0:
	case b.flushAt == 0 || len(p) >= b.flushAt:
		b.flush()
		b.grow(len(p))
		b.data = append(b.data, p...)
	default:
		if len(b.stage)+len(p) > b.flushAt {
			b.flush()
		}
		b.stage = append(b.stage, p...)
	}
	return len(p), nil
}

// ReadFrom appends everything r yields until io.EOF and returns the count copied.
func (b *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	b.flush()
	var total int64
	for {
		b.grow(minReadChunk)
		n, err := r.Read(b.data[len(b.data):cap(b.data)])
		b.data = b.data[:len(b.data)+n]
		total += int64(n)
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// ByteAt returns the byte at index i.
func (b *ByteBuffer) ByteAt(i int) (byte, error) {
	if i < 0 || i >= b.Len() {
		return 0, &vfs.OutOfBoundsError{Index: int64(i), Size: int64(b.Len())}
	}
	if i < len(b.data) {
		return b.data[i], nil
	}
	return b.stage[i-len(b.data)], nil
}

// Bytes returns a copy of the content.
func (b *ByteBuffer) Bytes() []byte {
	b.flush()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// CopyOut copies the range [start, start+len(dst)) intersected with the
// available bytes into dst and returns the count copied. A range entirely
// past the end copies nothing.
func (b *ByteBuffer) CopyOut(dst []byte, start int64) int {
	b.flush()
	if start < 0 || start >= int64(len(b.data)) {
		return 0
	}
	return copy(dst, b.data[start:])
}

// WriteRangeTo writes the range [start, start+count) intersected with the
// available bytes to w.
func (b *ByteBuffer) WriteRangeTo(w io.Writer, start, count int64) (int64, error) {
	b.flush()
	size := int64(len(b.data))
	if start < 0 || count <= 0 || start >= size {
		return 0, nil
	}
	end := min(start+count, size)
	n, err := w.Write(b.data[start:end])
	return int64(n), err
}

// Truncate discards everything past size. Growing is not supported.
func (b *ByteBuffer) Truncate(size int) {
	b.flush()
	if size >= 0 && size < len(b.data) {
		b.data = b.data[:size]
	}
}

func (b *ByteBuffer) flush() {
	if len(b.stage) == 0 {
		return
	}
	b.grow(len(b.stage))
	b.data = append(b.data, b.stage...)
	b.stage = b.stage[:0]
}

// grow ensures room for extra more committed bytes.
func (b *ByteBuffer) grow(extra int) {
	need := len(b.data) + extra
	if need <= cap(b.data) {
		return
	}

	newCap := cap(b.data)
	if b.growth > 0 {
		steps := (need - newCap + b.growth - 1) / b.growth
		newCap += steps * b.growth
	} else {
		newCap = max(newCap*2, need)
	}

	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}
