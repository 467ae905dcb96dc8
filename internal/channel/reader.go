package channel

import (
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Reader is a read-only random access channel over a content buffer. It owns
// its cursor but not the buffer.
type Reader struct {
	buf    *content.ByteBuffer
	pos    int64
	closed bool
}

// NewReader returns a read-only channel positioned at 0.
func NewReader(buf *content.ByteBuffer) *Reader {
	return &Reader{buf: buf}
}

// ForContent returns a read-only channel over a file's content.
func ForContent(fc *content.FileContent) *Reader {
	return NewReader(fc.Buffer())
}

// Read reads from the cursor. An empty p returns 0 without checking for end
// of data; a cursor at or past the end returns io.EOF without moving.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, vfs.ErrClosed
	}
	n, err := r.readAt(p, r.pos)
	r.pos += int64(n)
	return n, err
}

// ReadAt reads at off without moving the cursor. It follows io.ReaderAt and
// returns io.EOF alongside a short count.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if r.closed {
		return 0, vfs.ErrClosed
	}
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", vfs.ErrInvalidArgument, off)
	}
	n, err := r.readAt(p, off)
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

func (r *Reader) readAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= int64(r.buf.Len()) {
		return 0, io.EOF
	}
	return r.buf.CopyOut(p, off), nil
}

// ReadBuffers fills each buffer in turn, stopping once the cursor reaches the
// end of data.
func (r *Reader) ReadBuffers(bufs [][]byte) (int64, error) {
	if r.closed {
		return 0, vfs.ErrClosed
	}
	var total int64
	wanted := false
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		wanted = true
		if r.pos >= r.Size() {
			break
		}
		n, err := r.Read(b)
		total += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, err
		}
	}
	if total == 0 && wanted && r.pos >= r.Size() {
		return 0, io.EOF
	}
	return total, nil
}

// Position returns the cursor.
func (r *Reader) Position() int64 { return r.pos }

// SetPosition moves the cursor, including past the end of data.
func (r *Reader) SetPosition(pos int64) error {
	if r.closed {
		return vfs.ErrClosed
	}
	if pos < 0 {
		return fmt.Errorf("%w: negative position %d", vfs.ErrInvalidArgument, pos)
	}
	r.pos = pos
	return nil
}

// Size returns the current size of the buffer.
func (r *Reader) Size() int64 { return int64(r.buf.Len()) }

// TransferTo copies min(count, size-pos) bytes into w, independent of the cursor.
func (r *Reader) TransferTo(pos, count int64, w io.Writer) (int64, error) {
	if r.closed {
		return 0, vfs.ErrClosed
	}
	if pos < 0 || count < 0 {
		return 0, fmt.Errorf("%w: transfer of %d bytes at %d", vfs.ErrInvalidArgument, count, pos)
	}
	return r.buf.WriteRangeTo(w, pos, count)
}

// Write fails: the channel is read-only.
func (r *Reader) Write([]byte) (int, error) { return 0, vfs.ErrNonWritable }

// Truncate fails: the channel is read-only.
func (r *Reader) Truncate(int64) error { return vfs.ErrNonWritable }

// TransferFrom fails: the channel is read-only.
func (r *Reader) TransferFrom(io.Reader, int64, int64) (int64, error) {
	return 0, vfs.ErrNonWritable
}

// Map fails for writable modes with vfs.ErrNonWritable. A read-only mapping
// of a heap buffer cannot be handed out either, so it fails with
// vfs.ErrUnsupported.
func (r *Reader) Map(mode vfs.MapMode, _, _ int64) (vfs.Mapping, error) {
	if mode != vfs.MapReadOnly {
		return nil, vfs.ErrNonWritable
	}
	return nil, vfs.ErrUnsupported
}

// Lock grants shared locks, which are meaningless for a single-owner buffer.
// Exclusive locks need write access.
func (r *Reader) Lock(_, _ int64, shared bool) (io.Closer, error) {
	if !shared {
		return nil, vfs.ErrNonWritable
	}
	return nopLock{}, nil
}

// Close marks the channel closed. The buffer is left untouched.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

type nopLock struct{}

func (nopLock) Close() error { return nil }

var _ vfs.Channel = (*Reader)(nil)
