package channel

import (
	"io"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Appender is a write-only channel that appends to a content buffer. It only
// exists to capture streamed output: every operation other than Write and
// Close is a no-op returning a zero result.
type Appender struct {
	buf    *content.ByteBuffer
	closed bool
}

// NewAppender returns a write-only channel over buf.
func NewAppender(buf *content.ByteBuffer) *Appender {
	return &Appender{buf: buf}
}

// Write appends p to the buffer.
func (a *Appender) Write(p []byte) (int, error) {
	if a.closed {
		return 0, vfs.ErrClosed
	}
	return a.buf.Write(p)
}

// Close marks the channel closed.
func (a *Appender) Close() error {
	a.closed = true
	return nil
}

func (a *Appender) Read([]byte) (int, error) {
	return 0, nil
}

func (a *Appender) ReadAt([]byte, int64) (int, error) {
	return 0, nil
}

func (a *Appender) ReadBuffers([][]byte) (int64, error) {
	return 0, nil
}

func (a *Appender) Position() int64 {
	return 0
}

func (a *Appender) SetPosition(int64) error {
	return nil
}

func (a *Appender) Size() int64 {
	return 0
}

func (a *Appender) Truncate(int64) error {
	return nil
}

func (a *Appender) TransferTo(int64, int64, io.Writer) (int64, error) {
	return 0, nil
}

func (a *Appender) TransferFrom(io.Reader, int64, int64) (int64, error) {
	return 0, nil
}

func (a *Appender) Map(vfs.MapMode, int64, int64) (vfs.Mapping, error) {
	return nil, nil
}

func (a *Appender) Lock(int64, int64, bool) (io.Closer, error) {
	return nil, nil
}

var _ vfs.Channel = (*Appender)(nil)
