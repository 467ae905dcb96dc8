package content

import (
	"io"
	"time"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// FileContent is the content record behind one file entry: a buffer plus its
// last-modified time. It is owned by exactly one directory index entry.
type FileContent struct {
	buf      *ByteBuffer
	modified time.Time
	now      func() time.Time
}

// NewFileContent wraps buf. now supplies timestamps; nil uses time.Now.
func NewFileContent(buf *ByteBuffer, now func() time.Time) *FileContent {
	if now == nil {
		now = time.Now
	}
	return &FileContent{buf: buf, modified: now(), now: now}
}

// Buffer returns the backing buffer.
func (f *FileContent) Buffer() *ByteBuffer { return f.buf }

// Len returns the content size in bytes.
func (f *FileContent) Len() int64 { return int64(f.buf.Len()) }

// LastModified returns the last-modified time.
func (f *FileContent) LastModified() time.Time { return f.modified }

// SetLastModified overrides the last-modified time.
func (f *FileContent) SetLastModified(t time.Time) { f.modified = t }

// Touch sets the last-modified time to now.
func (f *FileContent) Touch() { f.modified = f.now() }

// OutputStream returns a writer appending to the buffer. The last-modified
// time is bumped once, when the stream is opened.
func (f *FileContent) OutputStream() io.WriteCloser {
	f.Touch()
	return &outputStream{buf: f.buf}
}

// InputStream returns a forward-only reader over the live buffer. Bytes
// appended after opening are visible to it.
func (f *FileContent) InputStream() io.ReadCloser {
	return &inputStream{buf: f.buf}
}

type outputStream struct {
	buf    *ByteBuffer
	closed bool
}

func (s *outputStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, vfs.ErrClosed
	}
	return s.buf.Write(p)
}

func (s *outputStream) Close() error {
	s.closed = true
	return nil
}

type inputStream struct {
	buf    *ByteBuffer
	pos    int64
	closed bool
}

func (s *inputStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, vfs.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := s.buf.CopyOut(p, s.pos)
	if n == 0 {
		return 0, io.EOF
	}
	s.pos += int64(n)
	return n, nil
}

func (s *inputStream) Close() error {
	s.closed = true
	return nil
}
