package vfs

import (
	"io"
	"time"

	"github.com/vvka-141/memvfs/pkg/vpath"
)

// FileSystem is the capability surface every backend exposes.
// Implementations are not required to be safe for concurrent use; callers
// serialize access to a single instance.
type FileSystem interface {
	// FileExists reports whether p is a file. It never fails.
	FileExists(p *vpath.Path) bool

	// DirExists reports whether p is a directory. It never fails.
	DirExists(p *vpath.Path) bool

	// CreateFile creates an empty file. The parent directory must exist.
	// An existing file at p is replaced.
	CreateFile(p *vpath.Path) error

	// CreateDir creates a directory and every missing ancestor.
	CreateDir(p *vpath.Path) error

	// DeleteFile removes a file.
	DeleteFile(p *vpath.Path) error

	// DeleteDir removes an empty directory.
	DeleteDir(p *vpath.Path) error

	// MoveFile relocates a file, preserving content and last-modified time.
	// The destination parent must exist.
	MoveFile(src, dst *vpath.Path) error

	// MoveDir relocates a directory with its whole subtree.
	// The destination parent must exist and the destination must not.
	MoveDir(src, dst *vpath.Path) error

	// List returns the direct children of a directory.
	List(p *vpath.Path) (Listing, error)

	// OpenRead opens a forward-only reader over a file.
	OpenRead(p *vpath.Path) (io.ReadCloser, error)

	// OpenWrite opens a file for writing, creating it if it does not exist.
	OpenWrite(p *vpath.Path, mode WriteMode) (io.WriteCloser, error)

	// OpenReadChannel opens a read-only random access channel over a file.
	OpenReadChannel(p *vpath.Path) (Channel, error)

	// OpenWriteChannel opens a write channel over a file, creating it if it does not exist.
	OpenWriteChannel(p *vpath.Path, mode WriteMode) (Channel, error)

	// FileLength returns the size of a file in bytes.
	FileLength(p *vpath.Path) (int64, error)

	// LastModified returns the last-modified time of a file.
	LastModified(p *vpath.Path) (time.Time, error)

	// PathString renders p the way this backend displays paths.
	PathString(p *vpath.Path, sep vpath.Separator) string

	// Compare, Equal and Hash apply this backend's notion of path identity,
	// which may differ from vpath's own (for example case-insensitive).
	Compare(a, b *vpath.Path) int
	Equal(a, b *vpath.Path) bool
	Hash(p *vpath.Path) uint64
}

// Channel is a random access view over one file's content.
type Channel interface {
	io.Reader
	io.Writer
	io.ReaderAt
	io.Closer

	// Position returns the cursor used by Read and Write.
	Position() int64

	// SetPosition moves the cursor. Positions past the end of data are allowed.
	SetPosition(pos int64) error

	// Size returns the current size of the underlying content.
	Size() int64

	// Truncate cuts the content to size bytes.
	Truncate(size int64) error

	// ReadBuffers fills each buffer in turn from the cursor.
	ReadBuffers(bufs [][]byte) (int64, error)

	// TransferTo copies up to count bytes starting at pos into w without
	// moving the cursor.
	TransferTo(pos, count int64, w io.Writer) (int64, error)

	// TransferFrom copies up to count bytes from r into the content at pos.
	TransferFrom(r io.Reader, pos, count int64) (int64, error)

	// Map maps a region of the content into memory.
	Map(mode MapMode, pos, size int64) (Mapping, error)

	// Lock acquires a lock over a region; the returned Closer releases it.
	Lock(pos, size int64, shared bool) (io.Closer, error)
}

// Mapping is a mapped view of a file region that must be released.
type Mapping interface {
	Bytes() []byte
	Release() error
}
