package index

import (
	"fmt"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// Index is the structural map of which paths exist and as which kind.
//
// Every path is exactly one of absent, file or directory. The absolute root
// "/" and the current directory "." always exist as directories. Drive and
// UNC origins come into existence the first time a directory is created
// beneath them.
//
// Implementations are not safe for concurrent use.
type Index interface {
	// FileExists reports whether p is a file.
	FileExists(p *vpath.Path) bool

	// DirExists reports whether p is a directory.
	DirExists(p *vpath.Path) bool

	// Kind classifies p.
	Kind(p *vpath.Path) vfs.Kind

	// File returns the content record of the file at p.
	File(p *vpath.Path) (*content.FileContent, error)

	// CreateFile creates an empty file and returns its content record. The
	// parent directory must already exist. An existing file at p gets a
	// fresh record, discarding the old one.
	CreateFile(p *vpath.Path) (*content.FileContent, error)

	// CreateDir creates p and every missing ancestor.
	CreateDir(p *vpath.Path) error

	// DeleteFile removes the file at p.
	DeleteFile(p *vpath.Path) error

	// DeleteDir removes the empty directory at p.
	DeleteDir(p *vpath.Path) error

	// MoveFile relocates a file with its content record. An existing file at
	// dst is replaced.
	MoveFile(src, dst *vpath.Path) error

	// MoveDir relocates a directory and its subtree. dst must not exist.
	MoveDir(src, dst *vpath.Path) error

	// List returns the names of the direct children of p, each list passed
	// through the index's listing order.
	List(p *vpath.Path) (vfs.Listing, error)

	// Compare, Equal and Hash apply the index's path identity.
	Compare(a, b *vpath.Path) int
	Equal(a, b *vpath.Path) bool
	Hash(p *vpath.Path) uint64
}

// Options configures a new index.
type Options struct {
	// Order is applied to every listing.
	Order vfs.ListingOrder

	// Seed drives OrderShuffled. Zero seeds from the clock.
	Seed uint64

	// FoldCase makes path identity case-insensitive. Listings keep the
	// names as they were first created.
	FoldCase bool

	// Factory creates file content records. Nil uses content.DefaultFactory().
	Factory content.Factory
}

// New returns an index built on the given strategy.
func New(strategy vfs.IndexStrategy, opts Options) (Index, error) {
	h := newHelper(opts)
	switch strategy {
	case vfs.IndexHash:
		return newHashIndex(h), nil
	case vfs.IndexTree:
		return newTreeIndex(h), nil
	default:
		return nil, fmt.Errorf("index strategy %s: %w", strategy, vfs.ErrInvalidConfig)
	}
}
