package memfs

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/memvfs/internal/channel"
	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/internal/index"
	"github.com/vvka-141/memvfs/internal/logging"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// Options configures an in-memory filesystem.
type Options struct {
	// Strategy selects the directory index data structure.
	Strategy vfs.IndexStrategy

	// Order is applied to every listing. Seed drives OrderShuffled.
	Order vfs.ListingOrder
	Seed  uint64

	// FoldCase makes path identity case-insensitive.
	FoldCase bool

	// Factory creates file content records. Nil uses content.DefaultFactory().
	Factory content.Factory

	// Logger receives a Verbose line per mutation. Nil discards.
	Logger vfs.Logger
}

// FS is an in-memory filesystem composed of a directory index and a content
// factory. It is not safe for concurrent use.
type FS struct {
	idx index.Index
	log vfs.Logger
}

// New creates an empty filesystem holding only the "/" and "." roots.
func New(opts Options) (*FS, error) {
	idx, err := index.New(opts.Strategy, index.Options{
		Order:    opts.Order,
		Seed:     opts.Seed,
		FoldCase: opts.FoldCase,
		Factory:  opts.Factory,
	})
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNullLogger()
	}
	return &FS{idx: idx, log: log}, nil
}

// Default creates an empty filesystem on the hash index with no listing order.
func Default() *FS {
	fsys, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return fsys
}

func (f *FS) FileExists(p *vpath.Path) bool { return f.idx.FileExists(p) }

func (f *FS) DirExists(p *vpath.Path) bool { return f.idx.DirExists(p) }

// Kind classifies p as absent, file or directory.
func (f *FS) Kind(p *vpath.Path) vfs.Kind { return f.idx.Kind(p) }

func (f *FS) CreateFile(p *vpath.Path) error {
	if _, err := f.idx.CreateFile(p); err != nil {
		return err
	}
	f.log.Verbose("create file %s", p)
	return nil
}

func (f *FS) CreateDir(p *vpath.Path) error {
	if err := f.idx.CreateDir(p); err != nil {
		return err
	}
	f.log.Verbose("create dir %s", p)
	return nil
}

func (f *FS) DeleteFile(p *vpath.Path) error {
	if err := f.idx.DeleteFile(p); err != nil {
		return err
	}
	f.log.Verbose("delete file %s", p)
	return nil
}

func (f *FS) DeleteDir(p *vpath.Path) error {
	if err := f.idx.DeleteDir(p); err != nil {
		return err
	}
	f.log.Verbose("delete dir %s", p)
	return nil
}

func (f *FS) MoveFile(src, dst *vpath.Path) error {
	if err := f.idx.MoveFile(src, dst); err != nil {
		return err
	}
	f.log.Verbose("move file %s -> %s", src, dst)
	return nil
}

func (f *FS) MoveDir(src, dst *vpath.Path) error {
	if err := f.idx.MoveDir(src, dst); err != nil {
		return err
	}
	f.log.Verbose("move dir %s -> %s", src, dst)
	return nil
}

func (f *FS) List(p *vpath.Path) (vfs.Listing, error) { return f.idx.List(p) }

func (f *FS) OpenRead(p *vpath.Path) (io.ReadCloser, error) {
	fc, err := f.idx.File(p)
	if err != nil {
		return nil, err
	}
	return fc.InputStream(), nil
}

func (f *FS) OpenWrite(p *vpath.Path, mode vfs.WriteMode) (io.WriteCloser, error) {
	fc, err := f.writable(p, mode)
	if err != nil {
		return nil, err
	}
	return fc.OutputStream(), nil
}

func (f *FS) OpenReadChannel(p *vpath.Path) (vfs.Channel, error) {
	fc, err := f.idx.File(p)
	if err != nil {
		return nil, err
	}
	return channel.ForContent(fc), nil
}

func (f *FS) OpenWriteChannel(p *vpath.Path, mode vfs.WriteMode) (vfs.Channel, error) {
	fc, err := f.writable(p, mode)
	if err != nil {
		return nil, err
	}
	fc.Touch()
	return channel.NewAppender(fc.Buffer()), nil
}

// writable resolves the content record a writer binds to. Overwrite gets a
// fresh record; append reuses the existing one when there is a file.
func (f *FS) writable(p *vpath.Path, mode vfs.WriteMode) (*content.FileContent, error) {
	switch mode {
	case vfs.WriteOverwrite:
	case vfs.WriteAppend:
		if f.idx.FileExists(p) {
			return f.idx.File(p)
		}
	default:
		return nil, fmt.Errorf("%w: write mode %d", vfs.ErrInvalidArgument, mode)
	}
	fc, err := f.idx.CreateFile(p)
	if err != nil {
		return nil, err
	}
	f.log.Verbose("create file %s", p)
	return fc, nil
}

func (f *FS) FileLength(p *vpath.Path) (int64, error) {
	fc, err := f.idx.File(p)
	if err != nil {
		return 0, err
	}
	return fc.Len(), nil
}

func (f *FS) LastModified(p *vpath.Path) (time.Time, error) {
	fc, err := f.idx.File(p)
	if err != nil {
		return time.Time{}, err
	}
	return fc.LastModified(), nil
}

// SetLastModified overrides the last-modified time of a file.
func (f *FS) SetLastModified(p *vpath.Path, t time.Time) error {
	fc, err := f.idx.File(p)
	if err != nil {
		return err
	}
	fc.SetLastModified(t)
	return nil
}

func (f *FS) PathString(p *vpath.Path, sep vpath.Separator) string { return p.Format(sep) }

func (f *FS) Compare(a, b *vpath.Path) int { return f.idx.Compare(a, b) }

func (f *FS) Equal(a, b *vpath.Path) bool { return f.idx.Equal(a, b) }

func (f *FS) Hash(p *vpath.Path) uint64 { return f.idx.Hash(p) }

// ReadFile returns a copy of a file's content.
func (f *FS) ReadFile(p *vpath.Path) ([]byte, error) {
	fc, err := f.idx.File(p)
	if err != nil {
		return nil, err
	}
	return fc.Buffer().Bytes(), nil
}

// WriteFile writes data to a file, creating it if needed. The parent
// directory must exist.
func (f *FS) WriteFile(p *vpath.Path, data []byte, mode vfs.WriteMode) error {
	w, err := f.OpenWrite(p, mode)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// TempDir creates a uniquely named directory below /tmp and returns it.
func (f *FS) TempDir() (*vpath.Path, error) {
	p := vpath.Root().Child(vfs.TempDirName).Child(uuid.NewString())
	if err := f.CreateDir(p); err != nil {
		return nil, err
	}
	return p, nil
}

var _ vfs.FileSystem = (*FS)(nil)
