package disk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/vvka-141/memvfs/internal/index"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// FS implements vfs.FileSystem over the OS filesystem below a root
// directory. Both "/" and "." map onto the root; drive and UNC paths, and
// relative paths climbing above ".", are rejected.
type FS struct {
	root  string
	order *index.Orderer
}

// Options configures a disk filesystem.
type Options struct {
	// Order is applied to every listing. Seed drives OrderShuffled.
	Order vfs.ListingOrder
	Seed  uint64
}

// New creates a filesystem rooted at the directory root.
func New(root string, opts Options) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}
	return &FS{root: abs, order: index.NewOrderer(opts.Order, opts.Seed)}, nil
}

// Root returns the absolute OS path of the root directory.
func (d *FS) Root() string { return d.root }

// resolve maps p onto an OS path below the root.
func (d *FS) resolve(op string, p *vpath.Path) (string, error) {
	if p == nil {
		return "", &vfs.PathError{Op: op, Path: "<nil>", Err: vfs.ErrInvalidArgument}
	}
	switch p.Head().Kind {
	case vpath.HeadRoot, vpath.HeadCurrent:
	default:
		return "", pathErr(op, p, fmt.Errorf("%w: %s paths are outside the disk root", vfs.ErrInvalidArgument, p.Head().Kind))
	}
	elems := p.Elements()
	if slices.Contains(elems, "..") {
		return "", pathErr(op, p, fmt.Errorf("%w: path climbs above the disk root", vfs.ErrInvalidArgument))
	}
	return filepath.Join(append([]string{d.root}, elems...)...), nil
}

func (d *FS) kind(p *vpath.Path) vfs.Kind {
	name, err := d.resolve("stat", p)
	if err != nil {
		return vfs.KindAbsent
	}
	info, err := os.Stat(name)
	switch {
	case err != nil:
		return vfs.KindAbsent
	case info.IsDir():
		return vfs.KindDirectory
	case info.Mode().IsRegular():
		return vfs.KindFile
	default:
		return vfs.KindAbsent
	}
}

func (d *FS) FileExists(p *vpath.Path) bool { return d.kind(p) == vfs.KindFile }

func (d *FS) DirExists(p *vpath.Path) bool { return d.kind(p) == vfs.KindDirectory }

// requireParent checks that the parent of p is a directory.
func (d *FS) requireParent(op string, p *vpath.Path) error {
	if p.Len() == 0 {
		return pathErr(op, p, fmt.Errorf("%w: the root cannot be a file", vfs.ErrInvalidArgument))
	}
	if !d.DirExists(p.Parent()) {
		return pathErr(op, p, vfs.ErrParentMissing)
	}
	return nil
}

func (d *FS) CreateFile(p *vpath.Path) error {
	name, err := d.resolve("create file", p)
	if err != nil {
		return err
	}
	if d.kind(p) == vfs.KindDirectory {
		return &vfs.ConflictError{Op: "create file", Path: p.String(), Found: vfs.KindDirectory}
	}
	if err := d.requireParent("create file", p); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return pathErr("create file", p, err)
	}
	return f.Close()
}

func (d *FS) CreateDir(p *vpath.Path) error {
	name, err := d.resolve("create dir", p)
	if err != nil {
		return err
	}
	if d.DirExists(p) {
		return pathErr("create dir", p, vfs.ErrDuplicate)
	}
	for q := p; q != nil && !d.DirExists(q); q = q.Parent() {
		if d.FileExists(q) {
			return &vfs.ConflictError{Op: "create dir", Path: q.String(), Found: vfs.KindFile}
		}
	}
	if err := os.MkdirAll(name, 0o755); err != nil {
		return pathErr("create dir", p, err)
	}
	return nil
}

func (d *FS) DeleteFile(p *vpath.Path) error {
	name, err := d.resolve("delete file", p)
	if err != nil {
		return err
	}
	if !d.FileExists(p) {
		return pathErr("delete file", p, vfs.ErrNotFound)
	}
	return mapErr("delete file", p, os.Remove(name))
}

func (d *FS) DeleteDir(p *vpath.Path) error {
	name, err := d.resolve("delete dir", p)
	if err != nil {
		return err
	}
	if p.Len() == 0 {
		return pathErr("delete dir", p, fmt.Errorf("%w: the root cannot be deleted", vfs.ErrInvalidArgument))
	}
	if !d.DirExists(p) {
		return pathErr("delete dir", p, vfs.ErrNotFound)
	}
	entries, err := os.ReadDir(name)
	if err != nil {
		return pathErr("delete dir", p, err)
	}
	if len(entries) > 0 {
		return pathErr("delete dir", p, vfs.ErrNotEmpty)
	}
	return mapErr("delete dir", p, os.Remove(name))
}

func (d *FS) MoveFile(src, dst *vpath.Path) error {
	from, err := d.resolve("move file", src)
	if err != nil {
		return err
	}
	to, err := d.resolve("move file", dst)
	if err != nil {
		return err
	}
	if !d.FileExists(src) {
		return pathErr("move file", src, vfs.ErrNotFound)
	}
	if d.DirExists(dst) {
		return &vfs.ConflictError{Op: "move file", Path: dst.String(), Found: vfs.KindDirectory}
	}
	if err := d.requireParent("move file", dst); err != nil {
		return err
	}
	return mapErr("move file", src, os.Rename(from, to))
}

func (d *FS) MoveDir(src, dst *vpath.Path) error {
	from, err := d.resolve("move dir", src)
	if err != nil {
		return err
	}
	to, err := d.resolve("move dir", dst)
	if err != nil {
		return err
	}
	if src.Len() == 0 {
		return pathErr("move dir", src, fmt.Errorf("%w: the root cannot be moved", vfs.ErrInvalidArgument))
	}
	if !d.DirExists(src) {
		return pathErr("move dir", src, vfs.ErrNotFound)
	}
	if from == to {
		return nil
	}
	if strings.HasPrefix(to, from+string(filepath.Separator)) {
		return pathErr("move dir", dst, fmt.Errorf("%w: destination is inside %s", vfs.ErrInvalidArgument, src))
	}
	switch d.kind(dst) {
	case vfs.KindDirectory:
		return pathErr("move dir", dst, vfs.ErrDuplicate)
	case vfs.KindFile:
		return &vfs.ConflictError{Op: "move dir", Path: dst.String(), Found: vfs.KindFile}
	}
	if err := d.requireParent("move dir", dst); err != nil {
		return err
	}
	return mapErr("move dir", src, os.Rename(from, to))
}

func (d *FS) List(p *vpath.Path) (vfs.Listing, error) {
	name, err := d.resolve("list", p)
	if err != nil {
		return vfs.Listing{}, err
	}
	if !d.DirExists(p) {
		return vfs.Listing{}, pathErr("list", p, vfs.ErrNotFound)
	}
	entries, err := os.ReadDir(name)
	if err != nil {
		return vfs.Listing{}, pathErr("list", p, err)
	}

	dirs, files := []string{}, []string{}
	for _, e := range entries {
		switch {
		case e.IsDir():
			dirs = append(dirs, e.Name())
		case e.Type().IsRegular():
			files = append(files, e.Name())
		}
	}
	return vfs.Listing{Dirs: d.order.Apply(dirs), Files: d.order.Apply(files)}, nil
}

func (d *FS) OpenRead(p *vpath.Path) (io.ReadCloser, error) {
	f, err := d.openFile("open", p, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *FS) OpenWrite(p *vpath.Path, mode vfs.WriteMode) (io.WriteCloser, error) {
	flag, err := writeFlag(mode)
	if err != nil {
		return nil, err
	}
	f, err := d.openFile("open", p, os.O_WRONLY|flag)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *FS) OpenReadChannel(p *vpath.Path) (vfs.Channel, error) {
	f, err := d.openFile("open", p, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return &Channel{f: f}, nil
}

func (d *FS) OpenWriteChannel(p *vpath.Path, mode vfs.WriteMode) (vfs.Channel, error) {
	flag, err := writeFlag(mode)
	if err != nil {
		return nil, err
	}
	f, err := d.openFile("open", p, os.O_RDWR|flag)
	if err != nil {
		return nil, err
	}
	return &Channel{f: f, writable: true}, nil
}

func writeFlag(mode vfs.WriteMode) (int, error) {
	switch mode {
	case vfs.WriteOverwrite:
		return os.O_CREATE | os.O_TRUNC, nil
	case vfs.WriteAppend:
		return os.O_CREATE | os.O_APPEND, nil
	default:
		return 0, fmt.Errorf("%w: write mode %d", vfs.ErrInvalidArgument, mode)
	}
}

func (d *FS) openFile(op string, p *vpath.Path, flag int) (*os.File, error) {
	name, err := d.resolve(op, p)
	if err != nil {
		return nil, err
	}
	if flag&os.O_CREATE != 0 {
		if d.DirExists(p) {
			return nil, &vfs.ConflictError{Op: op, Path: p.String(), Found: vfs.KindDirectory}
		}
		if err := d.requireParent(op, p); err != nil {
			return nil, err
		}
	} else if !d.FileExists(p) {
		return nil, pathErr(op, p, vfs.ErrNotFound)
	}
	f, err := os.OpenFile(name, flag, 0o644)
	if err != nil {
		return nil, mapErr(op, p, err)
	}
	return f, nil
}

func (d *FS) stat(p *vpath.Path) (fs.FileInfo, error) {
	name, err := d.resolve("stat", p)
	if err != nil {
		return nil, err
	}
	if !d.FileExists(p) {
		return nil, pathErr("stat", p, vfs.ErrNotFound)
	}
	return os.Stat(name)
}

func (d *FS) FileLength(p *vpath.Path) (int64, error) {
	info, err := d.stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (d *FS) LastModified(p *vpath.Path) (time.Time, error) {
	info, err := d.stat(p)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (d *FS) PathString(p *vpath.Path, sep vpath.Separator) string { return p.Format(sep) }

func (d *FS) Compare(a, b *vpath.Path) int { return a.Compare(b) }

func (d *FS) Equal(a, b *vpath.Path) bool { return a.Equal(b) }

func (d *FS) Hash(p *vpath.Path) uint64 { return p.Hash() }

func pathErr(op string, p *vpath.Path, err error) error {
	return &vfs.PathError{Op: op, Path: p.String(), Err: err}
}

// mapErr translates OS errors for p into the engine's sentinels.
func mapErr(op string, p *vpath.Path, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return pathErr(op, p, fmt.Errorf("%w: %v", vfs.ErrNotFound, err))
	case errors.Is(err, fs.ErrExist):
		return pathErr(op, p, fmt.Errorf("%w: %v", vfs.ErrAlreadyExists, err))
	default:
		return pathErr(op, p, err)
	}
}

var _ vfs.FileSystem = (*FS)(nil)
