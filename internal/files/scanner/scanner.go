package scanner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"time"

	"github.com/vvka-141/memvfs/internal/checksum"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// FileMetadata describes one file found below a scan root.
type FileMetadata struct {
	// Location is the file's path in the scanned filesystem.
	Location *vpath.Path
	// Path is relative to the scan root, forward slashed, with a "./" prefix.
	Path      string
	Name      string
	Directory string
	Extension string
	// Depth counts the directories between the scan root and the file.
	Depth       int
	SizeBytes   int64
	ModifiedAt  time.Time
	Checksum    string
	ChecksumRaw string
}

// Scanner computes file metadata over any vfs.FileSystem.
// Scanner is safe for concurrent use as long as the calculator is, but the
// filesystem handed to Scan must not be mutated while the scan runs.
type Scanner struct {
	calculator checksum.Calculator
}

// New creates a scanner using calculator for checksums.
// Panics if calculator is nil.
func New(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{calculator: calculator}
}

// Calculator returns the checksum calculator in use.
func (s *Scanner) Calculator() checksum.Calculator { return s.calculator }

// Scan returns metadata for every file below root in ascending path order.
func (s *Scanner) Scan(fsys vfs.FileSystem, root *vpath.Path) ([]FileMetadata, error) {
	var files []FileMetadata
	err := Walk(fsys, root, func(p *vpath.Path, kind vfs.Kind) error {
		if kind != vfs.KindFile {
			return nil
		}
		meta, err := s.process(fsys, root, p)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", p, err)
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) process(fsys vfs.FileSystem, root, p *vpath.Path) (FileMetadata, error) {
	r, err := fsys.OpenRead(p)
	if err != nil {
		return FileMetadata{}, err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to read file: %w", err)
	}

	size, err := fsys.FileLength(p)
	if err != nil {
		return FileMetadata{}, err
	}
	modified, err := fsys.LastModified(p)
	if err != nil {
		return FileMetadata{}, err
	}

	meta := FileMetadata{
		Location:    p,
		Path:        "./",
		Directory:   "./",
		Name:        p.Name(),
		Extension:   path.Ext(p.Name()),
		SizeBytes:   size,
		ModifiedAt:  modified,
		Checksum:    s.calculator.CalculateNormalized(data),
		ChecksumRaw: s.calculator.CalculateRaw(data),
	}
	if p.Len() > root.Len() {
		rel, err := p.Subpath(root.Len(), p.Len())
		if err != nil {
			return FileMetadata{}, err
		}
		meta.Path += rel.String()
		meta.Depth = rel.Len() - 1
		if dir := rel.Parent(); dir.Len() > 0 {
			meta.Directory += dir.String() + "/"
		}
	}
	return meta, nil
}

// WalkFunc is called for root and for every entry below it. Returning
// fs.SkipDir from a directory skips its contents; from a file it skips the
// remaining entries of the file's directory. fs.SkipAll stops the walk.
type WalkFunc func(p *vpath.Path, kind vfs.Kind) error

// Walk visits root and its subtree depth-first, entries of each directory in
// ascending name order whatever the filesystem's listing order is. A root
// that is a file is visited alone.
func Walk(fsys vfs.FileSystem, root *vpath.Path, fn WalkFunc) error {
	var err error
	switch {
	case fsys.DirExists(root):
		err = walkDir(fsys, root, fn)
	case fsys.FileExists(root):
		err = fn(root, vfs.KindFile)
	default:
		return &vfs.PathError{Op: "walk", Path: root.String(), Err: vfs.ErrNotFound}
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func walkDir(fsys vfs.FileSystem, dir *vpath.Path, fn WalkFunc) error {
	if err := fn(dir, vfs.KindDirectory); err != nil {
		return err
	}

	l, err := fsys.List(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(l.Dirs)+len(l.Files))
	names = append(names, l.Dirs...)
	names = append(names, l.Files...)
	slices.Sort(names)

	for _, name := range names {
		child := dir.Child(name)
		if fsys.DirExists(child) {
			err = walkDir(fsys, child, fn)
			if errors.Is(err, fs.SkipDir) {
				continue
			}
		} else {
			err = fn(child, vfs.KindFile)
			if errors.Is(err, fs.SkipDir) {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
