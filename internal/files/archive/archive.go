package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/internal/logging"
	"github.com/vvka-141/memvfs/internal/memfs"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// Options configures how an archive is loaded.
type Options struct {
	// Memory configures the filesystem the entries are loaded into.
	Memory memfs.Options

	// EnumerateOnly records entry names and times without payloads. Files
	// get starved content buffers and a length of zero.
	EnumerateOnly bool

	// Logger receives load statistics and skipped entries. Nil discards.
	Logger vfs.Logger
}

// Open loads the archive at name, inferring its format from the file name.
func Open(name string, opts Options) (*memfs.FS, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	return Load(f, info.Size(), format, opts)
}

// Load reads every entry of an archive into a new in-memory filesystem
// rooted at "/". Ancestors implied by entry names are created as
// directories.
func Load(ra io.ReaderAt, size int64, format Format, opts Options) (*memfs.FS, error) {
	l, err := newLoader(opts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatZip:
		err = l.loadZip(ra, size)
	case FormatTar:
		err = l.loadTar(io.NewSectionReader(ra, 0, size))
	case FormatTarGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(io.NewSectionReader(ra, 0, size))
		if err == nil {
			defer zr.Close()
			err = l.loadTar(zr)
		}
	case FormatTarZstd:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(io.NewSectionReader(ra, 0, size))
		if err == nil {
			defer zr.Close()
			err = l.loadTar(zr)
		}
	default:
		err = fmt.Errorf("%w: archive format %s", vfs.ErrUnsupported, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s archive: %w", format, err)
	}

	l.log.Verbose("loaded %d directories and %d files", l.dirs, l.files)
	return l.fs, nil
}

// LoadFS copies the tree below root of fsys into a new in-memory
// filesystem. root becomes "/".
func LoadFS(fsys fs.FS, root string, opts Options) (*memfs.FS, error) {
	l, err := newLoader(opts)
	if err != nil {
		return nil, err
	}

	root = path.Clean(strings.ReplaceAll(root, `\`, "/"))
	err = fs.WalkDir(fsys, root, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name == root {
			return nil
		}

		rel := strings.TrimPrefix(name, root+"/")
		if root == "." {
			rel = name
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", name, err)
		}

		switch {
		case entry.IsDir():
			return l.addDir(rel)
		case info.Mode().IsRegular():
			f, err := fsys.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			return l.addFile(rel, info.ModTime(), f)
		default:
			l.log.Info("skip %s: unsupported file mode %s", name, info.Mode())
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", root, err)
	}

	l.log.Verbose("loaded %d directories and %d files from %s", l.dirs, l.files, root)
	return l.fs, nil
}

type loader struct {
	fs        *memfs.FS
	log       vfs.Logger
	enumerate bool
	dirs      int
	files     int
}

func newLoader(opts Options) (*loader, error) {
	mem := opts.Memory
	if opts.EnumerateOnly {
		mem.Factory = content.EnumerationFactory()
	}
	fsys, err := memfs.New(mem)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewNullLogger()
	}
	return &loader{fs: fsys, log: log, enumerate: opts.EnumerateOnly}, nil
}

func (l *loader) loadZip(ra io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			if err := l.addDir(f.Name); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			l.log.Info("skip %s: unsupported file mode %s", f.Name, f.Mode())
			continue
		}
		if err := l.addZipFile(f); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) addZipFile(f *zip.File) error {
	if l.enumerate {
		return l.addFile(f.Name, f.Modified, nil)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	return l.addFile(f.Name, f.Modified, rc)
}

func (l *loader) loadTar(r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			err = l.addDir(hdr.Name)
		case tar.TypeReg:
			err = l.addFile(hdr.Name, hdr.ModTime, tr)
		default:
			l.log.Info("skip %s: unsupported entry type %q", hdr.Name, hdr.Typeflag)
		}
		if err != nil {
			return err
		}
	}
}

// entryPath maps an entry name onto the root. Names are always taken as
// relative to the archive root; names climbing out of it are rejected.
func entryPath(name string) (*vpath.Path, error) {
	rel := strings.TrimLeft(name, `/\`)
	if rel == "" {
		return vpath.Root(), nil
	}
	p, err := vpath.Parse("/" + rel)
	if err != nil {
		return nil, fmt.Errorf("unsafe entry name %q: %w", name, err)
	}
	return p, nil
}

func (l *loader) addDir(name string) error {
	p, err := entryPath(name)
	if err != nil {
		return err
	}
	if l.fs.DirExists(p) {
		return nil
	}
	if err := l.fs.CreateDir(p); err != nil {
		return err
	}
	l.dirs++
	return nil
}

// addFile creates the file and its missing ancestors. A nil r leaves the
// content empty.
func (l *loader) addFile(name string, modified time.Time, r io.Reader) error {
	p, err := entryPath(name)
	if err != nil {
		return err
	}
	if p.Len() == 0 {
		return fmt.Errorf("%w: entry %q names the root", vfs.ErrInvalidArgument, name)
	}
	if parent := p.Parent(); !l.fs.DirExists(parent) {
		if err := l.fs.CreateDir(parent); err != nil {
			return err
		}
	}

	if l.enumerate || r == nil {
		err = l.fs.CreateFile(p)
	} else {
		err = l.copyIn(p, r)
	}
	if err != nil {
		return err
	}
	if !modified.IsZero() {
		if err := l.fs.SetLastModified(p, modified); err != nil {
			return err
		}
	}
	l.files++
	return nil
}

func (l *loader) copyIn(p *vpath.Path, r io.Reader) error {
	w, err := l.fs.OpenWrite(p, vfs.WriteOverwrite)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("failed to read %s: %w", p, err)
	}
	return w.Close()
}
