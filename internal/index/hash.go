package index

import (
	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// dirContent is one directory of the hash index. Children are kept by name
// key and map to the full path they were created under.
type dirContent struct {
	dirs  *children[*vpath.Path]
	files *children[*vpath.Path]
}

func newDirContent() *dirContent {
	return &dirContent{
		dirs:  newChildren[*vpath.Path](),
		files: newChildren[*vpath.Path](),
	}
}

func (d *dirContent) empty() bool { return d.dirs.len() == 0 && d.files.len() == 0 }

type fileRecord struct {
	path    *vpath.Path
	content *content.FileContent
}

// hashIndex keeps two flat maps keyed by full path. Directory moves are a
// structural copy followed by a delete of the source, never a re-link.
type hashIndex struct {
	*helper
	dirs  map[string]*dirContent
	files map[string]*fileRecord
}

func newHashIndex(h *helper) *hashIndex {
	x := &hashIndex{
		helper: h,
		dirs:   make(map[string]*dirContent),
		files:  make(map[string]*fileRecord),
	}
	x.dirs[x.key(vpath.Root())] = newDirContent()
	x.dirs[x.key(vpath.Current())] = newDirContent()
	return x
}

func (x *hashIndex) FileExists(p *vpath.Path) bool { return x.Kind(p) == vfs.KindFile }

func (x *hashIndex) DirExists(p *vpath.Path) bool { return x.Kind(p) == vfs.KindDirectory }

func (x *hashIndex) Kind(p *vpath.Path) vfs.Kind {
	if p == nil {
		return vfs.KindAbsent
	}
	k := x.key(p)
	if _, ok := x.dirs[k]; ok {
		return vfs.KindDirectory
	}
	if _, ok := x.files[k]; ok {
		return vfs.KindFile
	}
	return vfs.KindAbsent
}

func (x *hashIndex) File(p *vpath.Path) (*content.FileContent, error) {
	if err := x.check(opOpen, p); err != nil {
		return nil, err
	}
	rec, ok := x.files[x.key(p)]
	if !ok {
		return nil, pathErr(opOpen, p, vfs.ErrNotFound)
	}
	return rec.content, nil
}

func (x *hashIndex) CreateFile(p *vpath.Path) (*content.FileContent, error) {
	if err := x.checkCreateFile(x, p); err != nil {
		return nil, err
	}
	fc := x.newContent()
	if rec, ok := x.files[x.key(p)]; ok {
		rec.content = fc
		return fc, nil
	}
	x.putFile(p, fc)
	return fc, nil
}

func (x *hashIndex) putFile(p *vpath.Path, fc *content.FileContent) {
	x.files[x.key(p)] = &fileRecord{path: p, content: fc}
	x.dirs[x.key(p.Parent())].files.put(x.nameKey(p.Name()), p)
}

func (x *hashIndex) CreateDir(p *vpath.Path) error {
	chain, err := x.missingDirs(x, p)
	if err != nil {
		return err
	}
	for _, d := range chain {
		x.putDir(d)
	}
	return nil
}

func (x *hashIndex) putDir(p *vpath.Path) *dirContent {
	d := newDirContent()
	x.dirs[x.key(p)] = d
	if parent := p.Parent(); parent != nil {
		x.dirs[x.key(parent)].dirs.put(x.nameKey(p.Name()), p)
	}
	return d
}

func (x *hashIndex) DeleteFile(p *vpath.Path) error {
	if err := x.checkDeleteFile(x, p); err != nil {
		return err
	}
	x.removeFile(p)
	return nil
}

func (x *hashIndex) removeFile(p *vpath.Path) {
	delete(x.files, x.key(p))
	x.dirs[x.key(p.Parent())].files.remove(x.nameKey(p.Name()))
}

func (x *hashIndex) DeleteDir(p *vpath.Path) error {
	if err := x.checkDeleteDir(x, p); err != nil {
		return err
	}
	if !x.dirs[x.key(p)].empty() {
		return pathErr(opDeleteDir, p, vfs.ErrNotEmpty)
	}
	x.removeDir(p)
	return nil
}

func (x *hashIndex) removeDir(p *vpath.Path) {
	delete(x.dirs, x.key(p))
	x.dirs[x.key(p.Parent())].dirs.remove(x.nameKey(p.Name()))
}

func (x *hashIndex) MoveFile(src, dst *vpath.Path) error {
	noop, err := x.checkMoveFile(x, src, dst)
	if err != nil || noop {
		return err
	}
	fc := x.files[x.key(src)].content
	if x.FileExists(dst) {
		x.removeFile(dst)
	}
	x.putFile(dst, fc)
	x.removeFile(src)
	return nil
}

func (x *hashIndex) MoveDir(src, dst *vpath.Path) error {
	noop, err := x.checkMoveDir(x, src, dst)
	if err != nil || noop {
		return err
	}
	x.copyTree(src, dst)
	x.removeTree(src)
	return nil
}

// copyTree re-inserts every entry below src under dst. File content records
// are shared with the source until removeTree drops it.
func (x *hashIndex) copyTree(src, dst *vpath.Path) {
	from := x.dirs[x.key(src)]
	x.putDir(dst)
	for _, f := range from.files.values() {
		x.putFile(dst.Child(f.Name()), x.files[x.key(f)].content)
	}
	for _, d := range from.dirs.values() {
		x.copyTree(d, dst.Child(d.Name()))
	}
}

func (x *hashIndex) removeTree(p *vpath.Path) {
	d := x.dirs[x.key(p)]
	for _, f := range d.files.values() {
		x.removeFile(f)
	}
	for _, sub := range d.dirs.values() {
		x.removeTree(sub)
	}
	x.removeDir(p)
}

func (x *hashIndex) List(p *vpath.Path) (vfs.Listing, error) {
	if err := x.check(opList, p); err != nil {
		return vfs.Listing{}, err
	}
	d, ok := x.dirs[x.key(p)]
	if !ok {
		return vfs.Listing{}, pathErr(opList, p, vfs.ErrNotFound)
	}
	dirs := make([]string, 0, d.dirs.len())
	for _, c := range d.dirs.values() {
		dirs = append(dirs, c.Name())
	}
	files := make([]string, 0, d.files.len())
	for _, c := range d.files.values() {
		files = append(files, c.Name())
	}
	return x.listing(dirs, files), nil
}

var _ Index = (*hashIndex)(nil)
