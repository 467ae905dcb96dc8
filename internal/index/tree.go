package index

import (
	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

type dirNode struct {
	name  string
	dirs  *children[*dirNode]
	files *children[*fileNode]
}

func newDirNode(name string) *dirNode {
	return &dirNode{
		name:  name,
		dirs:  newChildren[*dirNode](),
		files: newChildren[*fileNode](),
	}
}

type fileNode struct {
	name    string
	content *content.FileContent
}

// treeIndex is a node graph hanging from one root per path head. Moves
// detach a node from its old parent and attach it under the new one.
type treeIndex struct {
	*helper
	roots map[string]*dirNode
}

func newTreeIndex(h *helper) *treeIndex {
	x := &treeIndex{helper: h, roots: make(map[string]*dirNode)}
	x.roots[x.key(vpath.Root())] = newDirNode("")
	x.roots[x.key(vpath.Current())] = newDirNode("")
	return x
}

// dir walks from the root of p's head down to p.
func (x *treeIndex) dir(p *vpath.Path) *dirNode {
	if p == nil {
		return nil
	}
	node := x.roots[x.key(p.Origin())]
	for i := 0; node != nil && i < p.Len(); i++ {
		node, _ = node.dirs.get(x.nameKey(p.Element(i)))
	}
	return node
}

func (x *treeIndex) file(p *vpath.Path) *fileNode {
	if p == nil || p.Len() == 0 {
		return nil
	}
	parent := x.dir(p.Parent())
	if parent == nil {
		return nil
	}
	f, _ := parent.files.get(x.nameKey(p.Name()))
	return f
}

func (x *treeIndex) FileExists(p *vpath.Path) bool { return x.file(p) != nil }

func (x *treeIndex) DirExists(p *vpath.Path) bool { return x.dir(p) != nil }

func (x *treeIndex) Kind(p *vpath.Path) vfs.Kind {
	switch {
	case x.dir(p) != nil:
		return vfs.KindDirectory
	case x.file(p) != nil:
		return vfs.KindFile
	default:
		return vfs.KindAbsent
	}
}

func (x *treeIndex) File(p *vpath.Path) (*content.FileContent, error) {
	if err := x.check(opOpen, p); err != nil {
		return nil, err
	}
	f := x.file(p)
	if f == nil {
		return nil, pathErr(opOpen, p, vfs.ErrNotFound)
	}
	return f.content, nil
}

func (x *treeIndex) CreateFile(p *vpath.Path) (*content.FileContent, error) {
	if err := x.checkCreateFile(x, p); err != nil {
		return nil, err
	}
	fc := x.newContent()
	if f := x.file(p); f != nil {
		f.content = fc
		return fc, nil
	}
	x.dir(p.Parent()).files.put(x.nameKey(p.Name()), &fileNode{name: p.Name(), content: fc})
	return fc, nil
}

func (x *treeIndex) CreateDir(p *vpath.Path) error {
	chain, err := x.missingDirs(x, p)
	if err != nil {
		return err
	}
	for _, d := range chain {
		if d.Len() == 0 {
			x.roots[x.key(d)] = newDirNode("")
			continue
		}
		x.dir(d.Parent()).dirs.put(x.nameKey(d.Name()), newDirNode(d.Name()))
	}
	return nil
}

func (x *treeIndex) DeleteFile(p *vpath.Path) error {
	if err := x.checkDeleteFile(x, p); err != nil {
		return err
	}
	x.dir(p.Parent()).files.remove(x.nameKey(p.Name()))
	return nil
}

func (x *treeIndex) DeleteDir(p *vpath.Path) error {
	if err := x.checkDeleteDir(x, p); err != nil {
		return err
	}
	if d := x.dir(p); d.dirs.len() > 0 || d.files.len() > 0 {
		return pathErr(opDeleteDir, p, vfs.ErrNotEmpty)
	}
	x.dir(p.Parent()).dirs.remove(x.nameKey(p.Name()))
	return nil
}

func (x *treeIndex) MoveFile(src, dst *vpath.Path) error {
	noop, err := x.checkMoveFile(x, src, dst)
	if err != nil || noop {
		return err
	}
	from := x.dir(src.Parent())
	f, _ := from.files.get(x.nameKey(src.Name()))
	from.files.remove(x.nameKey(src.Name()))
	f.name = dst.Name()
	to := x.dir(dst.Parent())
	to.files.remove(x.nameKey(dst.Name()))
	to.files.put(x.nameKey(dst.Name()), f)
	return nil
}

func (x *treeIndex) MoveDir(src, dst *vpath.Path) error {
	noop, err := x.checkMoveDir(x, src, dst)
	if err != nil || noop {
		return err
	}
	from := x.dir(src.Parent())
	d, _ := from.dirs.get(x.nameKey(src.Name()))
	from.dirs.remove(x.nameKey(src.Name()))
	d.name = dst.Name()
	x.dir(dst.Parent()).dirs.put(x.nameKey(dst.Name()), d)
	return nil
}

func (x *treeIndex) List(p *vpath.Path) (vfs.Listing, error) {
	if err := x.check(opList, p); err != nil {
		return vfs.Listing{}, err
	}
	d := x.dir(p)
	if d == nil {
		return vfs.Listing{}, pathErr(opList, p, vfs.ErrNotFound)
	}
	dirs := make([]string, 0, d.dirs.len())
	for _, c := range d.dirs.values() {
		dirs = append(dirs, c.name)
	}
	files := make([]string, 0, d.files.len())
	for _, c := range d.files.values() {
		files = append(files, c.name)
	}
	return x.listing(dirs, files), nil
}

var _ Index = (*treeIndex)(nil)
