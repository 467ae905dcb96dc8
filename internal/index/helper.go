package index

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

const (
	opCreateFile = "create file"
	opCreateDir  = "create dir"
	opDeleteFile = "delete file"
	opDeleteDir  = "delete dir"
	opMoveFile   = "move file"
	opMoveDir    = "move dir"
	opList       = "list"
	opOpen       = "open"
)

// kinder is the one query the shared validation needs from a strategy.
type kinder interface {
	Kind(p *vpath.Path) vfs.Kind
}

// helper holds what both strategies share: path identity, listing order,
// content creation and precondition checks. Strategies embed it.
type helper struct {
	foldCase bool
	order    *Orderer
	factory  content.Factory
}

func newHelper(opts Options) *helper {
	factory := opts.Factory
	if factory == nil {
		factory = content.DefaultFactory()
	}
	return &helper{
		foldCase: opts.FoldCase,
		order:    NewOrderer(opts.Order, opts.Seed),
		factory:  factory,
	}
}

func (h *helper) fold(s string) string {
	if h.foldCase {
		return strings.ToLower(s)
	}
	return s
}

// key is the map key of a full path.
func (h *helper) key(p *vpath.Path) string { return h.fold(p.Key()) }

// nameKey is the map key of a single child name.
func (h *helper) nameKey(name string) string { return h.fold(name) }

// Compare implements Index.
func (h *helper) Compare(a, b *vpath.Path) int {
	if !h.foldCase {
		return a.Compare(b)
	}
	ha, hb := a.Head(), b.Head()
	if c := cmp.Compare(ha.Kind, hb.Kind); c != 0 {
		return c
	}
	if c := strings.Compare(h.fold(ha.Label), h.fold(hb.Label)); c != 0 {
		return c
	}
	for i := range min(a.Len(), b.Len()) {
		if c := strings.Compare(h.fold(a.Element(i)), h.fold(b.Element(i))); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

// Equal implements Index.
func (h *helper) Equal(a, b *vpath.Path) bool {
	if !h.foldCase {
		return a.Equal(b)
	}
	return h.Compare(a, b) == 0
}

// Hash implements Index.
func (h *helper) Hash(p *vpath.Path) uint64 {
	if !h.foldCase {
		return p.Hash()
	}
	return xxhash.Sum64String(h.key(p))
}

// within reports whether p lies strictly below base.
func (h *helper) within(p, base *vpath.Path) bool {
	if p.Len() <= base.Len() {
		return false
	}
	return h.Equal(prefix(p, base.Len()), base)
}

// prefix returns the ancestor of p with n elements.
func prefix(p *vpath.Path, n int) *vpath.Path {
	for p.Len() > n {
		p = p.Parent()
	}
	return p
}

func (h *helper) newContent() *content.FileContent { return h.factory.NewContent() }

func (h *helper) listing(dirs, files []string) vfs.Listing {
	return vfs.Listing{Dirs: h.order.Apply(dirs), Files: h.order.Apply(files)}
}

// check rejects paths an index cannot hold: nil paths and paths whose
// elements were never normalized.
func (h *helper) check(op string, p *vpath.Path) error {
	if p == nil {
		return &vfs.PathError{Op: op, Path: "<nil>", Err: vfs.ErrInvalidArgument}
	}
	for i := range p.Len() {
		e := p.Element(i)
		switch {
		case e == "" || e == "." || strings.ContainsAny(e, `/\`):
			return invalid(op, p, "malformed element %q", e)
		case e == "..":
			if p.IsAbsolute() || (i > 0 && p.Element(i-1) != "..") {
				return invalid(op, p, "not normalized")
			}
		}
	}
	return nil
}

func (h *helper) checkCreateFile(k kinder, p *vpath.Path) error {
	if err := h.check(opCreateFile, p); err != nil {
		return err
	}
	if p.Len() == 0 {
		return invalid(opCreateFile, p, "a root cannot be a file")
	}
	if k.Kind(p) == vfs.KindDirectory {
		return conflict(opCreateFile, p, vfs.KindDirectory)
	}
	if k.Kind(p.Parent()) != vfs.KindDirectory {
		return pathErr(opCreateFile, p, vfs.ErrParentMissing)
	}
	return nil
}

// missingDirs returns the directories CreateDir has to add, outermost first.
func (h *helper) missingDirs(k kinder, p *vpath.Path) ([]*vpath.Path, error) {
	if err := h.check(opCreateDir, p); err != nil {
		return nil, err
	}
	switch k.Kind(p) {
	case vfs.KindDirectory:
		return nil, pathErr(opCreateDir, p, vfs.ErrDuplicate)
	case vfs.KindFile:
		return nil, conflict(opCreateDir, p, vfs.KindFile)
	}

	var chain []*vpath.Path
	for q := p; q != nil; q = q.Parent() {
		switch k.Kind(q) {
		case vfs.KindDirectory:
			slices.Reverse(chain)
			return chain, nil
		case vfs.KindFile:
			return nil, conflict(opCreateDir, q, vfs.KindFile)
		}
		chain = append(chain, q)
	}
	slices.Reverse(chain)
	return chain, nil
}

func (h *helper) checkDeleteFile(k kinder, p *vpath.Path) error {
	if err := h.check(opDeleteFile, p); err != nil {
		return err
	}
	if k.Kind(p) != vfs.KindFile {
		return pathErr(opDeleteFile, p, vfs.ErrNotFound)
	}
	return nil
}

func (h *helper) checkDeleteDir(k kinder, p *vpath.Path) error {
	if err := h.check(opDeleteDir, p); err != nil {
		return err
	}
	if p.Len() == 0 {
		return invalid(opDeleteDir, p, "a root cannot be deleted")
	}
	if k.Kind(p) != vfs.KindDirectory {
		return pathErr(opDeleteDir, p, vfs.ErrNotFound)
	}
	return nil
}

// checkMoveFile validates a file move. noop is true when src and dst are
// the same path.
func (h *helper) checkMoveFile(k kinder, src, dst *vpath.Path) (noop bool, err error) {
	if err := h.check(opMoveFile, src); err != nil {
		return false, err
	}
	if err := h.check(opMoveFile, dst); err != nil {
		return false, err
	}
	if k.Kind(src) != vfs.KindFile {
		return false, pathErr(opMoveFile, src, vfs.ErrNotFound)
	}
	if h.Equal(src, dst) {
		return true, nil
	}
	if dst.Len() == 0 {
		return false, invalid(opMoveFile, dst, "a root cannot be a file")
	}
	if k.Kind(dst) == vfs.KindDirectory {
		return false, conflict(opMoveFile, dst, vfs.KindDirectory)
	}
	if k.Kind(dst.Parent()) != vfs.KindDirectory {
		return false, pathErr(opMoveFile, dst, vfs.ErrParentMissing)
	}
	return false, nil
}

// checkMoveDir validates a directory move. noop is true when src and dst
// are the same path.
func (h *helper) checkMoveDir(k kinder, src, dst *vpath.Path) (noop bool, err error) {
	if err := h.check(opMoveDir, src); err != nil {
		return false, err
	}
	if err := h.check(opMoveDir, dst); err != nil {
		return false, err
	}
	if src.Len() == 0 {
		return false, invalid(opMoveDir, src, "a root cannot be moved")
	}
	if k.Kind(src) != vfs.KindDirectory {
		return false, pathErr(opMoveDir, src, vfs.ErrNotFound)
	}
	if h.Equal(src, dst) {
		return true, nil
	}
	if h.within(dst, src) {
		return false, invalid(opMoveDir, dst, "destination is inside %s", src)
	}
	switch k.Kind(dst) {
	case vfs.KindDirectory:
		return false, pathErr(opMoveDir, dst, vfs.ErrDuplicate)
	case vfs.KindFile:
		return false, conflict(opMoveDir, dst, vfs.KindFile)
	}
	if dst.Len() == 0 {
		return false, invalid(opMoveDir, dst, "a root cannot be a move target")
	}
	if k.Kind(dst.Parent()) != vfs.KindDirectory {
		return false, pathErr(opMoveDir, dst, vfs.ErrParentMissing)
	}
	return false, nil
}

func pathErr(op string, p *vpath.Path, err error) error {
	return &vfs.PathError{Op: op, Path: p.String(), Err: err}
}

func conflict(op string, p *vpath.Path, found vfs.Kind) error {
	return &vfs.ConflictError{Op: op, Path: p.String(), Found: found}
}

func invalid(op string, p *vpath.Path, format string, args ...any) error {
	return pathErr(op, p, fmt.Errorf("%w: "+format, append([]any{vfs.ErrInvalidArgument}, args...)...))
}
