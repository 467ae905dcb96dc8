package vpath

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidArgument is returned for malformed path strings and for path
// arithmetic that has no answer (climbing above an absolute root, deriving a
// relative hop between a relative and an absolute path).
var ErrInvalidArgument = errors.New("invalid argument")

// HeadKind discriminates the root a path hangs from.
type HeadKind int

const (
	// HeadCurrent marks a path relative to the current directory.
	HeadCurrent HeadKind = iota
	// HeadRoot marks an absolute path starting at the filesystem root.
	HeadRoot
	// HeadDrive marks a path starting at a drive or volume label such as "C:".
	HeadDrive
	// HeadUNC marks a path starting at a UNC host such as "//server".
	HeadUNC
)

func (k HeadKind) String() string {
	switch k {
	case HeadCurrent:
		return "current"
	case HeadRoot:
		return "root"
	case HeadDrive:
		return "drive"
	case HeadUNC:
		return "unc"
	default:
		return fmt.Sprintf("HeadKind(%d)", int(k))
	}
}

// Head is the head discriminator of a path. Label carries the drive label
// ("C:") or the UNC host name; it is empty for root and current heads.
type Head struct {
	Kind  HeadKind
	Label string
}

// Path is an immutable filesystem path: a head discriminator followed by a
// sequence of elements. Paths share their element storage with the paths
// they were sliced from; every derived path is capped so appends copy.
//
// Always handle paths through *Path. The zero value is not usable.
type Path struct {
	head  Head
	elems []string
	hash  atomic.Uint64
}

const (
	elemCurrent = "."
	elemParent  = ".."
)

var (
	rootPath    = &Path{head: Head{Kind: HeadRoot}}
	currentPath = &Path{head: Head{Kind: HeadCurrent}}
)

// Root returns the absolute root path "/".
func Root() *Path { return rootPath }

// Current returns the current-directory path ".".
func Current() *Path { return currentPath }

// Parse parses s into a normalized path. Both '/' and '\' are accepted as
// separators. Prefixes are recognized in this order: a double separator UNC
// host, a leading separator, "." or "./", a drive letter, and otherwise the
// whole string is relative to the current directory.
func Parse(s string) (*Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}

	norm := strings.ReplaceAll(s, `\`, "/")

	var head Head
	var body string
	switch {
	case strings.HasPrefix(norm, "//"):
		host, tail, _ := strings.Cut(norm[2:], "/")
		if host == "" {
			return nil, fmt.Errorf("%w: %q has no UNC host", ErrInvalidArgument, s)
		}
		head = Head{Kind: HeadUNC, Label: host}
		body = tail
	case strings.HasPrefix(norm, "/"):
		head = Head{Kind: HeadRoot}
		body = norm[1:]
	case norm == elemCurrent || strings.HasPrefix(norm, "./"):
		head = Head{Kind: HeadCurrent}
		body = norm[1:]
	case isDrive(norm):
		head = Head{Kind: HeadDrive, Label: norm[:2]}
		body = norm[2:]
	default:
		head = Head{Kind: HeadCurrent}
		body = norm
	}

	p, ok := (&Path{head: head}).resolve(split(body))
	if !ok {
		return nil, fmt.Errorf("%w: %q climbs above its root", ErrInvalidArgument, s)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(s string) *Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// New builds a normalized path from a head and raw elements.
func New(head Head, elems ...string) (*Path, error) {
	p, ok := (&Path{head: head}).resolve(elems)
	if !ok {
		return nil, fmt.Errorf("%w: %v climbs above its root", ErrInvalidArgument, elems)
	}
	return p, nil
}

func isDrive(s string) bool {
	if len(s) < 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func split(body string) []string {
	var out []string
	for _, seg := range strings.Split(body, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// resolve pushes elems onto p, dropping "." and resolving ".." against the
// most recently pushed element. It reports false when ".." would climb above
// an absolute head.
func (p *Path) resolve(elems []string) (*Path, bool) {
	out := slices.Clone(p.elems)
	for _, e := range elems {
		switch {
		case e == "" || e == elemCurrent:
		case e == elemParent:
			if n := len(out); n > 0 && out[n-1] != elemParent {
				out = out[:n-1]
			} else if p.head.Kind == HeadCurrent {
				out = append(out, elemParent)
			} else {
				return nil, false
			}
		default:
			out = append(out, e)
		}
	}
	return &Path{head: p.head, elems: out[:len(out):len(out)]}, true
}

// Head returns the head discriminator.
func (p *Path) Head() Head { return p.head }

// IsAbsolute reports whether the path hangs from a root, drive or UNC head.
func (p *Path) IsAbsolute() bool { return p.head.Kind != HeadCurrent }

// IsRelative reports whether the path is relative to the current directory.
func (p *Path) IsRelative() bool { return p.head.Kind == HeadCurrent }

// Len returns the number of elements.
func (p *Path) Len() int { return len(p.elems) }

// Element returns the i-th element.
func (p *Path) Element(i int) string { return p.elems[i] }

// Elements returns a copy of the elements.
func (p *Path) Elements() []string { return slices.Clone(p.elems) }

// Name returns the last element, or "" for a path without elements.
func (p *Path) Name() string {
	if len(p.elems) == 0 {
		return ""
	}
	return p.elems[len(p.elems)-1]
}

// Parent returns the path without its last element, or nil when the path
// has no elements.
func (p *Path) Parent() *Path {
	n := len(p.elems)
	if n == 0 {
		return nil
	}
	return &Path{head: p.head, elems: p.elems[: n-1 : n-1]}
}

// Origin returns the element-less path carrying the same head.
func (p *Path) Origin() *Path {
	switch {
	case len(p.elems) == 0:
		return p
	case p.head.Kind == HeadRoot:
		return rootPath
	case p.head.Kind == HeadCurrent:
		return currentPath
	default:
		return &Path{head: p.head}
	}
}

// Child returns the path with name appended as a single element, verbatim.
func (p *Path) Child(name string) *Path {
	elems := append(p.elems[:len(p.elems):len(p.elems)], name)
	return &Path{head: p.head, elems: elems}
}

// Join resolves other against p. "." elements are dropped and ".." pops the
// most recently pushed element. Climbing above an absolute root fails; a
// relative origin is allowed to accumulate leading ".." elements. An
// absolute other is returned normalized.
func (p *Path) Join(other *Path) (*Path, error) {
	if other.IsAbsolute() {
		return other.Normalize()
	}
	joined, ok := p.resolve(other.elems)
	if !ok {
		return nil, fmt.Errorf("%w: joining %q onto %q climbs above the root", ErrInvalidArgument, other, p)
	}
	return joined, nil
}

// Append concatenates the elements of other without normalizing. The head of
// other is ignored.
func (p *Path) Append(other *Path) *Path {
	elems := make([]string, 0, len(p.elems)+len(other.elems))
	elems = append(elems, p.elems...)
	elems = append(elems, other.elems...)
	return &Path{head: p.head, elems: elems}
}

// Normalize drops "." and resolves ".." elements left behind by Append.
func (p *Path) Normalize() (*Path, error) {
	n, ok := (&Path{head: p.head}).resolve(p.elems)
	if !ok {
		return nil, fmt.Errorf("%w: %q climbs above its root", ErrInvalidArgument, p)
	}
	return n, nil
}

// Subpath returns elements [begin, end) as a current-directory relative path.
func (p *Path) Subpath(begin, end int) (*Path, error) {
	if begin < 0 || end > len(p.elems) || begin > end {
		return nil, fmt.Errorf("%w: subpath [%d, %d) of %q with %d elements", ErrInvalidArgument, begin, end, p, len(p.elems))
	}
	return &Path{head: Head{Kind: HeadCurrent}, elems: p.elems[begin:end:end]}, nil
}

// Equal reports whether both paths have the same head and elements.
func (p *Path) Equal(other *Path) bool {
	return p.head == other.head && slices.Equal(p.elems, other.elems)
}

// Compare orders paths by head, then element-wise; on a common prefix the
// shorter path sorts first.
func (p *Path) Compare(other *Path) int {
	if c := cmp.Compare(p.head.Kind, other.head.Kind); c != 0 {
		return c
	}
	if c := strings.Compare(p.head.Label, other.head.Label); c != 0 {
		return c
	}
	return slices.Compare(p.elems, other.elems)
}

// Hash returns a hash consistent with Equal. It is computed once.
func (p *Path) Hash() uint64 {
	if h := p.hash.Load(); h != 0 {
		return h
	}
	h := xxhash.Sum64String(p.Key())
	if h == 0 {
		h = 1
	}
	p.hash.Store(h)
	return h
}

// Key returns a string that is equal for two paths iff the paths are Equal.
// Indexes use it as a map key.
func (p *Path) Key() string {
	var b strings.Builder
	b.WriteByte(byte('0' + p.head.Kind))
	b.WriteString(p.head.Label)
	for _, e := range p.elems {
		b.WriteByte(0)
		b.WriteString(e)
	}
	return b.String()
}

// IsChildOf reports whether other's elements are a strict prefix of p's and
// both share the same head.
func (p *Path) IsChildOf(other *Path) bool {
	return p.head == other.head &&
		len(other.elems) < len(p.elems) &&
		slices.Equal(p.elems[:len(other.elems)], other.elems)
}

// PathFrom returns the minimal relative path leading from base to p: one
// ".." per diverging element of base followed by the remaining elements of p.
func (p *Path) PathFrom(base *Path) (*Path, error) {
	if p.IsRelative() != base.IsRelative() {
		return nil, fmt.Errorf("%w: cannot relate %q to %q: one path is relative", ErrInvalidArgument, p, base)
	}
	if p.head != base.head {
		return nil, fmt.Errorf("%w: cannot relate %q to %q: different roots", ErrInvalidArgument, p, base)
	}

	common := 0
	for common < len(p.elems) && common < len(base.elems) && p.elems[common] == base.elems[common] {
		common++
	}

	elems := make([]string, 0, len(base.elems)-common+len(p.elems)-common)
	for range len(base.elems) - common {
		elems = append(elems, elemParent)
	}
	elems = append(elems, p.elems[common:]...)
	return &Path{head: Head{Kind: HeadCurrent}, elems: elems}, nil
}

// Separator selects how Format renders element boundaries.
type Separator int

const (
	// Forward renders with '/'.
	Forward Separator = iota
	// Backward renders with '\'.
	Backward
	// Native renders with the host's filepath.Separator.
	Native
)

// String returns the separator character.
func (s Separator) String() string {
	switch s {
	case Backward:
		return `\`
	case Native:
		return string(filepath.Separator)
	default:
		return "/"
	}
}

// ParseSeparator accepts "forward", "backward" and "native".
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(s) {
	case "", "forward", "/":
		return Forward, nil
	case "backward", `\`:
		return Backward, nil
	case "native":
		return Native, nil
	}
	return Forward, fmt.Errorf("%w: unknown separator %q", ErrInvalidArgument, s)
}

// String renders the path with forward slashes.
func (p *Path) String() string { return p.Format(Forward) }

// Format renders the path with the given separator.
func (p *Path) Format(sep Separator) string {
	s := sep.String()
	var b strings.Builder
	switch p.head.Kind {
	case HeadRoot:
		b.WriteString(s)
	case HeadDrive:
		b.WriteString(p.head.Label)
		b.WriteString(s)
	case HeadUNC:
		b.WriteString(s)
		b.WriteString(s)
		b.WriteString(p.head.Label)
		if len(p.elems) > 0 {
			b.WriteString(s)
		}
	case HeadCurrent:
		if len(p.elems) == 0 {
			return elemCurrent
		}
	}
	b.WriteString(strings.Join(p.elems, s))
	return b.String()
}
