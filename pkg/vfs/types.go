package vfs

import (
	"fmt"
	"strings"
)

// Kind classifies a path in a directory index. Every path is exactly one kind.
type Kind int

const (
	KindAbsent Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ListingOrder controls how directory listings are ordered before they are
// returned. It is fixed when an index is constructed.
type ListingOrder int

const (
	// OrderNone returns names in the order they were first created.
	OrderNone ListingOrder = iota
	// OrderAscending sorts names ascending.
	OrderAscending
	// OrderDescending sorts names descending.
	OrderDescending
	// OrderShuffled returns names in a pseudo-random order.
	OrderShuffled
)

func (o ListingOrder) String() string {
	switch o {
	case OrderNone:
		return "none"
	case OrderAscending:
		return "ascending"
	case OrderDescending:
		return "descending"
	case OrderShuffled:
		return "shuffled"
	default:
		return fmt.Sprintf("ListingOrder(%d)", int(o))
	}
}

// ParseListingOrder accepts none, ascending, descending and shuffled.
func ParseListingOrder(s string) (ListingOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return OrderNone, nil
	case "ascending", "asc":
		return OrderAscending, nil
	case "descending", "desc":
		return OrderDescending, nil
	case "shuffled", "shuffle", "random":
		return OrderShuffled, nil
	}
	return OrderNone, fmt.Errorf("unknown listing order %q: %w", s, ErrInvalidConfig)
}

// IndexStrategy selects the data structure behind a directory index.
type IndexStrategy int

const (
	// IndexHash keeps one flat map per entry kind keyed by full path.
	IndexHash IndexStrategy = iota
	// IndexTree keeps a node graph reachable from one root per head.
	IndexTree
)

func (s IndexStrategy) String() string {
	switch s {
	case IndexHash:
		return "hash"
	case IndexTree:
		return "tree"
	default:
		return fmt.Sprintf("IndexStrategy(%d)", int(s))
	}
}

// ParseIndexStrategy accepts hash and tree.
func ParseIndexStrategy(s string) (IndexStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hash":
		return IndexHash, nil
	case "tree":
		return IndexTree, nil
	}
	return IndexHash, fmt.Errorf("unknown index strategy %q: %w", s, ErrInvalidConfig)
}

// WriteMode selects whether opening a file for writing replaces or extends it.
type WriteMode int

const (
	WriteOverwrite WriteMode = iota
	WriteAppend
)

// MapMode selects the access a memory mapping requests.
type MapMode int

const (
	MapReadOnly MapMode = iota
	MapReadWrite
	MapPrivate
)

// Listing holds the direct children of a directory.
type Listing struct {
	Dirs  []string
	Files []string
}
