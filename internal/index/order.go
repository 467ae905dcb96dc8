package index

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Orderer applies a listing order to name lists. Backends outside the
// in-memory engine reuse it so every listing honors the same policy.
type Orderer struct {
	order vfs.ListingOrder
	rng   *rand.Rand
}

// NewOrderer returns an Orderer for order. seed drives OrderShuffled; zero
// seeds from the clock.
func NewOrderer(order vfs.ListingOrder, seed uint64) *Orderer {
	o := &Orderer{order: order}
	if order == vfs.OrderShuffled {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		o.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return o
}

// Order returns the policy this Orderer applies.
func (o *Orderer) Order() vfs.ListingOrder { return o.order }

// Apply reorders names in place and returns it.
func (o *Orderer) Apply(names []string) []string {
	switch o.order {
	case vfs.OrderAscending:
		slices.Sort(names)
	case vfs.OrderDescending:
		slices.SortFunc(names, func(a, b string) int { return strings.Compare(b, a) })
	case vfs.OrderShuffled:
		o.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	}
	return names
}
