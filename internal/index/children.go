package index

import "slices"

// children maps name keys to directory entries and remembers the order the
// keys were first inserted in. Listings under OrderNone follow that order.
type children[V any] struct {
	keys []string
	m    map[string]V
}

func newChildren[V any]() *children[V] {
	return &children[V]{m: make(map[string]V)}
}

func (c *children[V]) len() int { return len(c.m) }

func (c *children[V]) get(key string) (V, bool) {
	v, ok := c.m[key]
	return v, ok
}

// put stores v under key. A key already present keeps its position.
func (c *children[V]) put(key string, v V) {
	if _, ok := c.m[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.m[key] = v
}

func (c *children[V]) remove(key string) {
	if _, ok := c.m[key]; !ok {
		return
	}
	delete(c.m, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}
}

// values returns a snapshot of the entries in insertion order. Callers may
// mutate c while ranging over it.
func (c *children[V]) values() []V {
	out := make([]V, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.m[k])
	}
	return out
}
