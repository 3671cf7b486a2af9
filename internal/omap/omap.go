// Package omap provides a small insertion-ordered string-keyed map.
//
// Foreign attributes on schema constructs and named transformation parameters
// both require deterministic iteration in insertion order, which the built-in
// map does not guarantee.
package omap

// Map is an insertion-ordered association of string keys to values. Setting an
// existing key updates the value in place and keeps the original position.
type Map[V any] struct {
	keys []string
	vals map[string]V
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{vals: map[string]V{}}
}

// Set stores v under k, preserving the key's original insertion position when
// it already exists.
func (m *Map[V]) Set(k string, v V) {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m *Map[V]) Get(k string) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each invokes fn for every entry in insertion order.
func (m *Map[V]) Each(fn func(k string, v V)) {
	for _, k := range m.keys {
		fn(k, m.vals[k])
	}
}

// Clone returns an independent copy. Mutating the clone never affects the
// receiver and vice versa.
func (m *Map[V]) Clone() *Map[V] {
	out := New[V]()
	for _, k := range m.keys {
		out.Set(k, m.vals[k])
	}
	return out
}
