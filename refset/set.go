// Package refset implements the keyed-set primitive (§4.A): a set
// parameterised by a key-extraction function, with union/minus/intersect/
// filter/map/product/pop. It is the hot path of the whole engine — every
// DefUse triple and the slicer's location set are built on it.
package refset

// Set is a keyed collection of values of type V, identified by a string
// key produced by keyFunc. Iteration order is unspecified and may differ
// between calls (Go randomizes map iteration order on every range); each
// single traversal visits every element exactly once.
type Set[V any] struct {
	keyFunc func(V) string
	items   map[string]V
}

// New creates an empty Set using keyFunc to derive element identity.
func New[V any](keyFunc func(V) string) *Set[V] {
	return &Set[V]{keyFunc: keyFunc, items: map[string]V{}}
}

// Of creates a Set pre-populated with vs.
func Of[V any](keyFunc func(V) string, vs ...V) *Set[V] {
	s := New(keyFunc)
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add inserts v, overwriting any existing element with the same key.
func (s *Set[V]) Add(v V) { s.items[s.keyFunc(v)] = v }

// Remove deletes the element with v's key, if present.
func (s *Set[V]) Remove(v V) { delete(s.items, s.keyFunc(v)) }

// Has reports whether an element with v's key is present.
func (s *Set[V]) Has(v V) bool {
	_, ok := s.items[s.keyFunc(v)]
	return ok
}

// HasKey reports whether an element with the given key is present.
func (s *Set[V]) HasKey(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Items returns all elements. The slice is newly allocated; mutating it
// does not affect the set.
func (s *Set[V]) Items() []V {
	out := make([]V, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// Size returns the number of elements.
func (s *Set[V]) Size() int { return len(s.items) }

// Empty reports whether the set has no elements.
func (s *Set[V]) Empty() bool { return len(s.items) == 0 }

// Equals reports whether s and other contain elements with exactly the
// same keys (same size, every key in one present in the other).
func (s *Set[V]) Equals(other *Set[V]) bool {
	if other == nil {
		return s.Empty()
	}
	if len(s.items) != len(other.items) {
		return false
	}
	for k := range s.items {
		if !other.HasKey(k) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of s.
func (s *Set[V]) Clone() *Set[V] {
	out := New(s.keyFunc)
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

// Union returns a new set containing every element of s and of each
// argument; on key collision, the last set to contribute that key wins
// (later arguments shadow earlier ones, s itself is applied first).
func (s *Set[V]) Union(others ...*Set[V]) *Set[V] {
	out := s.Clone()
	for _, o := range others {
		if o == nil {
			continue
		}
		for k, v := range o.items {
			out.items[k] = v
		}
	}
	return out
}

// Intersect returns a new set of elements whose key is present in both s
// and other.
func (s *Set[V]) Intersect(other *Set[V]) *Set[V] {
	out := New(s.keyFunc)
	if other == nil {
		return out
	}
	for k, v := range s.items {
		if other.HasKey(k) {
			out.items[k] = v
		}
	}
	return out
}

// Minus returns a new set of s's elements whose key is absent from other.
func (s *Set[V]) Minus(other *Set[V]) *Set[V] {
	out := New(s.keyFunc)
	for k, v := range s.items {
		if other == nil || !other.HasKey(k) {
			out.items[k] = v
		}
	}
	return out
}

// Filter returns a new set of s's elements for which pred returns true.
func (s *Set[V]) Filter(pred func(V) bool) *Set[V] {
	out := New(s.keyFunc)
	for k, v := range s.items {
		if pred(v) {
			out.items[k] = v
		}
	}
	return out
}

// Some reports whether any element satisfies pred.
func (s *Set[V]) Some(pred func(V) bool) bool {
	for _, v := range s.items {
		if pred(v) {
			return true
		}
	}
	return false
}

// Map applies f to every element and collects the results into a new set
// keyed by newKeyFunc.
func Map[V, W any](s *Set[V], newKeyFunc func(W) string, f func(V) W) *Set[W] {
	out := New(newKeyFunc)
	for _, v := range s.items {
		out.Add(f(v))
	}
	return out
}

// Product computes the Cartesian product of s and other, pairing via
// pair, into a new set keyed by pairKeyFunc.
func Product[V, W, P any](s *Set[V], other *Set[W], pairKeyFunc func(P) string, pair func(V, W) P) *Set[P] {
	out := New(pairKeyFunc)
	for _, v := range s.items {
		for _, w := range other.items {
			out.Add(pair(v, w))
		}
	}
	return out
}

// Pop removes and returns an arbitrary element. It fails when the set is
// empty — per §7, an empty-set pop is fatal to the caller.
func (s *Set[V]) Pop() (V, error) {
	for k, v := range s.items {
		delete(s.items, k)
		return v, nil
	}
	var zero V
	return zero, ErrEmptySet
}
