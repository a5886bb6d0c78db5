package chainmap

import "iter"

// HashSet stores keys only, backed by the same chained table as
// HashMap. It shares the rebuild policy and the iteration order rules;
// the cursor API is not provided since there is no value to point at.
// Not safe for concurrent use.
type HashSet[K comparable] struct {
	table[K, struct{}]
}

// Returns a new empty set.
func NewSet[K comparable](opts ...Option[K, struct{}]) *HashSet[K] {
	var hs HashSet[K]
	hs.init(opts...)

	return &hs
}

// CollectSet builds a set from an iterator of keys.
func CollectSet[K comparable](seq iter.Seq[K], opts ...Option[K, struct{}]) *HashSet[K] {
	hs := NewSet(opts...)
	for k := range seq {
		hs.insert(k, struct{}{})
	}

	return hs
}

func (hs *HashSet[K]) Len() int {
	return hs.size
}

func (hs *HashSet[K]) Empty() bool {
	return hs.size == 0
}

func (hs *HashSet[K]) HashFunc() HashFunc[K] {
	return hs.hashFunc
}

// Insert adds the key; reports whether it was new.
func (hs *HashSet[K]) Insert(key K) bool {
	return hs.insert(key, struct{}{})
}

// Checks whether a key is in the set.
func (hs *HashSet[K]) Has(key K) bool {
	_, ok := hs.get(key)
	return ok
}

// Delete removes the key if present.
func (hs *HashSet[K]) Delete(key K) bool {
	return hs.delete(key)
}

func (hs *HashSet[K]) Clear() {
	hs.clear()
}

// All yields every key exactly once, in bucket order.
func (hs *HashSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range hs.all() {
			if !yield(k) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the set.
func (hs *HashSet[K]) Clone() *HashSet[K] {
	return &HashSet[K]{table: hs.table.clone()}
}

func (hs *HashSet[K]) Stats() Stats {
	return Stats{
		Size:       hs.size,
		Capacity:   hs.capacity(),
		LoadFactor: float64(hs.size) / float64(hs.capacity()),
	}
}
