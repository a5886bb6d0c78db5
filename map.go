package chainmap

import (
	"errors"
	"iter"

	"github.com/google/go-cmp/cmp"
)

// ErrNotFound is returned by At for keys absent from the map. Every
// other lookup treats a missing key as a normal outcome.
var ErrNotFound = errors.New("chainmap: key not found")

// Pair is a key-value pair, used by FromPairs.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// HashMap is a separate-chaining hash map with automatic doubling and
// halving of its bucket array. Unlike Go's native map it hands out
// stable value references: a *V obtained from At, Ref or an Iterator
// stays valid across rebuilds until that key is deleted, because a
// rebuild only relinks entries into new buckets and never copies them.
// Not safe for concurrent use.
type HashMap[K comparable, V any] struct {
	table[K, V]
}

// Returns a new empty map.
func New[K comparable, V any](opts ...Option[K, V]) *HashMap[K, V] {
	var hm HashMap[K, V]
	hm.init(opts...)

	return &hm
}

// Collect builds a map from an iterator of key-value pairs. When the
// sequence repeats a key, the first occurrence wins and later ones are
// silently dropped.
func Collect[K comparable, V any](seq iter.Seq2[K, V], opts ...Option[K, V]) *HashMap[K, V] {
	hm := New(opts...)
	for k, v := range seq {
		hm.insert(k, v)
	}

	return hm
}

// FromPairs builds a map from a literal list of pairs, with the same
// first-occurrence-wins rule as Collect.
func FromPairs[K comparable, V any](pairs []Pair[K, V], opts ...Option[K, V]) *HashMap[K, V] {
	hm := New(opts...)
	for _, p := range pairs {
		hm.insert(p.Key, p.Value)
	}

	return hm
}

// Number of live entries.
func (hm *HashMap[K, V]) Len() int {
	return hm.size
}

func (hm *HashMap[K, V]) Empty() bool {
	return hm.size == 0
}

// The hash function the map was built with.
func (hm *HashMap[K, V]) HashFunc() HashFunc[K] {
	return hm.hashFunc
}

// Insert adds the pair unless the key is already present. An existing
// value is not overwritten; the return value reports whether a new
// entry was created.
func (hm *HashMap[K, V]) Insert(key K, value V) bool {
	return hm.insert(key, value)
}

// Delete removes the entry with the key if there is one.
func (hm *HashMap[K, V]) Delete(key K) bool {
	return hm.delete(key)
}

// Get returns a copy of the value stored under key.
func (hm *HashMap[K, V]) Get(key K) (V, bool) {
	if e, ok := hm.get(key); ok {
		return e.value, true
	}

	var zero V
	return zero, false
}

// At returns a mutable reference to the value stored under key, or
// ErrNotFound. It never mutates the map.
func (hm *HashMap[K, V]) At(key K) (*V, error) {
	e, ok := hm.get(key)
	if !ok {
		return nil, ErrNotFound
	}

	return &e.value, nil
}

// Ref returns a mutable reference to the value stored under key,
// inserting a zero value first when the key is absent. The insert
// counts like any other and may trigger a rebuild.
func (hm *HashMap[K, V]) Ref(key K) *V {
	return hm.ref(key)
}

// Find returns a cursor to the entry with the key, or End().
func (hm *HashMap[K, V]) Find(key K) Iterator[K, V] {
	if bucket, offset, ok := hm.locate(key); ok {
		return Iterator[K, V]{t: &hm.table, gen: hm.gen, bucket: bucket, offset: offset}
	}

	return hm.End()
}

func (hm *HashMap[K, V]) Begin() Iterator[K, V] {
	return hm.begin()
}

func (hm *HashMap[K, V]) End() Iterator[K, V] {
	return hm.end()
}

// Clear removes every entry and collapses the capacity back to the
// minimum.
func (hm *HashMap[K, V]) Clear() {
	hm.clear()
}

// All yields every key-value pair exactly once, in bucket order.
func (hm *HashMap[K, V]) All() iter.Seq2[K, V] {
	return hm.all()
}

func (hm *HashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range hm.all() {
			if !yield(k) {
				return
			}
		}
	}
}

func (hm *HashMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range hm.all() {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns an independent copy: same keys, values and hash
// function, fresh entry storage.
func (hm *HashMap[K, V]) Clone() *HashMap[K, V] {
	return &HashMap[K, V]{table: hm.table.clone()}
}

// Equal reports whether both maps hold the same key set with
// cmp.Equal-equal values. Capacity and bucket layout are ignored.
func (hm *HashMap[K, V]) Equal(other *HashMap[K, V], opts ...cmp.Option) bool {
	if hm.size != other.size {
		return false
	}

	for k, v := range hm.all() {
		e, ok := other.get(k)
		if !ok || !cmp.Equal(v, e.value, opts...) {
			return false
		}
	}

	return true
}

func (hm *HashMap[K, V]) Stats() Stats {
	return Stats{
		Size:       hm.size,
		Capacity:   hm.capacity(),
		LoadFactor: float64(hm.size) / float64(hm.capacity()),
	}
}
