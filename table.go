package chainmap

import (
	"hash/maphash"
	"slices"
)

// The bucket array never gets shorter than this. It's also the floor of
// the rebuild target: capacity is always max(minCapacity, 2*size).
const minCapacity = 10

// entry is a single boxed key/value pair. The box is allocated once on
// insert and only ever relinked afterwards, so a value pointer handed out
// by a lookup stays valid across rebuilds until the entry is deleted.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// table is the chained hash table core shared by HashMap and HashSet.
// Each bucket is an insertion-ordered chain of entry boxes; the bucket of
// a key is hash(key) mod len(buckets) as of the last rebuild.
type table[K comparable, V any] struct {
	buckets [][]*entry[K, V]
	size    int

	// gen increments on every rebuild. Cursors carry the gen they were
	// created under and refuse to dereference after a mismatch.
	gen uint64

	hashFunc HashFunc[K]
}

type Option[K comparable, V any] func(t *table[K, V])

// Override default hash function.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(t *table[K, V]) {
		t.hashFunc = f
	}
}

func (t *table[K, V]) init(opts ...Option[K, V]) {
	t.buckets = make([][]*entry[K, V], minCapacity)

	for _, opt := range opts {
		opt(t)
	}

	if t.hashFunc == nil {
		t.hashFunc = MakeDefaultHashFunc[K](maphash.MakeSeed())
	}
}

func (t *table[K, V]) capacity() int {
	return len(t.buckets)
}

func (t *table[K, V]) bucketOf(key K) int {
	return int(t.hashFunc(key) % uint64(len(t.buckets)))
}

func (t *table[K, V]) get(key K) (*entry[K, V], bool) {
	b := t.bucketOf(key)
	for _, e := range t.buckets[b] {
		if e.key == key {
			return e, true
		}
	}

	return nil, false
}

// locate returns the cursor coordinates of the entry holding the key.
func (t *table[K, V]) locate(key K) (bucket, offset int, ok bool) {
	b := t.bucketOf(key)
	for i, e := range t.buckets[b] {
		if e.key == key {
			return b, i, true
		}
	}

	return 0, 0, false
}

// insert appends a new entry to its chain unless the key is already
// present. On a duplicate the stored value is kept as-is (first write
// wins) and nothing is signalled beyond the false return.
func (t *table[K, V]) insert(key K, value V) bool {
	b := t.bucketOf(key)
	for _, e := range t.buckets[b] {
		if e.key == key {
			return false
		}
	}

	t.buckets[b] = append(t.buckets[b], &entry[K, V]{key: key, value: value})
	t.size++
	t.maybeRebuild()

	return true
}

// ref returns a pointer to the value stored under key, inserting a zero
// value first when the key is absent. The insert path may rebuild.
func (t *table[K, V]) ref(key K) *V {
	if e, ok := t.get(key); ok {
		return &e.value
	}

	e := &entry[K, V]{key: key}
	b := t.bucketOf(key)
	t.buckets[b] = append(t.buckets[b], e)
	t.size++
	t.maybeRebuild()

	return &e.value
}

// delete unlinks the entry holding the key, keeping the chain order of
// the remaining entries. Absent keys are a no-op.
func (t *table[K, V]) delete(key K) bool {
	b := t.bucketOf(key)
	for i, e := range t.buckets[b] {
		if e.key != key {
			continue
		}

		t.buckets[b] = slices.Delete(t.buckets[b], i, i+1)
		t.size--
		t.maybeRebuild()

		return true
	}

	return false
}

// maybeRebuild re-establishes capacity/4 <= size <= capacity. Both
// bounds are checked after every mutation; grow and shrink share the
// same target formula, so there is a single rebuild path.
func (t *table[K, V]) maybeRebuild() {
	if t.size > len(t.buckets) || t.size*4 < len(t.buckets) {
		t.rebuild()
	}
}

// rebuild replaces the bucket array with one of length max(minCapacity,
// 2*size) and relinks every entry box into its new chain, preserving the
// relative order of entries that land in the same bucket. Entry payloads
// are never copied, which is what keeps previously returned value
// pointers alive across the swap.
func (t *table[K, V]) rebuild() {
	capacity := max(minCapacity, t.size*2)
	if capacity == len(t.buckets) {
		// Same modulus, same chains. Nothing would move.
		return
	}

	next := make([][]*entry[K, V], capacity)
	for _, chain := range t.buckets {
		for _, e := range chain {
			b := int(t.hashFunc(e.key) % uint64(capacity))
			next[b] = append(next[b], e)
		}
	}

	t.buckets = next
	t.gen++
}

// clear drops every chain, zeroes the size and rebuilds, which collapses
// the capacity back to minCapacity.
func (t *table[K, V]) clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
	t.gen++ // cursors never survive a clear
	t.rebuild()
}

// clone duplicates the full bucket/entry structure. The copy shares the
// hash function but owns fresh entry boxes, so the two tables never
// alias values.
func (t *table[K, V]) clone() table[K, V] {
	next := table[K, V]{
		buckets:  make([][]*entry[K, V], len(t.buckets)),
		size:     t.size,
		hashFunc: t.hashFunc,
	}

	for i, chain := range t.buckets {
		if len(chain) == 0 {
			continue
		}

		next.buckets[i] = make([]*entry[K, V], len(chain))
		for j, e := range chain {
			boxed := *e
			next.buckets[i][j] = &boxed
		}
	}

	return next
}
