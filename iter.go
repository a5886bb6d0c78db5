package chainmap

import "iter"

// Iterator is a cursor (bucket, offset) into a table: "the offset-th
// entry of bucket number bucket". The end-of-table cursor is (capacity,
// 0). Iterators over the same container are comparable with ==.
//
// A cursor is tied to the bucket layout it was created under: any
// rebuild (triggered by Insert, Delete, Ref or Clear) invalidates it,
// and dereferencing an invalidated cursor panics. Deleting the exact
// entry a cursor points at shifts the cursor onto the next entry of the
// chain without any way to detect it, so don't hold cursors across
// deletes. Value pointers obtained before a rebuild stay valid; it's
// only the cursor coordinates that go stale.
type Iterator[K comparable, V any] struct {
	t      *table[K, V]
	gen    uint64
	bucket int
	offset int
}

// normalize skips exhausted buckets until the cursor addresses a live
// entry or reaches the end of the table.
func (it *Iterator[K, V]) normalize() {
	for it.bucket < len(it.t.buckets) && it.offset == len(it.t.buckets[it.bucket]) {
		it.offset = 0
		it.bucket++
	}
}

func (it Iterator[K, V]) check() {
	if it.t == nil || it.gen != it.t.gen {
		panic("chainmap: use of an iterator invalidated by a rebuild")
	}
	if it.bucket >= len(it.t.buckets) {
		panic("chainmap: dereference of the end iterator")
	}
}

// Valid reports whether the cursor addresses a live entry. The end
// cursor and any cursor created before the last rebuild are not valid.
func (it Iterator[K, V]) Valid() bool {
	return it.t != nil && it.gen == it.t.gen && it.bucket < len(it.t.buckets)
}

// Key returns the key under the cursor.
func (it Iterator[K, V]) Key() K {
	it.check()
	return it.t.buckets[it.bucket][it.offset].key
}

// Value returns a mutable reference to the value under the cursor.
// Writing through it never moves the entry, since placement depends on
// the key only.
func (it Iterator[K, V]) Value() *V {
	it.check()
	return &it.t.buckets[it.bucket][it.offset].value
}

// Next returns the normalized cursor advanced by one entry.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	it.check()
	it.offset++
	it.normalize()
	return it
}

// begin is the normalized (0, 0) cursor; on an empty table it equals
// end.
func (t *table[K, V]) begin() Iterator[K, V] {
	it := Iterator[K, V]{t: t, gen: t.gen}
	it.normalize()
	return it
}

func (t *table[K, V]) end() Iterator[K, V] {
	return Iterator[K, V]{t: t, gen: t.gen, bucket: len(t.buckets)}
}

// all walks the table in bucket order: bucket 0's chain front to back,
// then bucket 1's, and so on. The order is deterministic for a given
// table state, is not insertion order globally, and changes across
// rebuilds.
func (t *table[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, chain := range t.buckets {
			for _, e := range chain {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
