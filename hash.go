package chainmap

import (
	"hash/maphash"

	"github.com/zeebo/xxh3"
)

// HashFunc maps a key to a 64-bit hash. The table reduces the hash
// modulo its current capacity, so the whole 64-bit range should be used.
type HashFunc[K comparable] func(K) uint64

// Returns a hash function backed by hash/maphash with the given seed.
func MakeDefaultHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// Returns an XXH3 hash function for string-like keys. Unlike maphash
// seeds, the seed here is a plain integer, so hashes are reproducible
// across processes.
func MakeStringHashFunc[K ~string](seed uint64) HashFunc[K] {
	return func(k K) uint64 {
		return xxh3.HashStringSeed(string(k), seed)
	}
}
