package chainmap

import (
	"maps"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMap_Basic(t *testing.T) {
	hm := New[string, int]()

	require.True(t, hm.Empty())

	ok := hm.Insert("foo", 42)
	require.True(t, ok)
	require.Equal(t, 1, hm.Len())

	v, ok := hm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// Inserting an existing key keeps the first value.
	ok = hm.Insert("foo", 100)
	require.False(t, ok)
	require.Equal(t, 1, hm.Len())

	v, ok = hm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = hm.Get("bar")
	assert.False(t, ok)

	deleted := hm.Delete("foo")
	assert.True(t, deleted)
	assert.True(t, hm.Empty())

	deleted = hm.Delete("foo")
	assert.False(t, deleted)
}

func TestHashMap_At(t *testing.T) {
	hm := New[string, int]()
	hm.Insert("foo", 42)

	v, err := hm.At("foo")
	require.NoError(t, err)
	require.Equal(t, 42, *v)

	// At hands out a mutable reference.
	*v = 43
	got, _ := hm.Get("foo")
	assert.Equal(t, 43, got)

	_, err = hm.At("bar")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, hm.Len())
}

func TestHashMap_Ref(t *testing.T) {
	hm := New[string, []int]()

	// Absent key: a zero value is inserted first.
	v := hm.Ref("foo")
	require.NotNil(t, v)
	require.Nil(t, *v)
	require.Equal(t, 1, hm.Len())

	*v = append(*v, 1, 2)

	got, ok := hm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got)

	// Present key: same entry, no size change.
	again := hm.Ref("foo")
	assert.Same(t, v, again)
	assert.Equal(t, 1, hm.Len())
}

func TestHashMap_ReferenceStability(t *testing.T) {
	hm := New[int, int]()
	hm.Insert(1, 100)

	v, err := hm.At(1)
	require.NoError(t, err)

	// Enough inserts to force several rebuilds.
	stats := hm.Stats()
	for i := 2; i <= 200; i++ {
		hm.Insert(i, i)
	}
	require.Greater(t, hm.Stats().Capacity, stats.Capacity)

	require.Equal(t, 100, *v)

	// The reference is still the live value of its key.
	*v = 7
	got, _ := hm.Get(1)
	assert.Equal(t, 7, got)
}

func TestHashMap_GrowShrinkScenario(t *testing.T) {
	hm := New[int, int]()
	require.Equal(t, minCapacity, hm.Stats().Capacity)

	for i := 1; i <= 20; i++ {
		hm.Insert(i, i*i)

		if i <= 10 {
			require.Equal(t, 10, hm.Stats().Capacity)
		} else {
			// The 11th insert rebuilt to max(10, 2*11) = 22.
			require.Equal(t, 22, hm.Stats().Capacity)
		}
	}
	require.Equal(t, 20, hm.Len())

	v, err := hm.At(15)
	require.NoError(t, err)
	require.Equal(t, 225, *v)

	for i := 1; i <= 17; i++ {
		require.True(t, hm.Delete(i))
	}

	// The shrink fired once size*4 dropped below 22, collapsing the
	// capacity to the minimum.
	require.Equal(t, 3, hm.Len())
	require.Equal(t, minCapacity, hm.Stats().Capacity)

	for i := 18; i <= 20; i++ {
		v, ok := hm.Get(i)
		require.True(t, ok)
		require.Equal(t, i*i, v)
	}
}

func TestHashMap_Collect(t *testing.T) {
	src := map[string]int{"a": 1, "b": 2, "c": 3}

	hm := Collect(maps.All(src))

	require.Equal(t, 3, hm.Len())
	for k, want := range src {
		v, ok := hm.Get(k)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestHashMap_Collect_DuplicatesKeepFirst(t *testing.T) {
	seq := func(yield func(string, int) bool) {
		for _, p := range []Pair[string, int]{
			{"a", 1},
			{"b", 2},
			{"a", 99},
		} {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}

	hm := Collect(seq)

	require.Equal(t, 2, hm.Len())
	v, _ := hm.Get("a")
	assert.Equal(t, 1, v)
}

func TestHashMap_FromPairs(t *testing.T) {
	hm := FromPairs([]Pair[string, int]{
		{"a", 1},
		{"b", 2},
		{"a", 99},
	})

	require.Equal(t, 2, hm.Len())

	v, _ := hm.Get("a")
	assert.Equal(t, 1, v)
	v, _ = hm.Get("b")
	assert.Equal(t, 2, v)
}

func TestHashMap_Clear(t *testing.T) {
	hm := New[int, int]()
	for i := 1; i <= 20; i++ {
		hm.Insert(i, i)
	}

	hm.Clear()

	require.True(t, hm.Empty())
	require.Equal(t, minCapacity, hm.Stats().Capacity)

	_, ok := hm.Get(1)
	require.False(t, ok)

	// The map is reusable after a clear.
	require.True(t, hm.Insert(1, 1))
	require.Equal(t, 1, hm.Len())
}

func TestHashMap_Clone(t *testing.T) {
	hm := New[string, int]()
	hm.Insert("a", 1)
	hm.Insert("b", 2)

	cp := hm.Clone()

	require.Equal(t, hm.Len(), cp.Len())
	require.True(t, hm.Equal(cp))

	// Mutations don't leak between the original and the copy.
	cp.Insert("c", 3)
	v := cp.Ref("a")
	*v = -1

	require.Equal(t, 2, hm.Len())
	got, _ := hm.Get("a")
	assert.Equal(t, 1, got)
}

func TestHashMap_Equal(t *testing.T) {
	a := New[string, []int]()
	a.Insert("x", []int{1, 2})
	a.Insert("y", nil)

	// Built in a different order, ends up with a different layout.
	b := FromPairs([]Pair[string, []int]{
		{"y", nil},
		{"x", []int{1, 2}},
	})

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))

	v := b.Ref("x")
	*v = []int{9}
	require.False(t, a.Equal(b))

	*v = []int{1, 2}
	require.True(t, a.Equal(b))

	// cmp options pass through.
	c := a.Clone()
	cv := c.Ref("y")
	*cv = []int{}
	require.False(t, a.Equal(c))
	require.True(t, a.Equal(c, cmpopts.EquateEmpty()))
}

func TestHashMap_WithHashFunc(t *testing.T) {
	customHash := func(k int) uint64 {
		return uint64(k * 31)
	}

	hm := New(WithHashFunc[int, int](customHash))

	hm.Insert(1, 100)
	v, ok := hm.Get(1)
	require.True(t, ok)
	assert.Equal(t, 100, v)

	require.NotNil(t, hm.HashFunc())
	assert.Equal(t, uint64(62), hm.HashFunc()(2))
}

func TestHashMap_Stats(t *testing.T) {
	hm := New[int, int]()

	stats := hm.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, minCapacity, stats.Capacity)
	assert.Zero(t, stats.LoadFactor)

	for i := 1; i <= 5; i++ {
		hm.Insert(i, i)
	}

	stats = hm.Stats()
	assert.Equal(t, 5, stats.Size)
	assert.Equal(t, minCapacity, stats.Capacity)
	assert.InDelta(t, 0.5, stats.LoadFactor, 1e-9)
}
