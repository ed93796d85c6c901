package psort

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
)

// tinyConfig forces every parallel path on small inputs.
var tinyConfig = Config{
	SortGrain:      8,
	PartitionGrain: 4,
	ReverseGrain:   2,
	MergeGrain:     4,
	MaxForks:       8,
}

func newSorter[K constraints.Ordered](t testing.TB, cfg Config) *Sorter[K] {
	t.Helper()
	s, err := New[K](cfg)
	require.NoError(t, err)
	return s
}

func randomKeys(r *rand.Rand, n, maxVal int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = r.IntN(maxVal)
	}
	return keys
}

// requirePartitioned checks the 3-way partition post-condition of a around
// pivot and that a is a permutation of orig.
func requirePartitioned[K constraints.Ordered](t *testing.T, orig, a []K, pivot K, c Counts) {
	t.Helper()
	require.True(t, c.Valid(len(a)), "counts %+v for %d keys", c, len(a))
	for i, k := range a {
		switch {
		case i < c.Less:
			require.Less(t, k, pivot, "a[%d]", i)
		case i < c.Less+c.Equal:
			require.Equal(t, pivot, k, "a[%d]", i)
		default:
			require.Greater(t, k, pivot, "a[%d]", i)
		}
	}
	requirePermutation(t, orig, a)
}

func requirePermutation[K constraints.Ordered](t *testing.T, orig, got []K) {
	t.Helper()
	want := slices.Clone(orig)
	slices.Sort(want)
	have := slices.Clone(got)
	slices.Sort(have)
	require.Equal(t, want, have, "keys were lost or duplicated")
}

func requireSorted[K constraints.Ordered](t *testing.T, orig, got []K) {
	t.Helper()
	require.True(t, slices.IsSorted(got), "result is not sorted")
	requirePermutation(t, orig, got)
}
