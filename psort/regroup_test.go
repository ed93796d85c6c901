package psort

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// tagged builds A | B | C where every key encodes its block (0, 1, 2) and
// its position inside the block.
func tagged(na, nb, nc int) []int {
	a := make([]int, 0, na+nb+nc)
	for block, n := range []int{na, nb, nc} {
		for i := range n {
			a = append(a, block*1000+i)
		}
	}
	return a
}

func blockOf(k int) int { return k / 1000 }

func TestRegroup3Exhaustive(t *testing.T) {
	for _, cfg := range []Config{tinyConfig, {ReverseGrain: 1 << 20}} {
		s := newSorter[int](t, cfg)
		for na := 0; na <= 12; na++ {
			for nb := 0; nb <= 12; nb++ {
				for nc := 0; nc <= 12; nc++ {
					orig := tagged(na, nb, nc)
					a := slices.Clone(orig)

					s.regroup3(na, nb, nc, a)

					for i, k := range a {
						want := 1
						switch {
						case i < nc:
							want = 2
						case i >= nc+nb:
							want = 0
						}
						if blockOf(k) != want {
							t.Fatalf("regroup3(%d, %d, %d): a[%d] = %d from block %d, want block %d (%v)",
								na, nb, nc, i, k, blockOf(k), want, a)
						}
					}
					requirePermutation(t, orig, a)
				}
			}
		}
	}
}

func TestRegroup3BadSizes(t *testing.T) {
	s := newSorter[int](t, Config{})
	require.Panics(t, func() { s.regroup3(1, 1, 1, make([]int, 4)) })
	require.Panics(t, func() { s.regroup3(-1, 2, 1, make([]int, 2)) })
}

func TestReversePartial(t *testing.T) {
	for _, cfg := range []Config{tinyConfig, {}} {
		s := newSorter[int](t, cfg)
		for n := 0; n <= 40; n++ {
			for k := 0; k <= n/2; k++ {
				a := tagged(n, 0, 0)
				s.reversePartial(a, k)
				for i := range n {
					want := i
					if i < k || i >= n-k {
						want = n - 1 - i
					}
					require.Equal(t, want, a[i], "n=%d k=%d i=%d", n, k, i)
				}
			}
		}
	}
}

func TestReversePartialTooFar(t *testing.T) {
	s := newSorter[int](t, Config{})
	require.Panics(t, func() { s.reversePartial(make([]int, 5), 3) })
	require.Panics(t, func() { s.reversePartial(make([]int, 5), -1) })
}

func TestReverse(t *testing.T) {
	s := newSorter[int](t, tinyConfig)
	for _, n := range []int{0, 1, 2, 7, 64, 1001} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			a := tagged(n, 0, 0)
			want := slices.Clone(a)
			slices.Reverse(want)
			s.reverse(a)
			require.Equal(t, want, a)
		})
	}
}

func TestMergePartitions(t *testing.T) {
	s := newSorter[int](t, tinyConfig)
	sizes := []int{0, 1, 2, 5}
	for _, n1a := range sizes {
		for _, n1b := range sizes {
			for _, n1c := range sizes {
				for _, n2a := range sizes {
					for _, n2b := range sizes {
						for _, n2c := range sizes {
							c1 := Counts{n1a, n1b, n1c}
							c2 := Counts{n2a, n2b, n2c}
							// less = 0, equal = 1, greater = 2
							var orig []int
							for block, n := range []int{n1a, n1b, n1c, n2a, n2b, n2c} {
								orig = append(orig, slices.Repeat([]int{block % 3}, n)...)
							}
							a := slices.Clone(orig)

							s.mergePartitions(a, c1, c2)

							requirePartitioned(t, orig, a, 1, c1.Add(c2))
						}
					}
				}
			}
		}
	}
}
