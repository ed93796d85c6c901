package psort

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/exascience/pargo/parallel"
)

// reverseSeq swaps a[i] and a[len(a)-1-i] for i in [0,k).
func reverseSeq[K any](a []K, k int) {
	for i, j := 0, len(a)-1; i < k; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// reversePartial swaps a[i] and a[len(a)-1-i] for i in [0,k). Since
// k <= len(a)/2 no two swaps touch the same index, so large k is split into
// batches that run in parallel.
func (s *Sorter[K]) reversePartial(a []K, k int) {
	n := len(a)
	if k < 0 || k > n>>1 {
		panic(errors.AssertionFailedf("reversePartial: k = %d, len = %d", k, n))
	}
	if k < s.cfg.ReverseGrain {
		reverseSeq(a, k)
		return
	}
	batches := min(k/s.cfg.ReverseGrain, 4*runtime.GOMAXPROCS(0))
	parallel.Range(0, k, batches, func(low, high int) {
		for i := low; i < high; i++ {
			a[i], a[n-1-i] = a[n-1-i], a[i]
		}
	})
}

// reverse reverses a in place.
func (s *Sorter[K]) reverse(a []K) {
	s.reversePartial(a, len(a)>>1)
}

// regroup3 turns A | B | C into C | B | A, where len(A) = na, len(B) = nb
// and len(C) = nc. Only block membership is preserved, not the order inside
// a block.
func (s *Sorter[K]) regroup3(na, nb, nc int, a []K) {
	if na < 0 || nb < 0 || nc < 0 || na+nb+nc != len(a) {
		panic(errors.AssertionFailedf("regroup3: sizes (%d, %d, %d) for %d keys", na, nb, nc, len(a)))
	}
	if na <= nc {
		// {C_hi} | B | C_lo | {A}
		s.reversePartial(a, na)
		// {C_hi} | {C_lo} | B | {A}
		s.reversePartial(a[na:nb+nc], min(nb, nc-na))
	} else {
		// {C} | A_hi | B | {A_lo}
		s.reversePartial(a, nc)
		// {C} | {B} | A_hi | {A_lo}
		s.reversePartial(a[nc:na+nb], min(nb, na-nc))
	}
}

// mergePartitions merges two adjacent partitions of a
//
//	A1 | B1 | C1 | A2 | B2 | C2
//
// into a single one
//
//	A1 A2 | B2 B1 | C1 C2
func (s *Sorter[K]) mergePartitions(a []K, c1, c2 Counts) {
	// A1 | {A2} | {C1} | {B1} | B2 | C2
	s.regroup3(c1.Equal, c1.Greater, c2.Less, a[c1.Less:c1.Total()+c2.Less])
	// A1 | A2 | {B2} | {B1} | {C1} | C2
	s.regroup3(c1.Greater, c1.Equal, c2.Equal, a[c1.Less+c2.Less:c1.Total()+c2.Less+c2.Equal])
}
