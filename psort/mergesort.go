package psort

import "golang.org/x/exp/constraints"

// MergeSort sorts keys ascending with a parallel out-of-place mergesort.
// Unlike Sort it allocates a scratch slice of len(keys) per call.
func (s *Sorter[K]) MergeSort(keys []K) {
	if len(keys) < s.mergeGrain() {
		s.seq(keys)
		return
	}
	s.mergeSort(keys, make([]K, len(keys)), false)
}

func (s *Sorter[K]) mergeGrain() int {
	return max(s.cfg.MergeGrain, 2)
}

// mergeSort sorts a. The result is written to b when into is set and left
// in a otherwise. a and b have the same length and do not alias.
func (s *Sorter[K]) mergeSort(a, b []K, into bool) {
	n := len(a)
	if n < s.mergeGrain() {
		s.seq(a)
		if into {
			copy(b, a)
		}
		return
	}

	mid := n >> 1
	s.slots.fork(
		func() { s.mergeSort(a[:mid:mid], b[:mid:mid], !into) },
		func() { s.mergeSort(a[mid:], b[mid:], !into) },
	)
	if into {
		merge(b, a[:mid], a[mid:])
	} else {
		merge(a, b[:mid], b[mid:])
	}
}

// merge writes the sorted union of left and right to dst.
func merge[K constraints.Ordered](dst, left, right []K) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
