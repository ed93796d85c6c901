package psort

import "golang.org/x/exp/constraints"

// DutchFlagPartition rearranges a around pivot into less | equal | greater
// in a single pass and returns the block sizes.
func DutchFlagPartition[K constraints.Ordered](pivot K, a []K) Counts {
	n := len(a)
	p, q, i := -1, n, 0

	// a[0:p+1] == pivot, a[p+1:i] < pivot, a[q:n] > pivot
	for i < q {
		switch {
		case a[i] == pivot:
			p++
			a[i], a[p] = a[p], a[i]
			i++
		case a[i] > pivot:
			q--
			a[i], a[q] = a[q], a[i]
		default:
			i++
		}
	}

	nEq := p + 1
	nLt := q - nEq

	// [equal | less] -> [less | equal]
	reverseSeq(a[:q], min(nEq, nLt))

	return Counts{Less: nLt, Equal: nEq, Greater: n - q}
}
