package psort

import "golang.org/x/exp/constraints"

// insertionThreshold: slices this short are insertion sorted.
const insertionThreshold = 16

// SequentialSort sorts a ascending in place on the calling goroutine. It is
// the default base case of the parallel sorts.
func SequentialSort[K constraints.Ordered](a []K) {
	if len(a) < 2 {
		return
	}
	quickSortSeq(a, 0, len(a)-1)
}

func quickSortSeq[K constraints.Ordered](a []K, low, high int) {
	for low < high {
		if high-low+1 <= insertionThreshold {
			insertionSort(a, low, high)
			return
		}

		lt, gt := partition3Way(a, low, high)

		// Recurse into the smaller side, loop on the larger one.
		if lt-low < high-gt {
			quickSortSeq(a, low, lt-1)
			low = gt + 1
		} else {
			quickSortSeq(a, gt+1, high)
			high = lt - 1
		}
	}
}

// partition3Way partitions a[low:high+1] around its median-of-three and
// returns the bounds of the equal block a[lt:gt+1].
func partition3Way[K constraints.Ordered](a []K, low, high int) (int, int) {
	medianOfThree(a, low, low+(high-low)/2, high)
	pivot := a[low]

	lt := low      // a[low:lt] < pivot
	i := low + 1   // a[lt:i] == pivot
	gt := high + 1 // a[gt:high+1] > pivot

	for i < gt {
		switch {
		case a[i] < pivot:
			a[lt], a[i] = a[i], a[lt]
			lt++
			i++
		case a[i] > pivot:
			gt--
			a[i], a[gt] = a[gt], a[i]
		default:
			i++
		}
	}

	return lt, gt - 1
}

// medianOfThree moves the median of a[x], a[y], a[z] to a[x].
func medianOfThree[K constraints.Ordered](a []K, x, y, z int) {
	if a[x] > a[y] {
		a[x], a[y] = a[y], a[x]
	}
	if a[y] > a[z] {
		a[y], a[z] = a[z], a[y]
	}
	if a[x] > a[y] {
		a[x], a[y] = a[y], a[x]
	}
	a[x], a[y] = a[y], a[x]
}

func insertionSort[K constraints.Ordered](a []K, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := a[i]
		j := i - 1
		for j >= low && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}
