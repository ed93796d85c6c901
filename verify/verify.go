// Package verify checks the output of a sort: ordering, element-wise
// equality, and an order-independent multiset digest that detects lost or
// duplicated keys without keeping a copy of the input around.
package verify

import (
	"github.com/cockroachdb/errors"
	"github.com/exascience/pargo/speculative"
	"golang.org/x/exp/constraints"
)

// grain is the size below which checks run sequentially.
const grain = 1 << 14

// ErrUnsorted and ErrMismatch are the failures reported by CheckSorted and
// Equal.
var (
	ErrUnsorted = errors.New("verify: keys are not sorted")
	ErrMismatch = errors.New("verify: keys differ")
)

// IsSorted reports whether keys is in ascending order. Large inputs are
// checked in parallel and stop early once a descent is found.
func IsSorted[K constraints.Ordered](keys []K) bool {
	if len(keys) < 2 {
		return true
	}
	var test func(low, high int) bool
	test = func(low, high int) bool {
		if high-low < grain {
			for i := max(low, 1); i < high; i++ {
				if keys[i] < keys[i-1] {
					return false
				}
			}
			return true
		}
		mid := low + (high-low)/2
		return speculative.And(
			func() bool { return test(low, mid) },
			func() bool { return test(mid, high) },
		)
	}
	return test(0, len(keys))
}

// CheckSorted returns nil if keys is ascending and otherwise an error naming
// the first descent.
func CheckSorted[K constraints.Ordered](keys []K) error {
	if IsSorted(keys) {
		return nil
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			return errors.Wrapf(ErrUnsorted, "keys[%d] = %v > keys[%d] = %v", i-1, keys[i-1], i, keys[i])
		}
	}
	return nil
}

// Equal returns nil if got and want hold the same keys in the same order.
func Equal[K comparable](got, want []K) error {
	if len(got) != len(want) {
		return errors.Wrapf(ErrMismatch, "len %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return errors.Wrapf(ErrMismatch, "keys[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	return nil
}
