package psort

import "github.com/cockroachdb/errors"

// Precondition errors returned before any key is touched.
var (
	ErrNegativeLength = errors.New("psort: negative length")
	ErrNilKeys        = errors.New("psort: nil key slice")
	ErrShortKeys      = errors.New("psort: length exceeds key slice")
	ErrInvalidConfig  = errors.New("psort: invalid config")
)

// checkArgs validates the arguments of SortN.
func checkArgs[K any](n int, keys []K) error {
	switch {
	case n < 0:
		return errors.Wrapf(ErrNegativeLength, "n = %d", n)
	case keys == nil && n > 0:
		return errors.Wrapf(ErrNilKeys, "n = %d", n)
	case n > len(keys):
		return errors.Wrapf(ErrShortKeys, "n = %d, len(keys) = %d", n, len(keys))
	}
	return nil
}

// mustCounts panics if c is not a valid partition of n keys. A failure here
// means the partition or regroup logic is broken, so the sort is aborted
// rather than left with a corrupted ordering.
func mustCounts(c Counts, n int, where string) {
	if !c.Valid(n) {
		panic(errors.AssertionFailedf("%s: counts %+v do not partition %d keys", where, c, n))
	}
}
