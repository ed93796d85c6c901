package psort

import "github.com/cockroachdb/errors"

// Region is a contiguous range [Off, Off+Len) of a key slice.
type Region struct {
	Off, Len int
}

// End returns the exclusive end offset.
func (r Region) End() int { return r.Off + r.Len }

// Sub returns the sub-region starting off keys into r with length n.
func (r Region) Sub(off, n int) Region {
	if off < 0 || n < 0 || off+n > r.Len {
		panic(errors.AssertionFailedf("sub-region [%d,+%d) outside %+v", off, n, r))
	}
	return Region{Off: r.Off + off, Len: n}
}

// Contains reports whether o lies entirely inside r.
func (r Region) Contains(o Region) bool {
	return o.Off >= r.Off && o.End() <= r.End()
}

// Overlaps reports whether r and o share an index. Empty regions overlap
// nothing.
func (r Region) Overlaps(o Region) bool {
	if r.Len == 0 || o.Len == 0 {
		return false
	}
	return r.Off < o.End() && o.Off < r.End()
}

// view returns the keys of r with capacity capped at the region end.
func view[K any](keys []K, r Region) []K {
	return keys[r.Off:r.End():r.End()]
}

// Counts is the result of a 3-way partition.
type Counts struct {
	Less, Equal, Greater int
}

// Total returns Less+Equal+Greater.
func (c Counts) Total() int { return c.Less + c.Equal + c.Greater }

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Less:    c.Less + o.Less,
		Equal:   c.Equal + o.Equal,
		Greater: c.Greater + o.Greater,
	}
}

// Valid reports whether c describes a partition of exactly n keys.
func (c Counts) Valid(n int) bool {
	return c.Less >= 0 && c.Equal >= 0 && c.Greater >= 0 && c.Total() == n
}

// Regions splits r into its less, equal and greater sub-regions.
func (c Counts) Regions(r Region) (lt, eq, gt Region) {
	lt = r.Sub(0, c.Less)
	eq = r.Sub(c.Less, c.Equal)
	gt = r.Sub(c.Less+c.Equal, c.Greater)
	return lt, eq, gt
}
