package psort

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// PivotSource returns an index in [0, n). It is called concurrently.
type PivotSource func(n int) int

// Sorter sorts key slices in place with the parallel 3-way quicksort.
// A Sorter may be used by several goroutines at once; they share its fork
// slots.
type Sorter[K constraints.Ordered] struct {
	cfg   Config
	seq   func([]K)
	pivot PivotSource
	slots forkSlots
}

// New returns a Sorter for cfg. Zero fields of cfg take their defaults.
func New[K constraints.Ordered](cfg Config) (*Sorter[K], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Sorter[K]{
		cfg:   cfg,
		seq:   SequentialSort[K],
		pivot: rand.IntN,
		slots: newForkSlots(cfg.MaxForks),
	}, nil
}

// WithSequentialSort replaces the base case sort. fn must sort its argument
// ascending in place.
func (s *Sorter[K]) WithSequentialSort(fn func([]K)) *Sorter[K] {
	s.seq = fn
	return s
}

// WithPivotSource replaces the random pivot index source.
func (s *Sorter[K]) WithPivotSource(src PivotSource) *Sorter[K] {
	s.pivot = src
	return s
}

// Config returns the effective configuration.
func (s *Sorter[K]) Config() Config { return s.cfg }

// Sort sorts keys ascending in place.
func (s *Sorter[K]) Sort(keys []K) {
	s.sortRegion(keys, Region{Len: len(keys)})
}

// SortN sorts keys[:n] ascending in place. Invalid arguments are rejected
// before any key is moved.
func (s *Sorter[K]) SortN(n int, keys []K) error {
	if err := checkArgs(n, keys); err != nil {
		return err
	}
	s.sortRegion(keys, Region{Len: n})
	return nil
}

func (s *Sorter[K]) sortRegion(keys []K, r Region) {
	if r.Len < s.cfg.SortGrain {
		s.seq(view(keys, r))
		return
	}

	i := s.pivot(r.Len)
	if i < 0 || i >= r.Len {
		panic(errors.AssertionFailedf("pivot index %d outside [0, %d)", i, r.Len))
	}
	a := view(keys, r)
	c := s.Partition(a[i], a)
	mustCounts(c, r.Len, "quicksort")
	if c.Equal == 0 {
		// The pivot came from the region, so this only happens when keys
		// are not totally ordered (NaN).
		panic(errors.AssertionFailedf("quicksort: pivot %v not found in its own region", a[i]))
	}

	lt, _, gt := c.Regions(r)
	if lt.Overlaps(gt) {
		panic(errors.AssertionFailedf("quicksort: regions %+v and %+v overlap", lt, gt))
	}
	s.slots.fork(
		func() { s.sortRegion(keys, lt) },
		func() { s.sortRegion(keys, gt) },
	)
}

// Partition rearranges a around pivot into less | equal | greater and
// returns the block sizes. Regions longer than Config.PartitionGrain are
// split in half, both halves are partitioned concurrently and then merged in
// place.
func (s *Sorter[K]) Partition(pivot K, a []K) Counts {
	n := len(a)
	if n <= s.cfg.PartitionGrain {
		return DutchFlagPartition(pivot, a)
	}

	mid := n >> 1
	var c1, c2 Counts
	s.slots.fork(
		func() { c1 = s.Partition(pivot, a[:mid:mid]) },
		func() { c2 = s.Partition(pivot, a[mid:]) },
	)
	mustCounts(c1, mid, "partition (lower half)")
	mustCounts(c2, n-mid, "partition (upper half)")

	s.mergePartitions(a, c1, c2)
	return c1.Add(c2)
}

var defaultConfig = DefaultConfig()

// Sort sorts keys ascending in place with the default configuration.
func Sort[K constraints.Ordered](keys []K) {
	s, _ := New[K](defaultConfig)
	s.Sort(keys)
}

// ParallelSort sorts keys[:n] ascending in place with the default
// configuration.
func ParallelSort[K constraints.Ordered](n int, keys []K) error {
	s, err := New[K](defaultConfig)
	if err != nil {
		return err
	}
	return s.SortN(n, keys)
}
