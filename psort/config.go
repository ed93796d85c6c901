package psort

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// Default tuning parameters.
const (
	DefaultSortGrain      = 1024
	DefaultPartitionGrain = 1 << 20
	DefaultReverseGrain   = 1 << 16
	DefaultMergeGrain     = 1024
)

// Config holds the tuning parameters of a Sorter. Zero fields take their
// defaults.
type Config struct {
	// SortGrain: regions shorter than this are handed to the sequential sort.
	SortGrain int
	// PartitionGrain: regions at most this long are partitioned sequentially.
	PartitionGrain int
	// ReverseGrain: partial reversals with fewer swaps run inline.
	ReverseGrain int
	// MergeGrain: mergesort base case size.
	MergeGrain int
	// MaxForks bounds the number of concurrently forked tasks.
	// Zero means runtime.GOMAXPROCS(0).
	MaxForks int
}

// DefaultConfig returns the configuration used by Sort and ParallelSort.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.SortGrain == 0 {
		c.SortGrain = DefaultSortGrain
	}
	if c.PartitionGrain == 0 {
		c.PartitionGrain = DefaultPartitionGrain
	}
	if c.ReverseGrain == 0 {
		c.ReverseGrain = DefaultReverseGrain
	}
	if c.MergeGrain == 0 {
		c.MergeGrain = DefaultMergeGrain
	}
	if c.MaxForks == 0 {
		c.MaxForks = runtime.GOMAXPROCS(0)
	}
	return c
}

// Validate reports whether every field is in range. Zero values are valid
// and mean "use the default".
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"SortGrain", c.SortGrain},
		{"PartitionGrain", c.PartitionGrain},
		{"ReverseGrain", c.ReverseGrain},
		{"MergeGrain", c.MergeGrain},
		{"MaxForks", c.MaxForks},
	} {
		if f.v < 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s = %d", f.name, f.v)
		}
	}
	return nil
}
