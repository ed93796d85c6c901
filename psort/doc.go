// Package psort provides an in-place parallel quicksort built on a fully
// parallel 3-way partition.
//
// # Algorithm
//
// A region is partitioned around a pivot into less | equal | greater blocks.
// Large regions are split in half, both halves are partitioned concurrently
// around the same pivot, and the two triples
//
//	A1 | B1 | C1 | A2 | B2 | C2
//
// are merged into
//
//	A1 A2 | B2 B1 | C1 C2
//
// with two regroup3 calls. Each regroup3 is a composition of partial
// reversals, so the merge needs no scratch memory and its swaps can run in
// parallel. The quicksort then recurses on the less and greater regions
// concurrently. The equal region is already in its final place.
//
// Concurrent tasks always operate on disjoint sub-slices whose capacity is
// capped at the region end, so the key slice needs no locking.
//
// # Example Usage
//
//	keys := []uint64{5, 3, 3, 1, 4}
//	psort.Sort(keys) // [1 3 3 4 5]
//
//	s, err := psort.New[uint64](psort.Config{PartitionGrain: 1 << 16})
//	if err != nil {
//	    return err
//	}
//	err = s.SortN(n, keys)
//
// # Tuning
//
// All cutoffs live in Config. The defaults (1024 for the quicksort base
// case, 1<<20 for sequential partitioning) suit commodity multicore CPUs.
//
// MergeSort is provided as an out-of-place alternative. It allocates one
// scratch slice of len(keys) per call.
package psort
