package psort

import "github.com/exascience/pargo/parallel"

// forkSlots is a channel semaphore bounding the number of tasks running on
// goroutines of their own.
type forkSlots chan struct{}

func newForkSlots(n int) forkSlots {
	return make(forkSlots, n)
}

// fork runs a and b and returns when both are done. When a slot is free they
// run concurrently, otherwise inline one after the other. Either way they
// must touch disjoint keys. A panic in either is re-raised here.
func (f forkSlots) fork(a, b func()) {
	select {
	case f <- struct{}{}:
		defer func() { <-f }()
		parallel.Do(a, b)
	default:
		a()
		b()
	}
}

// inUse returns the number of slots currently held.
func (f forkSlots) inUse() int {
	return len(f)
}
