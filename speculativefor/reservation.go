package speculativefor

import (
	"math"
	"sync/atomic"
)

// NoReservation is the sentinel slot value meaning a slot has never been
// reserved, or has been reset.
const NoReservation = math.MaxInt64

// Reservation is a single atomic arbitration slot, keyed by whatever
// resource the caller associates it with (an endpoint, a DSU root, ...). It
// records the minimum index among all iterations that have asked for the
// resource this round, so the lowest-indexed claimant always wins ties.
type Reservation struct {
	slot atomic.Int64
}

// NewReservation returns a Reservation in its unclaimed state.
func NewReservation() *Reservation {
	r := &Reservation{}
	r.slot.Store(NoReservation)

	return r
}

// Reserve claims the slot for i if i is smaller than whatever index
// currently holds it (a monotone-minimum CAS loop); it never un-claims the
// slot for a smaller index that already holds it.
func (r *Reservation) Reserve(i int) {
	v := int64(i)
	for {
		cur := r.slot.Load()
		if cur <= v {
			return
		}
		if r.slot.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Check reports whether i currently holds the slot.
func (r *Reservation) Check(i int) bool {
	return r.slot.Load() == int64(i)
}

// CheckReset reports whether i currently holds the slot and, if so, resets
// it to NoReservation so a later round starts from a clean slate.
func (r *Reservation) CheckReset(i int) bool {
	return r.slot.CompareAndSwap(int64(i), NoReservation)
}

// Reset unconditionally clears the slot back to NoReservation. Run itself
// never calls it, and batched Kruskal allocates fresh slots for each band
// instead.
func (r *Reservation) Reset() {
	r.slot.Store(NoReservation)
}
