package kruskal

import (
	"math"
	"sync/atomic"
)

// atomicFloat is an atomically-updated float64, used for rho (the
// cross-goroutine distance threshold estimated by the rho-update pass):
// an atomic.Uint64 storing a float64 bit pattern in place of a
// mutex-guarded float.
type atomicFloat struct {
	bits atomic.Uint64
}

func newAtomicFloat(v float64) *atomicFloat {
	f := &atomicFloat{}
	f.bits.Store(math.Float64bits(v))

	return f
}

func (f *atomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }

// Min atomically updates the stored value to min(current, v).
func (f *atomicFloat) Min(v float64) {
	for {
		cur := f.bits.Load()
		curF := math.Float64frombits(cur)
		if v >= curF {
			return
		}
		if f.bits.CompareAndSwap(cur, math.Float64bits(v)) {
			return
		}
	}
}
