// Package quickselect provides in-place k-th order statistic selection,
// used by kdtree to find the median point along the current split axis
// without fully sorting the subtree at every level.
package quickselect

import (
	"math/rand"
)

// Select reorders items in place so that items[k] holds the value it would
// hold if items were fully sorted according to less, and returns that value.
// items[:k] contains only values less-or-equal (by less) than items[k];
// items[k+1:] only greater-or-equal. less must be strict (a<b, not a<=b);
// a caller that needs the same left/right membership on every run despite
// equal keys should fold a tie-break into less so it is a total order.
//
// Select panics if k is outside [0, len(items)). Complexity: expected O(n)
// via a randomized pivot (Hoare/Lomuto-style in-place partition).
func Select[T any](items []T, k int, less func(a, b T) bool) T {
	if k < 0 || k >= len(items) {
		panic("quickselect: k out of range")
	}
	lo, hi := 0, len(items)-1
	for {
		if lo == hi {
			return items[lo]
		}
		pivotIdx := lo + rand.Intn(hi-lo+1)
		pivotIdx = partition(items, lo, hi, pivotIdx, less)
		switch {
		case k == pivotIdx:
			return items[k]
		case k < pivotIdx:
			hi = pivotIdx - 1
		default:
			lo = pivotIdx + 1
		}
	}
}

// partition moves items[pivotIdx] to its final sorted position within
// items[lo:hi+1] and returns that position. Every element strictly less
// than the pivot (by less) ends up to its left, everything else to its
// right.
func partition[T any](items []T, lo, hi, pivotIdx int, less func(a, b T) bool) int {
	pivot := items[pivotIdx]
	items[pivotIdx], items[hi] = items[hi], items[pivotIdx]
	store := lo
	for i := lo; i < hi; i++ {
		if less(items[i], pivot) {
			items[i], items[store] = items[store], items[i]
			store++
		}
	}
	items[hi], items[store] = items[store], items[hi]

	return store
}
