package kdtree

import "math"

// NodeDistance returns the Euclidean lower bound on the distance between any
// point in a's subtree and any point in b's subtree: the gap between their
// bounding boxes along each dimension, zero where the boxes overlap on that
// axis. This is the quantity WSPD's separation test and bccp's
// branch-and-bound pruning are both built on.
func NodeDistance(a, b *Node) float64 {
	var sumSq float64
	for d := 0; d < a.Dim(); d++ {
		gap := 0.0
		switch {
		case a.boxMax[d] < b.boxMin[d]:
			gap = b.boxMin[d] - a.boxMax[d]
		case b.boxMax[d] < a.boxMin[d]:
			gap = a.boxMin[d] - b.boxMax[d]
		}
		sumSq += gap * gap
	}

	return math.Sqrt(sumSq)
}
