package wspd

import (
	"math"

	"github.com/sablegraph/hdbscan/kdtree"
)

// centerDistance returns the Euclidean distance between the bounding-box
// centers of a and b.
func centerDistance(a, b *kdtree.Node) float64 {
	var sumSq float64
	for d := 0; d < a.Dim(); d++ {
		ca := (a.BoxMin(d) + a.BoxMax(d)) / 2
		cb := (b.BoxMin(d) + b.BoxMax(d)) / 2
		diff := ca - cb
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq)
}

// GeometricSeparated implements the classical baseline s-separation
// test: treating a and b's bounding boxes as spheres of diameter equal to
// their box diagonal, the pair is separated iff the gap between the
// spheres is at least s times the larger sphere's radius.
func GeometricSeparated(a, b *kdtree.Node, s float64) bool {
	da, db := a.Diag(), b.Diag()
	c := centerDistance(a, b)
	maxD := math.Max(da, db)

	return c-da/2-db/2 >= s*maxD/2
}

// Unreachable implements the core-distance-aware separation
// relation: the pair is "unreachable" (no mutual-reachability MST edge can
// connect these two subtrees at the current distance band) iff the
// core-distance-widened lower bound on mutual-reachability distance between
// them is at least the core-distance-widened upper bound on their
// internal diameters, or iff they are geometrically s-separated outright.
// The WSPD built on this relation is guaranteed to cover every MST edge of
// the mutual-reachability graph.
func Unreachable(a, b *kdtree.Node, s float64) bool {
	da, db := a.Diag(), b.Diag()
	c := centerDistance(a, b)
	r := math.Max(da, db) / 2
	diam := math.Max(2*r, math.Max(a.CDMax(), b.CDMax()))

	cPrime := c - da/2 - db/2
	cPrime = math.Max(cPrime, math.Max(a.CDMin(), b.CDMin()))

	return cPrime >= diam || GeometricSeparated(a, b, s)
}
