// Package kruskal implements the two WSPD visitor passes that drive one
// band of the HDBSCAN* outer loop (the rho estimator and the edge
// collector) plus the batched speculative Kruskal step that commits a
// band's candidate edges into the shared union-find.
package kruskal

import (
	"math"

	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/wspd"
)

// RhoPass is the threshold-estimation WSPD visitor: it estimates rhoHi, the
// next distance band's upper bound, without emitting any edges itself.
type RhoPass struct {
	beta int
	rho  *atomicFloat
}

// NewRhoPass constructs a RhoPass for the given beta, with rho initialized
// to +Inf.
func NewRhoPass(beta int) *RhoPass {
	return &RhoPass{
		beta: beta,
		rho:  newAtomicFloat(math.Inf(1)),
	}
}

// Start implements wspd.Visitor: only subtrees larger than beta contribute,
// since pairs at or below beta are the edge collector's job this round.
func (p *RhoPass) Start(n *kdtree.Node) bool { return n.Size() > p.beta }

// MoveOn implements wspd.Visitor.
func (p *RhoPass) MoveOn(a, b *kdtree.Node) bool {
	if sameMarkedComponent(a, b) {
		return false
	}
	if a.Size()+b.Size() <= p.beta {
		return false
	}
	lb := lowerBound(a, b)

	return lb < p.rho.Load()
}

// WellSeparated implements wspd.Visitor using the core-distance-aware
// relation so the traversal only stops at pairs that
// truly cannot contribute any closer mutual-reachability MST edge.
func (p *RhoPass) WellSeparated(a, b *kdtree.Node) bool {
	return wspd.Unreachable(a, b, wspd.SeparationConstant)
}

// Run implements wspd.Visitor: updates rho to the smaller of its current
// value and this pair's lower bound on mutual-reachability distance.
func (p *RhoPass) Run(a, b *kdtree.Node) {
	p.rho.Min(lowerBound(a, b))
}

// RhoHi returns the estimated next distance-band upper bound after the
// traversal has completed.
func (p *RhoPass) RhoHi() float64 { return p.rho.Load() }

// lowerBound is the node-distance lower bound on mutual-reachability
// distance between any point in a and any point in b: the Euclidean
// node-distance widened by each side's minimum core distance.
func lowerBound(a, b *kdtree.Node) float64 {
	return math.Max(kdtree.NodeDistance(a, b), math.Max(a.CDMin(), b.CDMin()))
}

// sameMarkedComponent reports whether both nodes already carry the same
// non-negative component_id, meaning mark has proven every point in a and
// b is already in one DSU component — any edge between them would be
// redundant.
func sameMarkedComponent(a, b *kdtree.Node) bool {
	return a.HasComponent() && b.HasComponent() && a.ComponentID() == b.ComponentID()
}
