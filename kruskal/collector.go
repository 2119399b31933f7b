package kruskal

import (
	"math"
	"sort"
	"sync"

	"github.com/sablegraph/hdbscan/bccp"
	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/unionfind"
	"github.com/sablegraph/hdbscan/wspd"
)

// CollectorPass is the edge-collection WSPD visitor: for every
// well-separated pair within this round's size budget, it runs BCCP under
// mutual reachability and emits an edge when the closest pair's distance
// falls in [rhoLo, rhoHi).
type CollectorPass struct {
	beta         int
	rhoLo, rhoHi float64
	coreDist     []float64
	mu           sync.Mutex
	edges        []unionfind.Edge
}

// NewCollectorPass constructs a CollectorPass for one distance band
// [rhoLo, rhoHi) at the given beta, using coreDist (indexed by original
// point index) for BCCP's mutual-reachability metric.
func NewCollectorPass(beta int, rhoLo, rhoHi float64, coreDist []float64) *CollectorPass {
	return &CollectorPass{beta: beta, rhoLo: rhoLo, rhoHi: rhoHi, coreDist: coreDist}
}

// Start implements wspd.Visitor: a subtree can only still hold unemitted
// edges in this band if its internal upper bound on mutual-reachability
// distance reaches at least rhoLo.
func (p *CollectorPass) Start(n *kdtree.Node) bool {
	return math.Max(n.Diag(), n.CDMax()) >= p.rhoLo
}

// MoveOn implements wspd.Visitor, pruning pairs whose lower bound has
// already passed rhoHi, whose upper bound never reaches rhoLo, or that lie
// wholly within one already-marked component.
func (p *CollectorPass) MoveOn(a, b *kdtree.Node) bool {
	if sameMarkedComponent(a, b) {
		return false
	}
	if lowerBound(a, b) >= p.rhoHi {
		return false
	}

	return upperBound(a, b) >= p.rhoLo
}

// WellSeparated implements wspd.Visitor using the core-distance-aware
// relation, identical to RhoPass.
func (p *CollectorPass) WellSeparated(a, b *kdtree.Node) bool {
	return wspd.Unreachable(a, b, wspd.SeparationConstant)
}

// Run implements wspd.Visitor: only pairs within this round's size budget
// get a BCCP search; the rest are left for a future round at a larger beta.
func (p *CollectorPass) Run(a, b *kdtree.Node) {
	if a.Size()+b.Size() > p.beta {
		return
	}
	pair := bccp.Search(a, b, p.coreDist)
	if pair.Dist < p.rhoLo || pair.Dist >= p.rhoHi {
		return
	}

	u, v := pair.U, pair.V
	if u > v {
		u, v = v, u
	}
	edge := unionfind.Edge{U: u, V: v, Weight: pair.Dist}

	p.mu.Lock()
	p.edges = append(p.edges, edge)
	p.mu.Unlock()
}

// Edges returns the candidate edges collected by this pass, sorted by
// (weight, endpoints). The traversal appends edges in whatever order the
// forked subtree recursions finish, so sorting here is what keeps one
// run's candidate ordering — and with it every downstream tie-break —
// independent of goroutine scheduling.
func (p *CollectorPass) Edges() []unionfind.Edge {
	sort.SliceStable(p.edges, func(i, j int) bool {
		a, b := p.edges[i], p.edges[j]
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if a.U != b.U {
			return a.U < b.U
		}

		return a.V < b.V
	})

	return p.edges
}

// upperBound is a (loose but valid, via the triangle inequality through
// each box's farthest corner) upper bound on mutual-reachability distance
// between any point in a and any point in b.
func upperBound(a, b *kdtree.Node) float64 {
	ub := kdtree.NodeDistance(a, b) + a.Diag() + b.Diag()

	return math.Max(ub, math.Max(a.CDMax(), b.CDMax()))
}
