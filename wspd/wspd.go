// Package wspd implements the well-separated pair decomposition
// traversal: a recursive driver, parameterized by a visitor, that
// walks a kdtree.Tree emitting node pairs once they satisfy the visitor's
// own separation predicate. Two concrete separation tests are provided —
// GeometricSeparated (the classical s-WSPD bound) and Unreachable (the
// core-distance-aware relation whose WSPD is guaranteed to contain every
// mutual-reachability MST edge) — for callers (kruskal's rho estimator and
// edge collector) to build their Visitor.WellSeparated on top of.
package wspd

import (
	"errors"
	"fmt"

	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/kdtree"
)

// SeparationConstant is the separation constant s: the gap between a
// pair's bounding spheres must be at least s times the larger sphere's
// radius for the pair to count as well-separated.
const SeparationConstant = 2.0

// ErrInvariantViolated indicates computeWSPD reached two leaves that were
// not well-separated, signaling coincident
// points past tolerance or a core-distance bound bug.
var ErrInvariantViolated = errors.New("wspd: two leaves are not well-separated")

// Visitor parameterizes one WSPD traversal pass. Start decides whether a
// node's subtree may contribute pairs at all; MoveOn decides whether a
// candidate pair is still worth exploring; WellSeparated is the pass's own
// separation criterion; Run receives each pair that satisfies it.
type Visitor interface {
	Start(n *kdtree.Node) bool
	MoveOn(a, b *kdtree.Node) bool
	WellSeparated(a, b *kdtree.Node) bool
	Run(a, b *kdtree.Node)
}

// Compute runs one WSPD traversal of tree under visitor, forking at the
// pool's threshold. Returns ErrInvariantViolated if the traversal is forced down
// to two leaves that visitor.WellSeparated still rejects.
func Compute(tree *kdtree.Tree, visitor Visitor, pool *par.Pool) error {
	return computeNode(tree.Root(), visitor, pool)
}

func computeNode(n *kdtree.Node, visitor Visitor, pool *par.Pool) error {
	if n.IsLeaf() || !visitor.Start(n) {
		return nil
	}

	if err := pool.JoinErr(n.Size(),
		func() error { return computeNode(n.Left(), visitor, pool) },
		func() error { return computeNode(n.Right(), visitor, pool) },
	); err != nil {
		return err
	}

	return findPair(n.Left(), n.Right(), visitor, pool)
}

func findPair(a, b *kdtree.Node, visitor Visitor, pool *par.Pool) error {
	if !visitor.MoveOn(a, b) {
		return nil
	}
	if visitor.WellSeparated(a, b) {
		visitor.Run(a, b)

		return nil
	}
	if a.IsLeaf() && b.IsLeaf() {
		return fmt.Errorf("wspd: leaf pair not well-separated: %w", ErrInvariantViolated)
	}

	switch {
	case a.IsLeaf():
		return pool.JoinErr(b.Size(),
			func() error { return findPair(b.Left(), a, visitor, pool) },
			func() error { return findPair(b.Right(), a, visitor, pool) },
		)
	case b.IsLeaf():
		return pool.JoinErr(a.Size(),
			func() error { return findPair(a.Left(), b, visitor, pool) },
			func() error { return findPair(a.Right(), b, visitor, pool) },
		)
	case a.LMax() >= b.LMax():
		return pool.JoinErr(a.Size()+b.Size(),
			func() error { return findPair(a.Left(), b, visitor, pool) },
			func() error { return findPair(a.Right(), b, visitor, pool) },
		)
	default:
		return pool.JoinErr(a.Size()+b.Size(),
			func() error { return findPair(a, b.Left(), visitor, pool) },
			func() error { return findPair(a, b.Right(), visitor, pool) },
		)
	}
}
