// Package bccp implements a branch-and-bound bichromatic closest-pair
// search: given two KD-tree subtrees, find the pair of points (one from
// each) minimizing mutual-reachability distance.
package bccp

import (
	"math"
	"sort"

	"github.com/sablegraph/hdbscan/kdtree"
)

// Pair is the bichromatic closest pair found between two subtrees: U from
// the first subtree, V from the second, at mutual-reachability distance
// Dist. A Pair with U == V == -1 and Dist == +Inf (Search's starting value)
// means no pair was evaluated.
type Pair struct {
	U, V int
	Dist float64
}

// MReach computes the mutual-reachability distance between points at
// indices u, v given their Euclidean distance and core distances.
func MReach(euclid, coreU, coreV float64) float64 {
	d := euclid
	if coreU > d {
		d = coreU
	}
	if coreV > d {
		d = coreV
	}

	return d
}

// Search returns the closest pair (u in a's subtree, v in b's subtree)
// under mutual reachability, via branch-and-bound pruning on the Euclidean
// node-distance lower bound (a valid bound because mreach >= euclidean
// distance everywhere).
func Search(a, b *kdtree.Node, coreDist []float64) Pair {
	best := Pair{U: -1, V: -1, Dist: math.Inf(1)}
	search(a, b, coreDist, &best)

	return best
}

func search(a, b *kdtree.Node, coreDist []float64, best *Pair) {
	if kdtree.NodeDistance(a, b) > best.Dist {
		return
	}

	switch {
	case a.IsLeaf() && b.IsLeaf():
		bruteForce(a, b, coreDist, best)
	case a.IsLeaf():
		near, far := orderByDistanceTo(a, b.Left(), b.Right())
		search(a, near, coreDist, best)
		search(a, far, coreDist, best)
	case b.IsLeaf():
		near, far := orderByDistanceTo(b, a.Left(), a.Right())
		search(near, b, coreDist, best)
		search(far, b, coreDist, best)
	default:
		searchInternalPairs(a, b, coreDist, best)
	}
}

// bruteForce evaluates every point of leaf a against every point of leaf b,
// updating best in place. Per kdtree.Build, a leaf holds exactly one point,
// but this loop stays general over Points() rather than assuming that.
func bruteForce(a, b *kdtree.Node, coreDist []float64, best *Pair) {
	aPts, bPts := a.Points(), b.Points()
	for i, pa := range aPts {
		ui := a.OriginalIndex(i)
		for j, pb := range bPts {
			vi := b.OriginalIndex(j)
			d := MReach(pa.Distance(pb), coreDist[ui], coreDist[vi])
			if d < best.Dist {
				best.U, best.V, best.Dist = ui, vi, d
			}
		}
	}
}

// orderByDistanceTo returns x's two candidate partners, nearer one first,
// so the branch-and-bound visits the more promising branch before the
// pruning bound has a chance to reject the other.
func orderByDistanceTo(x, c1, c2 *kdtree.Node) (near, far *kdtree.Node) {
	if kdtree.NodeDistance(x, c1) <= kdtree.NodeDistance(x, c2) {
		return c1, c2
	}

	return c2, c1
}

// childPair is one of the four (a-child, b-child) combinations visited when
// both a and b are internal.
type childPair struct {
	x, y *kdtree.Node
	dist float64
}

// searchInternalPairs visits all four child-pairs of two internal nodes in
// ascending node-distance order, stable on ties (Left-Left, Left-Right,
// Right-Left, Right-Right, in that original order) so the traversal is
// deterministic regardless of goroutine scheduling.
func searchInternalPairs(a, b *kdtree.Node, coreDist []float64, best *Pair) {
	pairs := []childPair{
		{a.Left(), b.Left(), kdtree.NodeDistance(a.Left(), b.Left())},
		{a.Left(), b.Right(), kdtree.NodeDistance(a.Left(), b.Right())},
		{a.Right(), b.Left(), kdtree.NodeDistance(a.Right(), b.Left())},
		{a.Right(), b.Right(), kdtree.NodeDistance(a.Right(), b.Right())},
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].dist < pairs[j].dist })

	for _, p := range pairs {
		search(p.x, p.y, coreDist, best)
	}
}
