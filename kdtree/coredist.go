package kdtree

import (
	"math"

	"github.com/sablegraph/hdbscan/internal/par"
)

// CoreDistances returns core_dist[i], the Euclidean distance from
// points[i] (as passed to Build) to its minPts-th nearest neighbor,
// inclusive of itself in the ordered neighbor list — so core_dist[i] is the
// (minPts-1)-th element of NearestNeighbors(points[i], minPts) sorted
// ascending, index 0 being the point itself at distance 0. minPts is
// clamped to t.Len() so a tree of n points never queries for more than n
// neighbors (the n=2 boundary case). The per-point k-NN queries fan out
// across pool; each query only reads the tree, so they are independent.
func (t *Tree) CoreDistances(minPts int, pool *par.Pool) []float64 {
	k := minPts
	if k > t.Len() {
		k = t.Len()
	}

	coreDist := make([]float64, t.Len())
	positions := make([]int, t.Len())
	for i := range positions {
		positions[i] = i
	}
	pool.ParallelFor(positions, func(i int) {
		it := t.items[i]
		neighbors := t.NearestNeighbors(it.p, k)
		coreDist[it.idx] = neighbors[len(neighbors)-1].Dist
	})

	return coreDist
}

// AugmentCoreDist sets cd_min/cd_max on every node of t to the min/max of
// coreDist over that node's subtree, traversing post-order and forking at
// pool's threshold. coreDist is indexed by original input position (see
// Node.OriginalIndex), matching the output of CoreDistances.
func (t *Tree) AugmentCoreDist(coreDist []float64, pool *par.Pool) {
	augmentNode(t.root, coreDist, pool)
}

func augmentNode(n *Node, coreDist []float64, pool *par.Pool) {
	if n.IsLeaf() {
		cd := coreDist[n.items[0].idx]
		n.cdMin, n.cdMax = cd, cd

		return
	}

	pool.Join(n.Size(),
		func() { augmentNode(n.left, coreDist, pool) },
		func() { augmentNode(n.right, coreDist, pool) },
	)

	n.cdMin = math.Min(n.left.cdMin, n.right.cdMin)
	n.cdMax = math.Max(n.left.cdMax, n.right.cdMax)
}
