// Package dendrogram builds the HDBSCAN* linkage tree from a finished
// minimum spanning tree: sort the n-1 MST edges by
// weight, then endpoint pair (U, then V), and union them one at a time through a
// dedicated single-merge-at-a-time union-find, recording each merge as a
// node of the classical SciPy-style linkage array (left child, right
// child, distance, size of the new cluster).
package dendrogram

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sablegraph/hdbscan/unionfind"
)

// Node is one linkage entry: the two (possibly synthetic) cluster ids being
// merged, the distance at which they merge, and the resulting cluster's
// size — the four fields of a standard hierarchical-clustering linkage
// matrix row.
type Node struct {
	Left, Right int
	Distance    float64
	Size        int
}

// ErrWrongEdgeCount indicates the input edge slice cannot be a spanning
// tree over n points: a spanning tree over n points has exactly n-1 edges.
var ErrWrongEdgeCount = errors.New("dendrogram: edge count is not n-1")

// Build constructs the n-1 linkage nodes from edges,
// a minimum spanning tree over n points. Edges need not already be sorted;
// Build sorts a local copy by (weight ascending, then the lexicographically
// smaller endpoint pair) without mutating the caller's slice.
func Build(n int, edges []unionfind.Edge) ([]Node, error) {
	if n <= 0 {
		return nil, nil
	}
	if len(edges) != n-1 {
		return nil, fmt.Errorf("dendrogram: got %d edges for n=%d: %w", len(edges), n, ErrWrongEdgeCount)
	}

	sorted := make([]unionfind.Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight < sorted[j].Weight
		}
		if sorted[i].U != sorted[j].U {
			return sorted[i].U < sorted[j].U
		}

		return sorted[i].V < sorted[j].V
	})

	idxMap := make([]int, n)
	size := make([]int, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
		idxMap[i] = i
		size[i] = 1
	}
	nextID := n

	var find func(x int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}

		return x
	}

	nodes := make([]Node, 0, n-1)
	for _, e := range sorted {
		ru, rv := find(e.U), find(e.V)
		if ru == rv {
			return nil, fmt.Errorf("dendrogram: edge (%d,%d) closes a cycle, input is not a tree", e.U, e.V)
		}

		newSize := size[ru] + size[rv]
		nodes = append(nodes, Node{
			Left:     idxMap[ru],
			Right:    idxMap[rv],
			Distance: e.Weight,
			Size:     newSize,
		})

		parent[rv] = ru
		idxMap[ru] = nextID
		size[ru] = newSize
		nextID++
	}

	return nodes, nil
}

// Validate checks the structural invariants of a linkage over n leaves:
// exactly n-1 nodes, non-decreasing distance, and a final node whose size
// equals n.
func Validate(n int, nodes []Node) error {
	if len(nodes) != n-1 {
		return fmt.Errorf("dendrogram: expected %d nodes, got %d: %w", n-1, len(nodes), ErrWrongEdgeCount)
	}
	if n == 0 {
		return nil
	}

	last := -1.0
	for i, nd := range nodes {
		if nd.Distance < last {
			return fmt.Errorf("dendrogram: distance decreased at node %d (%.6f < %.6f)", i, nd.Distance, last)
		}
		last = nd.Distance
	}

	if nodes[len(nodes)-1].Size != n {
		return fmt.Errorf("dendrogram: final node size %d != n=%d", nodes[len(nodes)-1].Size, n)
	}

	return nil
}
