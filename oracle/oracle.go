// Package oracle provides a dense, brute-force mutual-reachability minimum
// spanning tree, used only by this module's tests to check the geometric
// fast path (kdtree/wspd/bccp/kruskal) against an obviously-correct O(n^2)
// reference.
package oracle

import (
	"math"

	"github.com/sablegraph/hdbscan/point"
	"github.com/sablegraph/hdbscan/unionfind"
)

// MReach is the mutual-reachability distance between points i and j:
// max(euclidean distance, core distance of i, core distance of j).
func MReach(pts []point.Point, coreDist []float64, i, j int) float64 {
	return math.Max(pts[i].Distance(pts[j]), math.Max(coreDist[i], coreDist[j]))
}

// MinimumSpanningTree runs Prim's algorithm in O(n^2) over the dense
// mutual-reachability matrix implied by pts and coreDist, returning the
// n-1 MST edges (U < V canonically, as unionfind.Edge expects) and their
// total weight.
func MinimumSpanningTree(pts []point.Point, coreDist []float64) (edges []unionfind.Edge, total float64) {
	n := len(pts)
	if n <= 1 {
		return nil, 0
	}

	inTree := make([]bool, n)
	bestCost := make([]float64, n)
	parent := make([]int, n)
	for i := range bestCost {
		bestCost[i] = math.Inf(1)
		parent[i] = -1
	}
	bestCost[0] = 0

	edges = make([]unionfind.Edge, 0, n-1)

	for iter := 0; iter < n; iter++ {
		u := -1
		minW := math.Inf(1)
		for v := 0; v < n; v++ {
			if !inTree[v] && bestCost[v] < minW {
				minW = bestCost[v]
				u = v
			}
		}
		if u == -1 {
			break
		}

		inTree[u] = true
		if parent[u] != -1 {
			a, b := u, parent[u]
			if a > b {
				a, b = b, a
			}
			edges = append(edges, unionfind.Edge{U: a, V: b, Weight: bestCost[u]})
			total += bestCost[u]
		}

		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			w := MReach(pts, coreDist, u, v)
			if w < bestCost[v] {
				bestCost[v] = w
				parent[v] = u
			}
		}
	}

	return edges, total
}
