// Package mstgraph exposes a finished mutual-reachability minimum spanning
// tree as an adjacency-list graph over the original point indices, so
// callers can answer connectivity questions about a clustering result —
// the unique tree path between two points, the merge height at which they
// join, or the flat components left after cutting every edge above a
// distance threshold — without re-deriving adjacency from the raw edge
// list themselves.
package mstgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sablegraph/hdbscan/unionfind"
)

// Sentinel errors returned by New and the query methods.
var (
	// ErrVertexOutOfRange indicates an edge endpoint or query vertex that
	// is not in [0, n).
	ErrVertexOutOfRange = errors.New("mstgraph: vertex out of range")

	// ErrNotATree indicates the input edge set is not a spanning tree over
	// n vertices (wrong edge count, or a cycle).
	ErrNotATree = errors.New("mstgraph: edges do not form a spanning tree")
)

// halfEdge is one directed half of an undirected tree edge.
type halfEdge struct {
	to     int
	weight float64
}

// Graph is an immutable adjacency-list view of a spanning tree over the
// vertex set [0, n). Build one with New; all methods are safe for
// concurrent use since nothing mutates after construction.
type Graph struct {
	adj [][]halfEdge
	n   int
}

// New builds a Graph from the n-1 edges of a spanning tree over n points,
// typically a Result.Edges MST. Neighbor lists are sorted by vertex index
// so every traversal below is deterministic. Returns ErrNotATree if the
// edge count is wrong or the edges close a cycle, ErrVertexOutOfRange if
// any endpoint falls outside [0, n).
func New(n int, edges []unionfind.Edge) (*Graph, error) {
	if n <= 0 || len(edges) != n-1 {
		return nil, fmt.Errorf("mstgraph: got %d edges for n=%d: %w", len(edges), n, ErrNotATree)
	}

	g := &Graph{adj: make([][]halfEdge, n), n: n}
	uf := unionfind.New(n)
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("mstgraph: edge (%d,%d): %w", e.U, e.V, ErrVertexOutOfRange)
		}
		if !uf.Union(uf.Find(e.U), uf.Find(e.V), e) {
			return nil, fmt.Errorf("mstgraph: edge (%d,%d) closes a cycle: %w", e.U, e.V, ErrNotATree)
		}
		g.adj[e.U] = append(g.adj[e.U], halfEdge{to: e.V, weight: e.Weight})
		g.adj[e.V] = append(g.adj[e.V], halfEdge{to: e.U, weight: e.Weight})
	}

	for _, nbrs := range g.adj {
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i].to < nbrs[j].to })
	}

	return g, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return g.n }

// Degree returns the number of tree edges incident to u.
func (g *Graph) Degree(u int) int { return len(g.adj[u]) }

// Neighbors returns u's adjacent vertices in ascending index order. The
// returned slice is freshly allocated.
func (g *Graph) Neighbors(u int) []int {
	out := make([]int, len(g.adj[u]))
	for i, h := range g.adj[u] {
		out[i] = h.to
	}

	return out
}

// Path returns the unique tree path from u to v as a vertex sequence
// (inclusive of both endpoints), together with the maximum edge weight
// along it. That maximum is the single-linkage merge height of u and v:
// the smallest mutual-reachability distance at which the two points fall
// into one cluster.
func (g *Graph) Path(u, v int) (path []int, maxWeight float64, err error) {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return nil, 0, fmt.Errorf("mstgraph: path %d -> %d: %w", u, v, ErrVertexOutOfRange)
	}
	if u == v {
		return []int{u}, 0, nil
	}

	// Iterative DFS from u recording each vertex's discovery predecessor;
	// in a tree the first visit to v fixes the unique path.
	prev := make([]int, g.n)
	prevW := make([]float64, g.n)
	for i := range prev {
		prev[i] = -1
	}
	stack := []int{u}
	prev[u] = u
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if x == v {
			break
		}
		for _, h := range g.adj[x] {
			if prev[h.to] == -1 {
				prev[h.to] = x
				prevW[h.to] = h.weight
				stack = append(stack, h.to)
			}
		}
	}
	if prev[v] == -1 {
		return nil, 0, fmt.Errorf("mstgraph: no path %d -> %d: %w", u, v, ErrNotATree)
	}

	for x := v; x != u; x = prev[x] {
		path = append(path, x)
		if prevW[x] > maxWeight {
			maxWeight = prevW[x]
		}
	}
	path = append(path, u)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, maxWeight, nil
}

// MergeHeight returns only the maximum edge weight on the u-v tree path,
// the dendrogram distance between the two points.
func (g *Graph) MergeHeight(u, v int) (float64, error) {
	_, w, err := g.Path(u, v)

	return w, err
}

// CutComponents removes every tree edge with weight strictly greater than
// threshold and labels the surviving connected components. The result maps
// each vertex to a component id in [0, count); ids are assigned in order
// of each component's lowest vertex index, so the labeling is deterministic
// for a given graph and threshold.
func (g *Graph) CutComponents(threshold float64) (labels []int, count int) {
	labels = make([]int, g.n)
	for i := range labels {
		labels[i] = -1
	}

	for start := 0; start < g.n; start++ {
		if labels[start] != -1 {
			continue
		}
		labels[start] = count
		stack := []int{start}
		for len(stack) > 0 {
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, h := range g.adj[x] {
				if h.weight > threshold || labels[h.to] != -1 {
					continue
				}
				labels[h.to] = count
				stack = append(stack, h.to)
			}
		}
		count++
	}

	return labels, count
}
