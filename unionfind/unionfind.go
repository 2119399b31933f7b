// Package unionfind implements a disjoint-set (union-find) data structure
// over the dense index space [0, n) of this module's point indices, with
// union-by-size and path compression, built as an array of atomics rather
// than a mutex-guarded parent slice so Find stays safe to call from the
// concurrent reserve phase of the batched Kruskal pass.
//
// Beyond the classic DSU, UnionFind records the edge responsible for each
// merge, so the final MST edge set can be recovered directly from the DSU
// once it has collapsed to one component.
package unionfind

import "sync/atomic"

// Edge is one candidate or committed MST edge between two original point
// indices, canonically ordered U < V.
type Edge struct {
	U, V   int
	Weight float64
}

// UnionFind is a union-by-size disjoint-set structure over [0, n).
// parent[x] < 0 means x is a root, and -parent[x] is the size of its set;
// parent[x] >= 0 means x's parent is parent[x]. repEdge[x] holds the edge
// whose Union demoted x from root to child; since an element is demoted at
// most once, the repEdge entries collectively hold one edge per merge.
//
// Find is safe to call concurrently with other Finds and with Unions on
// disjoint roots: path compression only ever repoints a non-root ancestor
// closer to the true root (never writes a root's own slot), and a Union
// only ever writes the two root slots it has exclusive reservation-backed
// ownership of for that round (see speculativefor and kruskal). Two Unions
// on overlapping roots in the same round cannot happen by construction of
// that reservation discipline, not by locking here.
type UnionFind struct {
	parent   []atomic.Int64
	repEdge  []Edge
	hasEdge  []bool
	numEdges atomic.Int64
}

// New creates a UnionFind over n singleton elements [0, n).
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent:  make([]atomic.Int64, n),
		repEdge: make([]Edge, n),
		hasEdge: make([]bool, n),
	}
	for i := range uf.parent {
		uf.parent[i].Store(-1)
	}

	return uf
}

// Find returns the root of x's set, compressing the path traversed.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root].Load() >= 0 {
		root = int(uf.parent[root].Load())
	}
	for {
		p := uf.parent[x].Load()
		if p < 0 || int(p) == root {
			break
		}
		uf.parent[x].CompareAndSwap(p, int64(root))
		x = int(p)
	}

	return root
}

// Same reports whether x and y are currently in the same component.
func (uf *UnionFind) Same(x, y int) bool { return uf.Find(x) == uf.Find(y) }

// Size returns the size of x's component.
func (uf *UnionFind) Size(x int) int { return int(-uf.parent[uf.Find(x)].Load()) }

// Union merges the components of rootU and rootV, both of which must
// already be roots reserved exclusively by the caller for this round (see
// speculativefor.Reservation), and records edge as the representative edge
// of the merge. Returns false without effect if rootU == rootV (the edge
// would close a cycle).
func (uf *UnionFind) Union(rootU, rootV int, edge Edge) bool {
	if rootU == rootV {
		return false
	}
	sizeU, sizeV := -uf.parent[rootU].Load(), -uf.parent[rootV].Load()
	if sizeU < sizeV {
		rootU, rootV = rootV, rootU
		sizeU, sizeV = sizeV, sizeU
	}
	uf.parent[rootV].Store(int64(rootU))
	uf.parent[rootU].Store(-(sizeU + sizeV))
	// The absorbed root stops being a root exactly once, so recording the
	// merge edge on it (never on the survivor, which may absorb many
	// components) leaves one edge per non-root element: the full MST.
	uf.repEdge[rootV] = edge
	uf.hasEdge[rootV] = true
	uf.numEdges.Add(1)

	return true
}

// NumEdges returns the number of successful Union calls so far, i.e. the
// number of MST edges committed.
func (uf *UnionFind) NumEdges() int { return int(uf.numEdges.Load()) }

// Len returns the number of elements the DSU was constructed over.
func (uf *UnionFind) Len() int { return len(uf.parent) }

// Connected reports whether the DSU has collapsed to a single component
// (NumEdges == n-1).
func (uf *UnionFind) Connected() bool {
	return len(uf.parent) == 0 || int(uf.numEdges.Load()) == len(uf.parent)-1
}

// Edges returns every representative merge edge recorded so far, i.e. the
// MST edge set once the DSU has fully collapsed. The returned slice is
// freshly allocated and in no particular order.
func (uf *UnionFind) Edges() []Edge {
	out := make([]Edge, 0, uf.numEdges.Load())
	for r, has := range uf.hasEdge {
		if has {
			out = append(out, uf.repEdge[r])
		}
	}

	return out
}
