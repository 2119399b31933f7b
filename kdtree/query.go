package kdtree

import (
	"container/heap"
	"math"

	"github.com/sablegraph/hdbscan/point"
)

// Neighbor is one result of a nearest-neighbor query: the matched point,
// its original index (see Node.OriginalIndex), and its distance to the
// query point.
type Neighbor struct {
	Point point.Point
	Index int
	Dist  float64
}

// neighborPQ is a bounded max-heap of Neighbor ordered by Dist descending,
// so the current worst candidate always sits at the root and can be
// evicted as soon as a closer match turns up.
type neighborPQ []Neighbor

func (pq neighborPQ) Len() int            { return len(pq) }
func (pq neighborPQ) Less(i, j int) bool  { return pq[i].Dist > pq[j].Dist } // max-heap
func (pq neighborPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *neighborPQ) Push(x interface{}) { *pq = append(*pq, x.(Neighbor)) }
func (pq *neighborPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]

	return it
}

// NearestNeighbors returns the k points of t closest to p, ascending by
// distance, including p itself if p is a member of t. Returns exactly k
// results when t.Len() >= k, else all of t's points. Traversal is
// best-first by lower-bound box distance, pruning a subtree once the heap
// is full and that subtree's lower bound is no better than the current
// worst kept candidate.
func (t *Tree) NearestNeighbors(p point.Point, k int) []Neighbor {
	if k <= 0 || t.root == nil {
		return nil
	}
	if k > t.Len() {
		k = t.Len()
	}

	pq := make(neighborPQ, 0, k)
	searchNode(t.root, p, k, &pq)

	out := make([]Neighbor, pq.Len())
	// Pops come off worst-first (max-heap); fill back-to-front for an
	// ascending result.
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&pq).(Neighbor)
	}

	return out
}

func searchNode(n *Node, p point.Point, k int, pq *neighborPQ) {
	if pq.Len() >= k && nodeToPointDistance(n, p) >= (*pq)[0].Dist {
		return
	}

	if n.IsLeaf() {
		it := n.items[0]
		d := it.p.Distance(p)
		cand := Neighbor{Point: it.p, Index: it.idx, Dist: d}
		if pq.Len() < k {
			heap.Push(pq, cand)
		} else if d < (*pq)[0].Dist {
			heap.Pop(pq)
			heap.Push(pq, cand)
		}

		return
	}

	// Visit the nearer child first to tighten the heap before the farther
	// child is considered for pruning.
	first, second := n.left, n.right
	if nodeToPointDistance(n.right, p) < nodeToPointDistance(n.left, p) {
		first, second = n.right, n.left
	}
	searchNode(first, p, k, pq)
	searchNode(second, p, k, pq)
}

// nodeToPointDistance is NodeDistance specialized to a degenerate
// zero-volume "box" at p.
func nodeToPointDistance(n *Node, p point.Point) float64 {
	var sumSq float64
	for d := 0; d < n.Dim(); d++ {
		gap := 0.0
		if n.boxMin[d]-p.At(d) > gap {
			gap = n.boxMin[d] - p.At(d)
		}
		if p.At(d)-n.boxMax[d] > gap {
			gap = p.At(d) - n.boxMax[d]
		}
		sumSq += gap * gap
	}

	return math.Sqrt(sumSq)
}
