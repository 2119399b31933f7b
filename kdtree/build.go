package kdtree

import (
	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/point"
	"github.com/sablegraph/hdbscan/quickselect"
)

// Build constructs a KD-tree over pts, splitting on a round-robin axis
// starting at dimension 0 and partitioning around the median via
// quickselect at every level. A subtree of size 1 becomes a leaf; subtrees
// of combined size >= pool's threshold recurse in parallel, else inline on
// the caller's goroutine.
//
// Build copies pts into its own backing array and reorders that copy; the
// caller's slice is left untouched. Every original index referenced by
// later passes (core distances, the DSU, MST edges) refers to position in
// pts, not to the tree's internal order.
func Build(pts []point.Point, pool *par.Pool) (*Tree, error) {
	if err := validate(pts); err != nil {
		return nil, err
	}

	items := make([]item, len(pts))
	for i, p := range pts {
		items[i] = item{p: p, idx: i}
	}

	t := &Tree{items: items, dim: pts[0].Dim()}
	t.root = buildNode(items, 0, t.dim, pool)

	return t, nil
}

func buildNode(items []item, depth, dim int, pool *par.Pool) *Node {
	if len(items) == 1 {
		return newLeaf(items, dim)
	}

	splitDim := depth % dim
	mid := len(items) / 2
	// Tie-break equal coordinates on original index so the median split is
	// a strict total order: which points land on each side of mid is then
	// independent of quickselect's random pivot choices.
	pivot := quickselect.Select(items, mid, func(a, b item) bool {
		if a.p.At(splitDim) != b.p.At(splitDim) {
			return a.p.At(splitDim) < b.p.At(splitDim)
		}

		return a.idx < b.idx
	})

	var left, right *Node
	pool.Join(len(items),
		func() { left = buildNode(items[:mid], depth+1, dim, pool) },
		func() { right = buildNode(items[mid:], depth+1, dim, pool) },
	)

	return &Node{
		items:       items,
		splitDim:    splitDim,
		splitValue:  pivot.p.At(splitDim),
		left:        left,
		right:       right,
		boxMin:      elementwiseMin(left.boxMin, right.boxMin),
		boxMax:      elementwiseMax(left.boxMax, right.boxMax),
		componentID: NoComponent,
	}
}

func newLeaf(items []item, dim int) *Node {
	coords := make([]float64, dim)
	for d := 0; d < dim; d++ {
		coords[d] = items[0].p.At(d)
	}
	boxMax := make([]float64, dim)
	copy(boxMax, coords)

	return &Node{
		items:       items,
		boxMin:      coords,
		boxMax:      boxMax,
		componentID: NoComponent,
	}
}

func elementwiseMin(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for d := range a {
		if a[d] < b[d] {
			out[d] = a[d]
		} else {
			out[d] = b[d]
		}
	}

	return out
}

func elementwiseMax(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for d := range a {
		if a[d] > b[d] {
			out[d] = a[d]
		} else {
			out[d] = b[d]
		}
	}

	return out
}
