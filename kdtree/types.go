// Package kdtree implements the median-split binary space-partitioning index
// over point.Point used by the rest of this module: per-node bounding boxes,
// core-distance augmentation (cd_min/cd_max), a mutable component_id tag
// used by mark to prune WSPD traversal, and k-nearest-neighbor queries.
//
// A Tree owns one shared backing array of its input points, reordered
// in place during Build; every Node holds a slice of that array rather
// than a copy, so the whole tree's point storage is O(n) regardless of
// depth.
package kdtree

import (
	"errors"
	"fmt"
	"math"

	"github.com/sablegraph/hdbscan/point"
)

// Sentinel errors for tree construction.
var (
	// ErrEmptyInput indicates Build was called with zero points.
	ErrEmptyInput = errors.New("kdtree: empty input")

	// ErrInvalidPoint indicates a NaN/non-finite coordinate or a
	// dimensionality mismatch within the input set.
	ErrInvalidPoint = errors.New("kdtree: invalid point")
)

// NoComponent is the component_id sentinel meaning "not all points in this
// subtree share one DSU component".
const NoComponent int64 = -1

// item pairs a point with its position in the caller's original input
// slice; every downstream index (core distances, DSU, MST edges,
// dendrogram leaves) is expressed in terms of this original index, never
// the tree's internal (reordered) position.
type item struct {
	p   point.Point
	idx int
}

// Node is one node of the KD-tree: structural fields set once at Build time,
// plus the mutable augmentations (cd_min/cd_max, componentID) written by
// later passes (CoreDist augmentation, mark).
type Node struct {
	items []item // subslice of the tree's shared backing array

	splitDim   int
	splitValue float64
	left       *Node
	right      *Node

	boxMin []float64
	boxMax []float64

	cdMin float64
	cdMax float64

	componentID int64
}

// Tree is a built KD-tree over an immutable point set.
type Tree struct {
	items []item
	root  *Node
	dim   int
}

// IsLeaf reports whether n has no children. Per the build algorithm a leaf
// always holds exactly one point.
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

// Size returns the number of points in n's subtree.
func (n *Node) Size() int { return len(n.items) }

// Left returns n's left child, or nil at a leaf.
func (n *Node) Left() *Node { return n.left }

// Right returns n's right child, or nil at a leaf.
func (n *Node) Right() *Node { return n.right }

// SplitDim returns the axis n was split on (meaningless at a leaf).
func (n *Node) SplitDim() int { return n.splitDim }

// SplitValue returns the coordinate value n was split on (meaningless at a leaf).
func (n *Node) SplitValue() float64 { return n.splitValue }

// BoxMin returns the minimum coordinate of n's bounding box along dimension d.
func (n *Node) BoxMin(d int) float64 { return n.boxMin[d] }

// BoxMax returns the maximum coordinate of n's bounding box along dimension d.
func (n *Node) BoxMax(d int) float64 { return n.boxMax[d] }

// Dim returns the dimensionality of the points in this tree.
func (n *Node) Dim() int { return len(n.boxMin) }

// CDMin returns the minimum core distance over n's subtree. Zero until
// AugmentCoreDist has run.
func (n *Node) CDMin() float64 { return n.cdMin }

// CDMax returns the maximum core distance over n's subtree. Zero until
// AugmentCoreDist has run.
func (n *Node) CDMax() float64 { return n.cdMax }

// ComponentID returns the node's current component tag, or NoComponent if
// this subtree doesn't lie wholly within one DSU component.
func (n *Node) ComponentID() int64 { return n.componentID }

// HasComponent reports whether ComponentID is a real (non-sentinel) id.
func (n *Node) HasComponent() bool { return n.componentID != NoComponent }

// SetComponentID tags n as wholly belonging to DSU component id.
func (n *Node) SetComponentID(id int64) { n.componentID = id }

// ResetComponentID clears n's component tag back to NoComponent.
func (n *Node) ResetComponentID() { n.componentID = NoComponent }

// Points returns the points held in n's subtree, in the tree's internal
// (post-build) order. The returned slice is freshly allocated on every call;
// changing it does not affect the tree.
func (n *Node) Points() []point.Point {
	pts := make([]point.Point, len(n.items))
	for i, it := range n.items {
		pts[i] = it.p
	}

	return pts
}

// OriginalIndex returns the index into the caller's original input slice
// (the same index space used by core distances, the DSU, and MST edges)
// for the i-th point of n's subtree in internal order.
func (n *Node) OriginalIndex(i int) int { return n.items[i].idx }

// LMax returns the largest extent of n's bounding box across all
// dimensions; used as the WSPD child-split heuristic.
func (n *Node) LMax() float64 {
	var maxVal float64
	for d := 0; d < n.Dim(); d++ {
		if extent := n.boxMax[d] - n.boxMin[d]; extent > maxVal {
			maxVal = extent
		}
	}

	return maxVal
}

// Diag returns the Euclidean length of n's bounding-box diagonal; zero for
// a single-point leaf.
func (n *Node) Diag() float64 {
	if n.Size() == 1 {
		return 0
	}
	var sumSq float64
	for d := 0; d < n.Dim(); d++ {
		extent := n.boxMax[d] - n.boxMin[d]
		sumSq += extent * extent
	}

	return math.Sqrt(sumSq)
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of points in the tree.
func (t *Tree) Len() int { return len(t.items) }

// Dim returns the dimensionality of the tree's points.
func (t *Tree) Dim() int { return t.dim }

func validate(pts []point.Point) error {
	if len(pts) == 0 {
		return ErrEmptyInput
	}
	d := pts[0].Dim()
	for i, p := range pts {
		if p.Dim() != d {
			return fmt.Errorf("kdtree: point %d has dimension %d, want %d: %w", i, p.Dim(), d, ErrInvalidPoint)
		}
	}

	return nil
}
