// Package mark implements component marking: after each HDBSCAN* round, it
// walks the KD-tree post-order and tags every node that lies wholly inside
// one current union-find component with that component's root id, so later
// WSPD passes can prune whole subtrees via kdtree.Node.HasComponent instead
// of re-deriving membership from scratch every round.
package mark

import (
	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/unionfind"
)

// Mark walks tree post-order and sets every node's component_id: a leaf
// gets uf.Find of its first point's root iff every
// point in the leaf shares that root, else NoComponent. An internal node
// gets its children's shared id iff both children agree on one non-negative
// id. A node that already carries a valid id from an earlier round has that
// id cascaded down to every descendant, keeping them consistent without
// re-deriving membership that a prior round already proved.
func Mark(tree *kdtree.Tree, uf *unionfind.UnionFind, pool *par.Pool) {
	markNode(tree.Root(), uf, pool)
}

func markNode(n *kdtree.Node, uf *unionfind.UnionFind, pool *par.Pool) int64 {
	if n.HasComponent() {
		cascade(n, n.ComponentID())

		return n.ComponentID()
	}

	if n.IsLeaf() {
		id := leafComponent(n, uf)
		n.SetComponentID(id)

		return id
	}

	var leftID, rightID int64
	pool.Join(n.Size(),
		func() { leftID = markNode(n.Left(), uf, pool) },
		func() { rightID = markNode(n.Right(), uf, pool) },
	)

	id := kdtree.NoComponent
	if leftID >= 0 && leftID == rightID {
		id = leftID
	}
	n.SetComponentID(id)

	return id
}

// leafComponent reports the DSU root shared by every point in n, or
// NoComponent if the leaf spans more than one component.
func leafComponent(n *kdtree.Node, uf *unionfind.UnionFind) int64 {
	pts := n.Points()
	if len(pts) == 0 {
		return kdtree.NoComponent
	}

	root := uf.Find(n.OriginalIndex(0))
	for i := 1; i < len(pts); i++ {
		if uf.Find(n.OriginalIndex(i)) != root {
			return kdtree.NoComponent
		}
	}

	return int64(root)
}

// cascade pushes an already-valid component id down to every descendant of
// n that doesn't yet carry it: a node proven to lie wholly inside one component stays that way forever,
// so its descendants never need their own post-order recomputation again.
func cascade(n *kdtree.Node, id int64) {
	if n.IsLeaf() {
		n.SetComponentID(id)

		return
	}
	if n.Left().ComponentID() != id {
		n.Left().SetComponentID(id)
		cascade(n.Left(), id)
	}
	if n.Right().ComponentID() != id {
		n.Right().SetComponentID(id)
		cascade(n.Right(), id)
	}
}
