package kruskal

import (
	"sort"

	"github.com/sablegraph/hdbscan/speculativefor"
	"github.com/sablegraph/hdbscan/unionfind"
)

// namedEdge pairs a candidate edge with its position in the caller's input
// slice, so the stable sort's secondary key (original index, ascending)
// survives past the sort itself.
type namedEdge struct {
	edge    unionfind.Edge
	origIdx int
}

// BatchedKruskal commits candidate edges into uf: drop edges whose endpoints
// Find already places in one component, stable-sort by (weight, original
// index), then run a speculative reserve/commit pass
// that reserves both endpoints' current DSU roots before linking them —
// producing exactly the edge set sequential Kruskal would have chosen from
// this candidate batch, regardless of how many goroutines committed it.
func BatchedKruskal(edges []unionfind.Edge, uf *unionfind.UnionFind, opts speculativefor.Options) error {
	filtered := make([]namedEdge, 0, len(edges))
	for i, e := range edges {
		if uf.Find(e.U) == uf.Find(e.V) {
			continue
		}
		filtered = append(filtered, namedEdge{edge: e, origIdx: i})
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].edge.Weight != filtered[j].edge.Weight {
			return filtered[i].edge.Weight < filtered[j].edge.Weight
		}

		return filtered[i].origIdx < filtered[j].origIdx
	})

	step := &kruskalStep{
		edges: filtered,
		uf:    uf,
		slots: newReservationSlots(uf.Len()),
	}

	return speculativefor.Run(step, 0, len(filtered), opts)
}

// kruskalStep is the speculativefor.Step that arbitrates which of a
// band's candidate edges actually links a pair of DSU roots.
type kruskalStep struct {
	edges []namedEdge
	uf    *unionfind.UnionFind
	slots []*speculativefor.Reservation
}

func newReservationSlots(n int) []*speculativefor.Reservation {
	slots := make([]*speculativefor.Reservation, n)
	for i := range slots {
		slots[i] = speculativefor.NewReservation()
	}

	return slots
}

// Reserve looks up i's edge's current DSU roots and reserves both
// endpoint slots; a self-loop (already unioned by an earlier-committed
// edge this band) reserves nothing.
func (s *kruskalStep) Reserve(i int) {
	e := s.edges[i].edge
	ru, rv := s.uf.Find(e.U), s.uf.Find(e.V)
	if ru == rv {
		return
	}
	s.slots[ru].Reserve(i)
	s.slots[rv].Reserve(i)
}

// Commit re-resolves i's current roots: a self-loop by now is resolved
// (nothing to do, counts as done); otherwise i only links the roots if it
// still holds both endpoint reservations, and then frees both slots. If i
// does not hold both, it returns false and leaves the slots as they are.
func (s *kruskalStep) Commit(i int) bool {
	e := s.edges[i].edge
	ru, rv := s.uf.Find(e.U), s.uf.Find(e.V)
	if ru == rv {
		return true
	}
	if !s.slots[ru].Check(i) || !s.slots[rv].Check(i) {
		return false
	}
	s.slots[ru].CheckReset(i)
	s.slots[rv].CheckReset(i)
	s.uf.Union(ru, rv, canonical(e))

	return true
}

// canonical returns e with U < V, so callers that construct edges by hand
// get the same ordering the WSPD edge collector produces.
func canonical(e unionfind.Edge) unionfind.Edge {
	if e.U > e.V {
		e.U, e.V = e.V, e.U
	}

	return e
}
