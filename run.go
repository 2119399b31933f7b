package hdbscan

import (
	"fmt"
	"math"
	"sort"

	"github.com/sablegraph/hdbscan/dendrogram"
	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/kruskal"
	"github.com/sablegraph/hdbscan/mark"
	"github.com/sablegraph/hdbscan/point"
	"github.com/sablegraph/hdbscan/speculativefor"
	"github.com/sablegraph/hdbscan/unionfind"
	"github.com/sablegraph/hdbscan/wspd"
)

// Result is the output of Run: the mutual-reachability minimum spanning
// tree (n-1 edges) and the single-linkage dendrogram built from it.
type Result struct {
	// Edges is the MST, sorted by weight ascending, ties by endpoints.
	Edges []unionfind.Edge

	// CoreDistances holds each input point's core distance, indexed by its
	// position in the Run input slice.
	CoreDistances []float64

	// Dendrogram is the single-linkage tree built from Edges.
	Dendrogram []dendrogram.Node
}

// Run computes the HDBSCAN* mutual-reachability minimum spanning tree and
// dendrogram of pts via an outer loop of doubling-beta distance bands. It
// is the single entry point of this module; see doc.go for the pipeline's
// overall shape and subpackage mstgraph for an adjacency-list view of
// Result.Edges.
func Run(pts []point.Point, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	if len(pts) == 0 {
		return nil, ErrEmptyInput
	}
	if err := point.ValidateSet(pts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if o.MinPts > len(pts) {
		return nil, fmt.Errorf("hdbscan: minPts=%d, n=%d: %w", o.MinPts, len(pts), ErrUnsatisfied)
	}

	pool := par.NewPool(o.MaxParallel, o.ParThreshold)
	specOpts := speculativefor.Options{
		Granularity: o.Granularity,
		MaxTries:    o.MaxTries,
		Pool:        pool,
	}

	tree, err := kdtree.Build(pts, pool)
	if err != nil {
		return nil, fmt.Errorf("hdbscan: build kd-tree: %w", err)
	}

	coreDist := tree.CoreDistances(o.MinPts, pool)
	tree.AugmentCoreDist(coreDist, pool)

	n := len(pts)
	uf := unionfind.New(n)

	beta := 2
	rhoLo := 0.0

	for round := 0; uf.NumEdges() < n-1; round++ {
		rp := kruskal.NewRhoPass(beta)
		if err := wspd.Compute(tree, rp, pool); err != nil {
			return nil, fmt.Errorf("hdbscan: rho-update pass: %w", err)
		}
		rhoHi := rp.RhoHi()

		cp := kruskal.NewCollectorPass(beta, rhoLo, rhoHi, coreDist)
		if err := wspd.Compute(tree, cp, pool); err != nil {
			return nil, fmt.Errorf("hdbscan: collector pass: %w", err)
		}
		edges := cp.Edges()

		if o.Progress != nil {
			o.Progress(round, beta, rhoLo, rhoHi, len(edges))
		}

		if len(edges) > 0 {
			if err := kruskal.BatchedKruskal(edges, uf, specOpts); err != nil {
				return nil, fmt.Errorf("hdbscan: batched kruskal: %w", err)
			}
			mark.Mark(tree, uf, pool)
		}

		beta *= 2
		rhoLo = rhoHi

		// Once beta covers the whole tree and the band is unbounded, a
		// round that still leaves the DSU short can never make progress.
		if math.IsInf(rhoHi, 1) && uf.NumEdges() < n-1 && beta > 2*n {
			return nil, fmt.Errorf("hdbscan: round %d: %w", round, ErrUnsatisfied)
		}
	}

	mstEdges := uf.Edges()
	sort.SliceStable(mstEdges, func(i, j int) bool {
		if mstEdges[i].Weight != mstEdges[j].Weight {
			return mstEdges[i].Weight < mstEdges[j].Weight
		}
		if mstEdges[i].U != mstEdges[j].U {
			return mstEdges[i].U < mstEdges[j].U
		}

		return mstEdges[i].V < mstEdges[j].V
	})

	dend, err := dendrogram.Build(n, mstEdges)
	if err != nil {
		return nil, fmt.Errorf("hdbscan: dendrogram: %w", err)
	}

	return &Result{
		Edges:         mstEdges,
		CoreDistances: coreDist,
		Dendrogram:    dend,
	}, nil
}
