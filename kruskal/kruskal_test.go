package kruskal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sablegraph/hdbscan/internal/par"
	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/point"
	"github.com/sablegraph/hdbscan/speculativefor"
	"github.com/sablegraph/hdbscan/unionfind"
	"github.com/sablegraph/hdbscan/wspd"
)

func gridPoints(t *testing.T) []point.Point {
	t.Helper()
	coords := [][]float64{
		{0, 0}, {10, 0}, {0, 10}, {10, 10},
		{100, 100}, {110, 100}, {100, 110}, {110, 110},
	}
	pts := make([]point.Point, len(coords))
	for i, c := range coords {
		p, err := point.New(c)
		require.NoError(t, err)
		pts[i] = p
	}

	return pts
}

func buildTree(t *testing.T, pts []point.Point) (*kdtree.Tree, []float64) {
	t.Helper()
	pool := par.NewPool(0, 1<<30)
	tree, err := kdtree.Build(pts, pool)
	require.NoError(t, err)
	coreDist := tree.CoreDistances(2, pool)
	tree.AugmentCoreDist(coreDist, pool)

	return tree, coreDist
}

func TestRhoPassEstimatesFiniteBound(t *testing.T) {
	pts := gridPoints(t)
	tree, _ := buildTree(t, pts)
	pool := par.NewPool(0, 1<<30)

	rp := NewRhoPass(2)
	err := wspd.Compute(tree, rp, pool)
	require.NoError(t, err)
	assert.False(t, math.IsInf(rp.RhoHi(), 1))
	assert.Greater(t, rp.RhoHi(), 0.0)
}

func TestCollectorPassProducesConnectingEdges(t *testing.T) {
	pts := gridPoints(t)
	tree, coreDist := buildTree(t, pts)
	pool := par.NewPool(0, 1<<30)

	cp := NewCollectorPass(len(pts), 0, math.Inf(1), coreDist)
	err := wspd.Compute(tree, cp, pool)
	require.NoError(t, err)
	require.NotEmpty(t, cp.Edges())

	uf := unionfind.New(len(pts))
	err = BatchedKruskal(cp.Edges(), uf, speculativefor.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, uf.Same(0, 1))
	assert.True(t, uf.Same(0, 2))
	assert.True(t, uf.Same(0, 3))
	assert.True(t, uf.Same(4, 5))
	assert.True(t, uf.Same(4, 6))
	assert.True(t, uf.Same(4, 7))
}

func TestBatchedKruskalSkipsSelfLoops(t *testing.T) {
	uf := unionfind.New(3)
	uf.Union(0, 1, unionfind.Edge{U: 0, V: 1, Weight: 1})

	edges := []unionfind.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 2},
	}
	err := BatchedKruskal(edges, uf, speculativefor.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, uf.Connected())
	assert.Equal(t, 2, uf.NumEdges())
}

func TestBatchedKruskalChoosesLightestEdgePerPair(t *testing.T) {
	uf := unionfind.New(2)
	edges := []unionfind.Edge{
		{U: 0, V: 1, Weight: 5},
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 1, Weight: 3},
	}
	err := BatchedKruskal(edges, uf, speculativefor.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, uf.Connected())
	got := uf.Edges()
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Weight)
}

func TestAtomicFloatMinIsMonotone(t *testing.T) {
	f := newAtomicFloat(math.Inf(1))
	f.Min(10)
	f.Min(20)
	assert.Equal(t, 10.0, f.Load())
	f.Min(3)
	assert.Equal(t, 3.0, f.Load())
}
