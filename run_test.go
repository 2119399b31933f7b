package hdbscan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sablegraph/hdbscan/dendrogram"
	"github.com/sablegraph/hdbscan/internal/fixtures"
	"github.com/sablegraph/hdbscan/mstgraph"
	"github.com/sablegraph/hdbscan/oracle"
	"github.com/sablegraph/hdbscan/point"
	"github.com/sablegraph/hdbscan/unionfind"
)

func mustPoints(t *testing.T, coords [][]float64) []point.Point {
	t.Helper()
	pts := make([]point.Point, len(coords))
	for i, c := range coords {
		p, err := point.New(c)
		require.NoError(t, err)
		pts[i] = p
	}

	return pts
}

func TestRunEmptyInput(t *testing.T) {
	_, err := Run(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunMinPtsExceedsInput(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {1, 1}})
	_, err := Run(pts, WithMinPts(5))
	assert.ErrorIs(t, err, ErrUnsatisfied)
}

func TestRunFourPointSquare(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	res, err := Run(pts, WithMinPts(2), WithMaxParallel(0))
	require.NoError(t, err)
	require.Len(t, res.Edges, 3)
	require.NoError(t, dendrogram.Validate(4, res.Dendrogram))
	assert.Equal(t, 4, res.Dendrogram[len(res.Dendrogram)-1].Size)
}

func TestRunCollinearLine(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0}, {1}, {2}, {3}, {4}})
	res, err := Run(pts, WithMinPts(2))
	require.NoError(t, err)
	require.Len(t, res.Edges, 4)

	total := 0.0
	for _, e := range res.Edges {
		total += e.Weight
	}
	assert.Greater(t, total, 0.0)
}

func TestRunTwoFarClusters(t *testing.T) {
	coords := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{100, 100}, {100.1, 100}, {100, 100.1},
	}
	pts := mustPoints(t, coords)
	res, err := Run(pts, WithMinPts(2))
	require.NoError(t, err)
	require.Len(t, res.Edges, 5)

	maxWeight := 0.0
	for _, e := range res.Edges {
		maxWeight = math.Max(maxWeight, e.Weight)
	}
	assert.Greater(t, maxWeight, 50.0)
}

func TestRunDuplicatePoints(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {0, 0}, {1, 1}})
	res, err := Run(pts, WithMinPts(2))
	require.NoError(t, err)
	require.Len(t, res.Edges, 2)
	assert.Equal(t, 0.0, res.Edges[0].Weight)
}

func TestRunInvokesProgressHook(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {1, 0}, {10, 10}, {11, 10}})
	rounds := 0
	_, err := Run(pts, WithMinPts(2), WithProgress(func(round, beta int, rhoLo, rhoHi float64, edges int) {
		rounds++
	}))
	require.NoError(t, err)
	assert.Greater(t, rounds, 0)
}

func mstWeight(edges []unionfind.Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += e.Weight
	}

	return total
}

func TestRunMatchesDenseOracle(t *testing.T) {
	for _, tc := range []struct {
		name   string
		pts    []point.Point
		minPts int
	}{
		{"grid", fixtures.Grid(6, 6), 3},
		{"line", fixtures.Line(17), 2},
		{"clusters", fixtures.Clusters(3, 12, 50, 1), 4},
		{"random3d", fixtures.Random(60, 3, 7), 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(tc.pts, WithMinPts(tc.minPts))
			require.NoError(t, err)
			require.Len(t, res.Edges, len(tc.pts)-1)

			_, wantTotal := oracle.MinimumSpanningTree(tc.pts, res.CoreDistances)
			assert.InDelta(t, wantTotal, mstWeight(res.Edges), 1e-6)
			require.NoError(t, dendrogram.Validate(len(tc.pts), res.Dendrogram))
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	pts := fixtures.Clusters(4, 10, 30, 42)

	first, err := Run(pts, WithMinPts(3), WithMaxParallel(8))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Run(pts, WithMinPts(3), WithMaxParallel(8))
		require.NoError(t, err)
		assert.Equal(t, first.Edges, again.Edges)
		assert.Equal(t, first.Dendrogram, again.Dendrogram)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	pts := fixtures.Random(120, 2, 3)

	seq, err := Run(pts, WithMinPts(4), WithMaxParallel(0))
	require.NoError(t, err)
	par, err := Run(pts, WithMinPts(4), WithMaxParallel(8), WithParThreshold(16))
	require.NoError(t, err)

	assert.Equal(t, seq.Edges, par.Edges)
	assert.Equal(t, seq.Dendrogram, par.Dendrogram)
}

func TestRunScaleInvariance(t *testing.T) {
	base := fixtures.Random(40, 2, 11)
	const k = 3.5
	scaled := make([]point.Point, len(base))
	for i, p := range base {
		coords := p.Coords()
		for d := range coords {
			coords[d] *= k
		}
		sp, err := point.New(coords)
		require.NoError(t, err)
		scaled[i] = sp
	}

	resBase, err := Run(base, WithMinPts(3))
	require.NoError(t, err)
	resScaled, err := Run(scaled, WithMinPts(3))
	require.NoError(t, err)

	require.Len(t, resScaled.Edges, len(resBase.Edges))
	for i := range resBase.Edges {
		assert.Equal(t, resBase.Edges[i].U, resScaled.Edges[i].U)
		assert.Equal(t, resBase.Edges[i].V, resScaled.Edges[i].V)
		assert.InDelta(t, resBase.Edges[i].Weight*k, resScaled.Edges[i].Weight, 1e-9)
	}
	for i := range resBase.Dendrogram {
		assert.Equal(t, resBase.Dendrogram[i].Left, resScaled.Dendrogram[i].Left)
		assert.Equal(t, resBase.Dendrogram[i].Right, resScaled.Dendrogram[i].Right)
		assert.Equal(t, resBase.Dendrogram[i].Size, resScaled.Dendrogram[i].Size)
		assert.InDelta(t, resBase.Dendrogram[i].Distance*k, resScaled.Dendrogram[i].Distance, 1e-9)
	}
}

func TestRunTwoPoints(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {3, 4}})
	res, err := Run(pts, WithMinPts(2))
	require.NoError(t, err)
	require.Len(t, res.Edges, 1)
	// minPts clamps to n, so each core distance is the distance to the
	// other point and the single MST edge weighs exactly that.
	assert.InDelta(t, 5.0, res.Edges[0].Weight, 1e-9)
	assert.InDelta(t, 5.0, res.CoreDistances[0], 1e-9)
	require.Len(t, res.Dendrogram, 1)
	assert.Equal(t, 2, res.Dendrogram[0].Size)
}

func TestRunMSTEdgesFormSpanningTree(t *testing.T) {
	pts := fixtures.Grid(5, 7)
	res, err := Run(pts, WithMinPts(3))
	require.NoError(t, err)

	g, err := mstgraph.New(len(pts), res.Edges)
	require.NoError(t, err)
	labels, count := g.CutComponents(math.Inf(1))
	assert.Equal(t, 1, count)
	assert.Len(t, labels, len(pts))
}

func TestRunAllCoincidentPoints(t *testing.T) {
	pts := fixtures.DuplicatePoint(5, []float64{1, 2})
	res, err := Run(pts, WithMinPts(2))
	require.NoError(t, err)
	require.Len(t, res.Edges, 4)
	for _, e := range res.Edges {
		assert.Equal(t, 0.0, e.Weight)
	}
	require.NoError(t, dendrogram.Validate(5, res.Dendrogram))
}
