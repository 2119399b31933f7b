package kdtree_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sablegraph/hdbscan/kdtree"
	"github.com/sablegraph/hdbscan/point"
)

func bruteForceKNN(t *testing.T, pts []point.Point, q point.Point, k int) []float64 {
	t.Helper()
	dists := make([]float64, len(pts))
	for i, p := range pts {
		dists[i] = p.Distance(q)
	}
	sort.Float64s(dists)
	if k > len(dists) {
		k = len(dists)
	}

	return dists[:k]
}

func TestNearestNeighborsMatchesBruteForce(t *testing.T) {
	coords := make([][]float64, 0, 40)
	for i := 0; i < 40; i++ {
		coords = append(coords, []float64{float64(i*7 % 23), float64(i*13 % 17)})
	}
	pts := mustPoints(t, coords)
	tree, err := kdtree.Build(pts, newPool())
	require.NoError(t, err)

	for qi, q := range pts {
		for _, k := range []int{1, 3, 5} {
			got := tree.NearestNeighbors(q, k)
			require.Len(t, got, k)
			want := bruteForceKNN(t, pts, q, k)
			for i := range want {
				assert.InDelta(t, want[i], got[i].Dist, 1e-9, "point %d k=%d idx %d", qi, k, i)
			}
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].Dist, got[i].Dist)
			}
		}
	}
}

func TestNearestNeighborsClampsKToTreeSize(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0}, {1}})
	tree, err := kdtree.Build(pts, newPool())
	require.NoError(t, err)

	got := tree.NearestNeighbors(pts[0], 10)
	assert.Len(t, got, 2)
}

func TestNearestNeighborsIncludesSelfAtZero(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	tree, err := kdtree.Build(pts, newPool())
	require.NoError(t, err)

	got := tree.NearestNeighbors(pts[0], 1)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.0, got[0].Dist, 1e-12)
	assert.Equal(t, 0, got[0].Index)
}

func TestNodeDistanceZeroForOverlappingBoxes(t *testing.T) {
	pts := mustPoints(t, [][]float64{{0, 0}, {0.5, 0.5}, {5, 5}, {5.5, 5.5}})
	tree, err := kdtree.Build(pts, newPool())
	require.NoError(t, err)

	root := tree.Root()
	// root overlaps itself.
	assert.InDelta(t, 0.0, kdtree.NodeDistance(root, root), 1e-12)
}

func TestNodeDistanceIsLowerBound(t *testing.T) {
	a := mustPoints(t, [][]float64{{0, 0}, {1, 1}})
	b := mustPoints(t, [][]float64{{10, 10}, {11, 11}})

	treeA, err := kdtree.Build(a, newPool())
	require.NoError(t, err)
	treeB, err := kdtree.Build(b, newPool())
	require.NoError(t, err)

	bound := kdtree.NodeDistance(treeA.Root(), treeB.Root())
	for _, p := range a {
		for _, q := range b {
			assert.LessOrEqual(t, bound, p.Distance(q)+1e-9)
		}
	}
	assert.InDelta(t, math.Sqrt(2*9*9), bound, 1e-9)
}
