package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sablegraph/hdbscan/point"
)

func TestMinimumSpanningTreeSquare(t *testing.T) {
	coords := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	pts := make([]point.Point, len(coords))
	for i, c := range coords {
		p, err := point.New(c)
		require.NoError(t, err)
		pts[i] = p
	}
	coreDist := []float64{0, 0, 0, 0}

	edges, total := MinimumSpanningTree(pts, coreDist)
	require.Len(t, edges, 3)
	assert.InDelta(t, 3.0, total, 1e-9)
}

func TestMinimumSpanningTreeSinglePoint(t *testing.T) {
	p, err := point.New([]float64{0, 0})
	require.NoError(t, err)
	edges, total := MinimumSpanningTree([]point.Point{p}, []float64{0})
	assert.Empty(t, edges)
	assert.Equal(t, 0.0, total)
}

func TestMReachTakesCoreDistanceIntoAccount(t *testing.T) {
	p0, _ := point.New([]float64{0, 0})
	p1, _ := point.New([]float64{1, 0})
	pts := []point.Point{p0, p1}
	coreDist := []float64{5, 0}
	assert.Equal(t, 5.0, MReach(pts, coreDist, 0, 1))
}
