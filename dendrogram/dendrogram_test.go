package dendrogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sablegraph/hdbscan/unionfind"
)

func TestBuildProducesValidLinkage(t *testing.T) {
	edges := []unionfind.Edge{
		{U: 2, V: 3, Weight: 1},
		{U: 0, V: 1, Weight: 2},
		{U: 1, V: 2, Weight: 3},
	}
	nodes, err := Build(4, edges)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.NoError(t, Validate(4, nodes))
	assert.Equal(t, 4, nodes[len(nodes)-1].Size)
}

func TestBuildIsOrderIndependentOnInput(t *testing.T) {
	a := []unionfind.Edge{
		{U: 0, V: 1, Weight: 5},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 3},
	}
	b := []unionfind.Edge{
		{U: 2, V: 3, Weight: 3},
		{U: 0, V: 1, Weight: 5},
		{U: 1, V: 2, Weight: 1},
	}
	nodesA, err := Build(4, a)
	require.NoError(t, err)
	nodesB, err := Build(4, b)
	require.NoError(t, err)
	assert.Equal(t, nodesA, nodesB)
}

func TestBuildWrongEdgeCount(t *testing.T) {
	_, err := Build(4, []unionfind.Edge{{U: 0, V: 1, Weight: 1}})
	assert.ErrorIs(t, err, ErrWrongEdgeCount)
}

func TestBuildRejectsCycle(t *testing.T) {
	edges := []unionfind.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 2},
		{U: 0, V: 2, Weight: 3},
	}
	_, err := Build(3, edges)
	assert.Error(t, err)
}

func TestValidateRejectsDecreasingDistance(t *testing.T) {
	nodes := []Node{
		{Left: 0, Right: 1, Distance: 5, Size: 2},
		{Left: 2, Right: 4, Distance: 1, Size: 3},
	}
	err := Validate(3, nodes)
	assert.Error(t, err)
}

func TestBuildSingletonInput(t *testing.T) {
	nodes, err := Build(1, nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
