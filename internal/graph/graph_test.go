package graph_test

import (
	"testing"

	"github.com/katalvlaran/mstgraphd/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample builds the spec's scenario-1 graph: 4 vertices, 5 edges.
func buildSample(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(4)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(1, 3, 4))
	require.NoError(t, g.AddEdge(2, 3, 2))
	require.NoError(t, g.AddEdge(2, 4, 5))
	require.NoError(t, g.AddEdge(3, 4, 3))

	return g
}

func TestAddEdge_Invariants(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)

	assert.ErrorIs(t, g.AddEdge(0, 1, 1), graph.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddEdge(1, 4, 1), graph.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddEdge(2, 2, 1), graph.ErrSelfLoop)
	assert.ErrorIs(t, g.AddEdge(1, 2, -1), graph.ErrNegativeWeight)

	require.NoError(t, g.AddEdge(1, 2, 5))
	assert.ErrorIs(t, g.AddEdge(1, 2, 9), graph.ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddEdge(2, 1, 9), graph.ErrDuplicateEdge)
	assert.Equal(t, 1, g.E())
}

func TestRemoveEdge(t *testing.T) {
	g := buildSample(t)
	require.NoError(t, g.RemoveEdge(1, 2))
	assert.False(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(2, 1))
	assert.ErrorIs(t, g.RemoveEdge(1, 2), graph.ErrEdgeNotFound)
}

func TestTotalWeight(t *testing.T) {
	g := buildSample(t)
	assert.Equal(t, int64(1+4+2+5+3), g.TotalWeight())
}

func TestEdges_CountedOnce(t *testing.T) {
	g := buildSample(t)
	assert.Len(t, g.Edges(), 5)
}

func TestShortestPath(t *testing.T) {
	g := buildSample(t)
	path, dist, err := g.ShortestPath(1, 4)
	require.NoError(t, err)
	assert.Equal(t, "1 -> 2 -> 3 -> 4", path)
	assert.Equal(t, int64(6), dist)
}

func TestShortestPath_Unreachable(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	path, dist, err := g.ShortestPath(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "No path", path)
	assert.Equal(t, int64(graph.InfDistance), dist)
}

func TestFloydWarshall_AverageAndClosestPair(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 2, 7))

	dm := g.FloydWarshall()
	assert.Equal(t, 7.0, dm.AverageDistance())

	u, v, dist, ok := dm.ClosestPair()
	require.True(t, ok)
	assert.ElementsMatch(t, []int{1, 2}, []int{u, v})
	assert.Equal(t, 7.0, dist)
}
