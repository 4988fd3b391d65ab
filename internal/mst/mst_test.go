package mst_test

import (
	"testing"

	"github.com/katalvlaran/mstgraphd/internal/graph"
	"github.com/katalvlaran/mstgraphd/internal/mst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample reproduces the spec's end-to-end scenario graph:
// 4 vertices, edges (1-2:1) (1-3:4) (2-3:2) (2-4:5) (3-4:3).
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

func TestPrimAndKruskal_AgreeOnWeight(t *testing.T) {
	g := buildSample(t)

	primEdges, err := mst.NewStrategy(mst.MethodPrim).FindMST(g)
	require.NoError(t, err)
	kruskalEdges, err := mst.NewStrategy(mst.MethodKruskal).FindMST(g)
	require.NoError(t, err)

	require.Len(t, primEdges, 3)
	require.Len(t, kruskalEdges, 3)

	var primWeight, kruskalWeight int64
	for _, e := range primEdges {
		primWeight += e.Weight
	}
	for _, e := range kruskalEdges {
		kruskalWeight += e.Weight
	}
	assert.Equal(t, int64(6), primWeight)
	assert.Equal(t, primWeight, kruskalWeight)
}

func TestFactory_CreateMST(t *testing.T) {
	g := buildSample(t)
	f := mst.NewFactory()

	f.SetStrategy(mst.MethodPrim)
	tree, err := f.CreateMST(g)
	require.NoError(t, err)
	assert.Equal(t, int64(6), tree.TotalWeight())
	assert.Len(t, tree.Edges(), 3)
}

func TestTree_Diameter(t *testing.T) {
	g := buildSample(t)
	tree, err := mst.NewFactory().CreateMST(g)
	require.NoError(t, err)

	assert.Equal(t, int64(6), tree.Diameter())
}

func TestTree_ShortestAndLongestPathAgree(t *testing.T) {
	g := buildSample(t)
	tree, err := mst.NewFactory().CreateMST(g)
	require.NoError(t, err)

	shortPath, shortDist, err := tree.ShortestPath(1, 4)
	require.NoError(t, err)
	longPath, longDist, err := tree.LongestPath(1, 4)
	require.NoError(t, err)

	assert.Equal(t, "1 -> 2 -> 3 -> 4", shortPath)
	assert.Equal(t, shortPath, longPath)
	assert.Equal(t, shortDist, longDist)
	assert.Equal(t, int64(6), shortDist)
}

func TestTree_AverageDistance_TrivialGraph(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 2, 7))

	tree, err := mst.NewFactory().CreateMST(g)
	require.NoError(t, err)
	assert.Equal(t, 7.0, tree.AverageDistance())
}

func TestStrategy_Disconnected(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 2, 1))
	// vertex 3 is isolated: no spanning tree exists.

	_, err = mst.NewStrategy(mst.MethodKruskal).FindMST(g)
	assert.ErrorIs(t, err, mst.ErrDisconnected)

	_, err = mst.NewStrategy(mst.MethodPrim).FindMST(g)
	assert.ErrorIs(t, err, mst.ErrDisconnected)
}

func TestTree_ShortestPair(t *testing.T) {
	g := buildSample(t)
	tree, err := mst.NewFactory().CreateMST(g)
	require.NoError(t, err)

	path, dist, err := tree.ShortestPair()
	require.NoError(t, err)
	assert.Equal(t, int64(1), dist)
	assert.Equal(t, "1 -> 2", path)
}
