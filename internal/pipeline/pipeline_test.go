package pipeline

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/protocol"
)

func sampleGraph(t *testing.T, p *Pipeline) {
	t.Helper()
	edges := []protocol.Command{
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 2},
		{U: 1, V: 3, Weight: 4},
		{U: 3, V: 4, Weight: 3},
		{U: 2, V: 4, Weight: 5},
	}
	_, err := p.NewGraph(4, edges)
	require.NoError(t, err)
}

func TestPipeline_BuildAndQuery(t *testing.T) {
	p := New(graphstate.New())
	defer p.Close()
	sampleGraph(t, p)

	reply, err := p.Kruskal()
	require.NoError(t, err)
	assert.Contains(t, reply, "Total weight of the MST is: 6")

	reply, err = p.Weight()
	require.NoError(t, err)
	assert.Equal(t, "Total weight of the MST is: 6", reply)

	reply, err = p.ShortestPath(1, 4, true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "Shortest path is: 1 -> 2 -> 3 -> 4"))
}

func TestPipeline_StagesIndependentFIFO(t *testing.T) {
	p := New(graphstate.New())
	defer p.Close()
	sampleGraph(t, p)
	_, err := p.Prim()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = p.Weight()
		}()
		go func() {
			defer wg.Done()
			_, _ = p.AverageDistance()
		}()
	}
	wg.Wait()
}

func TestPipeline_NotInitialized(t *testing.T) {
	p := New(graphstate.New())
	defer p.Close()
	_, err := p.Weight()
	assert.ErrorIs(t, err, graphstate.ErrMSTNotCreated)
}

func TestStages_NamedInOrder(t *testing.T) {
	names := make([]string, 0, len(Stages()))
	for _, s := range Stages() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"edits", "prim", "kruskal", "weight", "shortest", "longest", "average"}, names)
}
