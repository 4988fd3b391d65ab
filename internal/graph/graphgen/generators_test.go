package graphgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_EdgeCount(t *testing.T) {
	g, err := Complete(5, UnitWeight, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 5, g.V())
	assert.Len(t, g.Edges(), 10) // C(5,2)
}

func TestCycle_EdgeCount(t *testing.T) {
	g, err := Cycle(6, UnitWeight, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 6)
}

func TestCycle_RejectsTooFewVertices(t *testing.T) {
	_, err := Cycle(2, UnitWeight, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrTooFewVertices)
}

func TestPath_EdgeCount(t *testing.T) {
	g, err := Path(5, UnitWeight, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 4)
}

func TestRandomSparse_AlwaysConnectedViaSpanningPath(t *testing.T) {
	g, err := RandomSparse(10, 0.0, UnitWeight, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 9)
}

func TestRandomSparse_RejectsBadProbability(t *testing.T) {
	_, err := RandomSparse(5, 1.5, UnitWeight, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestUniformWeight_WithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	wf := UniformWeight(2, 5)
	for i := 0; i < 50; i++ {
		w := wf(rng)
		assert.GreaterOrEqual(t, w, int64(2))
		assert.LessOrEqual(t, w, int64(5))
	}
}
