// SPDX-License-Identifier: MIT
//
// Package graphgen builds deterministic graph.Graph instances for tests,
// adapted from lvlath's
// builder constructors to the weighted-int-vertex internal/graph.Graph
// shape instead of core.Graph's string-keyed vertices.
package graphgen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mstgraphd/internal/graph"
)

// ErrTooFewVertices reports a vertex count below a constructor's minimum.
var ErrTooFewVertices = fmt.Errorf("graphgen: too few vertices")

// WeightFunc produces an edge weight given a random source. UnitWeight
// and UniformWeight(lo, hi) are the two callers typically reach for.
type WeightFunc func(rng *rand.Rand) int64

// UnitWeight always returns 1, for generators exercising MST structure
// without caring about weight distribution.
func UnitWeight(*rand.Rand) int64 { return 1 }

// UniformWeight returns a WeightFunc drawing uniformly from [lo, hi].
func UniformWeight(lo, hi int64) WeightFunc {
	span := hi - lo + 1

	return func(rng *rand.Rand) int64 { return lo + rng.Int63n(span) }
}

// Complete builds the complete graph K_n: every pair of distinct
// vertices connected once, weighted by weightFn.
func Complete(n int, weightFn WeightFunc, rng *rand.Rand) (*graph.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("graphgen: Complete: n=%d: %w", n, ErrTooFewVertices)
	}
	g, err := graph.New(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if err := g.AddEdge(i, j, weightFn(rng)); err != nil {
				return nil, fmt.Errorf("graphgen: Complete: AddEdge(%d,%d): %w", i, j, err)
			}
		}
	}

	return g, nil
}

// Cycle builds the n-vertex cycle C_n: edges i -> i+1 for i=1..n-1, plus
// n -> 1 closing the loop.
func Cycle(n int, weightFn WeightFunc, rng *rand.Rand) (*graph.Graph, error) {
	const minCycleNodes = 3
	if n < minCycleNodes {
		return nil, fmt.Errorf("graphgen: Cycle: n=%d < min=%d: %w", n, minCycleNodes, ErrTooFewVertices)
	}
	g, err := graph.New(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		next := i + 1
		if next > n {
			next = 1
		}
		if err := g.AddEdge(i, next, weightFn(rng)); err != nil {
			return nil, fmt.Errorf("graphgen: Cycle: AddEdge(%d,%d): %w", i, next, err)
		}
	}

	return g, nil
}

// Path builds the n-vertex simple path P_n: edges i -> i+1 for i=1..n-1.
func Path(n int, weightFn WeightFunc, rng *rand.Rand) (*graph.Graph, error) {
	const minPathNodes = 2
	if n < minPathNodes {
		return nil, fmt.Errorf("graphgen: Path: n=%d < min=%d: %w", n, minPathNodes, ErrTooFewVertices)
	}
	g, err := graph.New(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if err := g.AddEdge(i, i+1, weightFn(rng)); err != nil {
			return nil, fmt.Errorf("graphgen: Path: AddEdge(%d,%d): %w", i, i+1, err)
		}
	}

	return g, nil
}

// RandomSparse samples an Erdős–Rényi-like graph over n vertices,
// including each unordered pair {i,j}, i<j, independently with
// probability p. A spanning path is added first so the result is always
// connected — MSTweight/Shortestpath/Averdist all assume a connected
// graph, and an Erdős–Rényi draw at low p is frequently not.
func RandomSparse(n int, p float64, weightFn WeightFunc, rng *rand.Rand) (*graph.Graph, error) {
	const minNodes = 1
	if n < minNodes {
		return nil, fmt.Errorf("graphgen: RandomSparse: n=%d: %w", n, ErrTooFewVertices)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("graphgen: RandomSparse: p=%.6f not in [0,1]", p)
	}
	g, err := graph.New(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if err := g.AddEdge(i, i+1, weightFn(rng)); err != nil {
			return nil, fmt.Errorf("graphgen: RandomSparse: spanning path: %w", err)
		}
	}
	for i := 1; i <= n; i++ {
		for j := i + 2; j <= n; j++ {
			if rng.Float64() >= p {
				continue
			}
			if g.HasEdge(i, j) {
				continue
			}
			if err := g.AddEdge(i, j, weightFn(rng)); err != nil {
				return nil, fmt.Errorf("graphgen: RandomSparse: AddEdge(%d,%d): %w", i, j, err)
			}
		}
	}

	return g, nil
}
