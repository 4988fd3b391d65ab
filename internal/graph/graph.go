// Package graph defines the Graph and Edge primitives that back the server's
// wire protocol: a weighted, undirected graph over 1-based vertex IDs.
//
// Unlike github.com/katalvlaran/lvlath/core, Graph here is NOT internally
// thread-safe. The concurrency cores (pipeline, leader-follower) serialize
// all access behind a single coarse lock, so adding a second layer of
// locking here would only cost cycles without buying any additional safety.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph construction and mutation.
var (
	// ErrInvalidVertexCount indicates a non-positive vertex count was requested.
	ErrInvalidVertexCount = errors.New("graph: vertex count must be positive")

	// ErrVertexOutOfRange indicates a vertex ID outside [1, V].
	ErrVertexOutOfRange = errors.New("graph: vertex out of range")

	// ErrSelfLoop indicates an edge whose endpoints are identical.
	ErrSelfLoop = errors.New("graph: self-loops are not allowed")

	// ErrNegativeWeight indicates a negative edge weight.
	ErrNegativeWeight = errors.New("graph: edge weight must be non-negative")

	// ErrDuplicateEdge indicates an edge already exists between the given endpoints.
	ErrDuplicateEdge = errors.New("graph: duplicate edge")

	// ErrEdgeNotFound indicates no edge exists between the given endpoints.
	ErrEdgeNotFound = errors.New("graph: edge not found")
)

// Edge is a weighted connection between two 1-based vertex IDs.
type Edge struct {
	From, To int
	Weight   int64
}

// Graph is an adjacency-list weighted undirected graph over vertices [1, V].
//
// adj[u] holds every Edge incident to u (mirrored for both endpoints, so an
// undirected edge (u,v,w) appears once in adj[u] as {u,v,w} and once in
// adj[v] as {v,u,w}). Callers needing concurrent access must hold an
// external lock — see internal/graphstate.
type Graph struct {
	v   int
	e   int
	adj [][]Edge
}

// New creates an empty Graph over vertices 1..v. It has no edges yet.
func New(v int) (*Graph, error) {
	if v <= 0 {
		return nil, ErrInvalidVertexCount
	}

	return &Graph{
		v:   v,
		adj: make([][]Edge, v+1), // index 0 unused, vertices are 1-based
	}, nil
}

// V returns the vertex count.
func (g *Graph) V() int { return g.v }

// E returns the current edge count.
func (g *Graph) E() int { return g.e }

func (g *Graph) inRange(u int) bool { return u >= 1 && u <= g.v }

// HasEdge reports whether an edge between u and v already exists.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.inRange(u) {
		return false
	}
	for _, e := range g.adj[u] {
		if e.To == v {
			return true
		}
	}

	return false
}

// AddEdge inserts edge (u,v,w) in both adjacency lists.
//
// Rejects out-of-range vertices, self-loops, negative weights, and
// duplicate unordered pairs. Mirrors the source's "addEdge(u,v,w) -> bool"
// contract but surfaces the reason via a typed sentinel error instead of a
// bare boolean.
func (g *Graph) AddEdge(u, v int, w int64) error {
	if !g.inRange(u) || !g.inRange(v) {
		return ErrVertexOutOfRange
	}
	if u == v {
		return ErrSelfLoop
	}
	if w < 0 {
		return ErrNegativeWeight
	}
	if g.HasEdge(u, v) {
		return ErrDuplicateEdge
	}

	g.adj[u] = append(g.adj[u], Edge{From: u, To: v, Weight: w})
	g.adj[v] = append(g.adj[v], Edge{From: v, To: u, Weight: w})
	g.e++

	return nil
}

// RemoveEdge deletes the edge between u and v, in both directions.
func (g *Graph) RemoveEdge(u, v int) error {
	if !g.inRange(u) || !g.inRange(v) {
		return ErrVertexOutOfRange
	}
	removedU := removeEndpoint(&g.adj[u], v)
	removedV := removeEndpoint(&g.adj[v], u)
	if !removedU || !removedV {
		return ErrEdgeNotFound
	}
	g.e--

	return nil
}

// removeEndpoint deletes the first edge pointing at `to` from the slice,
// reports whether one was found.
func removeEndpoint(edges *[]Edge, to int) bool {
	s := *edges
	for i, e := range s {
		if e.To == to {
			s = append(s[:i], s[i+1:]...)
			*edges = s

			return true
		}
	}

	return false
}

// Neighbors returns the edges incident to u (a copy; safe for the caller to
// mutate or retain).
func (g *Graph) Neighbors(u int) []Edge {
	if !g.inRange(u) {
		return nil
	}
	out := make([]Edge, len(g.adj[u]))
	copy(out, g.adj[u])

	return out
}

// Edges returns every undirected edge exactly once, as {From, To} with
// From < To, ordered by From and, within one From, by the order the edges
// were added.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.e)
	for u := 1; u <= g.v; u++ {
		for _, e := range g.adj[u] {
			if e.From < e.To {
				out = append(out, e)
			}
		}
	}

	return out
}

// TotalWeight sums every undirected edge's weight exactly once.
func (g *Graph) TotalWeight() int64 {
	var total int64
	for _, e := range g.Edges() {
		total += e.Weight
	}

	return total
}

// FormatPath renders a vertex sequence as "a -> b -> ... -> c", or
// "No path" for an empty sequence.
func FormatPath(path []int) string {
	if len(path) == 0 {
		return "No path"
	}
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return strings.Join(parts, " -> ")
}
