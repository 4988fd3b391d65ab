// Package graphstate holds the single shared Graph/Tree/MSTFactory that
// every connected session reads and mutates, behind one coarse lock. Both
// concurrency cores (pipeline, leader-follower) call into the same State:
// the pipeline reaches it from inside stage closures, the LF core reaches
// it directly from an event handler. Either way, State.mu is the
// "graphLock"/"treeLock"/"graphMutex" the spec describes — readers take it
// too, since Graph and Tree are not internally thread-safe (see
// internal/graph's package doc).
package graphstate

import (
	"errors"
	"sync"

	"github.com/katalvlaran/mstgraphd/internal/graph"
	"github.com/katalvlaran/mstgraphd/internal/mst"
	"github.com/katalvlaran/mstgraphd/internal/protocol"
)

// ErrGraphNotInitialized is returned by any operation requiring a graph
// when none has been created yet.
var ErrGraphNotInitialized = errors.New("graphstate: graph not initialized")

// ErrMSTNotCreated is returned by any operation requiring an MST when
// Prim/Kruskal has not yet been run.
var ErrMSTNotCreated = errors.New("graphstate: MST not created")

// State is the server-wide shared graph/tree/factory, one per server
// process regardless of how many clients are connected.
type State struct {
	mu      sync.Mutex
	graph   *graph.Graph
	tree    *mst.Tree
	factory *mst.Factory
}

// New returns an empty State with no graph yet and Kruskal as the default
// strategy (mst.NewFactory's default).
func New() *State {
	return &State{factory: mst.NewFactory()}
}

// NewGraph replaces the current graph (and drops any existing tree),
// adding the given edge definitions; edges the graph rejects are skipped.
// Returns the formatted reply, which counts only the edges added.
func (s *State) NewGraph(n int, edges []protocol.Command) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := graph.New(n)
	if err != nil {
		return "", err
	}
	applied := 0
	for _, e := range edges {
		if err := g.AddEdge(e.U, e.V, e.Weight); err == nil {
			applied++
		}
	}
	s.graph = g
	s.tree = nil

	return protocol.GraphCreated(n, applied), nil
}

// AddEdge adds one edge to the current graph.
func (s *State) AddEdge(u, v int, w int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return "", ErrGraphNotInitialized
	}
	if err := s.graph.AddEdge(u, v, w); err != nil {
		return protocol.InvalidEdge(u, v, err), nil
	}

	return protocol.EdgeAdded(u, v, w), nil
}

// RemoveEdge removes one edge from the current graph.
func (s *State) RemoveEdge(u, v int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return "", ErrGraphNotInitialized
	}
	if err := s.graph.RemoveEdge(u, v); err != nil {
		return protocol.EdgeNotExist(u, v), nil
	}

	return protocol.EdgeRemoved(u, v), nil
}

// BuildMST runs the chosen strategy over the current graph, replacing any
// existing tree, and returns the full aggregate MST dump.
func (s *State) BuildMST(method mst.Method) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return "", ErrGraphNotInitialized
	}
	s.factory.SetStrategy(method)
	tree, err := s.factory.CreateMST(s.graph)
	if err != nil {
		return "", err
	}
	s.tree = tree

	pairPath, pairDist, err := tree.ShortestPair()
	if err != nil {
		return "", err
	}

	return protocol.MSTDump(tree.Edges(), tree.TotalWeight(), tree.Diameter(), tree.AverageDistance(), pairPath, pairDist), nil
}

// Prim builds the MST via Prim's algorithm. Convenience wrapper so State
// satisfies the same Handler shape as the pipeline core.
func (s *State) Prim() (string, error) { return s.BuildMST(mst.MethodPrim) }

// Kruskal builds the MST via Kruskal's algorithm.
func (s *State) Kruskal() (string, error) { return s.BuildMST(mst.MethodKruskal) }

// Weight returns the current MST's total weight reply.
func (s *State) Weight() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return "", ErrMSTNotCreated
	}

	return protocol.Weight(s.tree.TotalWeight()), nil
}

// ShortestPath answers either the point-to-point or the pair variant,
// matching the source's "two shortestPath semantics" design note.
func (s *State) ShortestPath(u, v int, hasEndpoints bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return "", ErrMSTNotCreated
	}
	if !hasEndpoints {
		path, dist, err := s.tree.ShortestPair()
		if err != nil {
			return "", err
		}

		return protocol.ShortestPair(path, dist), nil
	}
	if u < 1 || u > s.tree.V() || v < 1 || v > s.tree.V() {
		return protocol.VertexOutOfRange(outOfRangeVertex(u, v, s.tree.V()), s.tree.V()), nil
	}
	path, dist, err := s.tree.ShortestPath(u, v)
	if err != nil {
		return "", err
	}

	return protocol.ShortestPath(path, dist), nil
}

// LongestPath returns the MST's diameter reply.
func (s *State) LongestPath() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return "", ErrMSTNotCreated
	}

	return protocol.Diameter(s.tree.Diameter()), nil
}

// AverageDistance returns the MST's average pairwise distance reply.
func (s *State) AverageDistance() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return "", ErrMSTNotCreated
	}

	return protocol.AverageDistance(s.tree.AverageDistance()), nil
}

func outOfRangeVertex(u, v, maxV int) int {
	if u < 1 || u > maxV {
		return u
	}

	return v
}
