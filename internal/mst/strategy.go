// Package mst computes Minimum Spanning Trees over internal/graph.Graph via
// pluggable strategies (Prim, Kruskal) and exposes the resulting Tree's
// derived metrics (weight, diameter, shortest/longest path, average
// distance).
package mst

import (
	"errors"
	"sort"

	"github.com/katalvlaran/mstgraphd/internal/graph"
)

// ErrDisconnected indicates the input graph has no spanning tree (at least
// one vertex is unreachable from the others).
var ErrDisconnected = errors.New("mst: graph is disconnected")

// Method names an MST algorithm. NewStrategy maps a Method to its Strategy
// implementation, which is the value the Factory holds and calls.
type Method int

const (
	// MethodPrim grows the tree outward from vertex 1, scanning every
	// unvisited vertex's frontier edge on each step (dense O(V^2), no
	// heap), tie-breaking on the smallest destination vertex.
	MethodPrim Method = iota
	// MethodKruskal sorts every edge once and accepts it via union-find.
	MethodKruskal
)

// Strategy computes a spanning tree's edge set from a Graph.
type Strategy interface {
	FindMST(g *graph.Graph) ([]graph.Edge, error)
}

// primStrategy implements Strategy via Prim's algorithm starting at vertex 1.
type primStrategy struct{}

// kruskalStrategy implements Strategy via Kruskal's algorithm.
type kruskalStrategy struct{}

// NewStrategy returns the Strategy implementation for m.
func NewStrategy(m Method) Strategy {
	switch m {
	case MethodPrim:
		return primStrategy{}
	case MethodKruskal:
		return kruskalStrategy{}
	default:
		return kruskalStrategy{}
	}
}

// FindMST grows a tree from vertex 1, the dense O(V^2) variant: at each
// step it scans every unvisited vertex for the cheapest connecting edge
// rather than pulling from a global heap, so ties are broken by the
// smallest vertex index, matching the source's tie-break rule exactly.
func (primStrategy) FindMST(g *graph.Graph) ([]graph.Edge, error) {
	n := g.V()
	if n == 1 {
		return []graph.Edge{}, nil
	}

	const inf = graph.InfDistance
	key := make([]int64, n+1)
	parent := make([]int, n+1)
	parentW := make([]int64, n+1)
	inMST := make([]bool, n+1)
	for v := 1; v <= n; v++ {
		key[v] = inf
	}
	key[1] = 0

	for count := 0; count < n; count++ {
		u := -1
		for v := 1; v <= n; v++ {
			if inMST[v] {
				continue
			}
			if u == -1 || key[v] < key[u] {
				u = v
			}
		}
		if key[u] == inf {
			return nil, ErrDisconnected
		}
		inMST[u] = true

		for _, e := range g.Neighbors(u) {
			if !inMST[e.To] && e.Weight < key[e.To] {
				key[e.To] = e.Weight
				parent[e.To] = u
				parentW[e.To] = e.Weight
			}
		}
	}

	edges := make([]graph.Edge, 0, n-1)
	for v := 1; v <= n; v++ {
		if v == 1 {
			continue
		}
		edges = append(edges, graph.Edge{From: parent[v], To: v, Weight: parentW[v]})
	}

	return edges, nil
}

// FindMST sorts all edges once by non-decreasing weight and accepts each
// edge whose endpoints lie in different disjoint-set components, using
// path compression and union by rank.
func (kruskalStrategy) FindMST(g *graph.Graph) ([]graph.Edge, error) {
	n := g.V()
	if n == 1 {
		return []graph.Edge{}, nil
	}

	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	dsu := newDSU(n)
	mst := make([]graph.Edge, 0, n-1)
	for _, e := range edges {
		if dsu.union(e.From, e.To) {
			mst = append(mst, e)
			if len(mst) == n-1 {
				break
			}
		}
	}
	if len(mst) < n-1 {
		return nil, ErrDisconnected
	}

	return mst, nil
}

// dsu is a disjoint-set-union with path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n+1), rank: make([]int, n+1)}
	for i := 0; i <= n; i++ {
		d.parent[i] = i
	}

	return d
}

func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

// union merges the components containing x and y, reporting whether they
// were previously disjoint.
func (d *dsu) union(x, y int) bool {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return false
	}
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}

	return true
}
