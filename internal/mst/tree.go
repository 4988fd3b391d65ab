package mst

import (
	"errors"

	"github.com/katalvlaran/mstgraphd/internal/graph"
)

// ErrWrongEdgeCount indicates the supplied edge set does not have exactly
// V-1 edges, so it cannot be a spanning tree over V vertices.
var ErrWrongEdgeCount = errors.New("mst: tree must have exactly V-1 edges")

// Tree is a Graph specialization with the extra invariant E = V-1 and
// acyclicity: it is read-only after construction except for wholesale
// replacement by a new Prim/Kruskal run. It embeds a graph.Graph built
// from its own edges so shortest-path and all-pairs-distance queries can
// be served by the same machinery as a general Graph.
type Tree struct {
	g *graph.Graph

	// distCache is filled lazily by distances() and invalidated only by
	// constructing a new Tree (the type has no mutators).
	distCache *graph.DistanceMatrix
}

// NewTree builds a Tree from a V-1 edge set. It is the sole constructor;
// Factory.CreateMST is the only intended caller, but the contract is
// checked here regardless of caller.
func NewTree(v int, edges []graph.Edge) (*Tree, error) {
	if v > 1 && len(edges) != v-1 {
		return nil, ErrWrongEdgeCount
	}
	if v == 1 && len(edges) != 0 {
		return nil, ErrWrongEdgeCount
	}

	g, err := graph.New(v)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}

	return &Tree{g: g}, nil
}

// V returns the vertex count.
func (t *Tree) V() int { return t.g.V() }

// Edges returns the tree's V-1 edges.
func (t *Tree) Edges() []graph.Edge { return t.g.Edges() }

// TotalWeight sums the tree's edge weights.
func (t *Tree) TotalWeight() int64 { return t.g.TotalWeight() }

// ShortestPath delegates to the embedded Graph's Dijkstra. On a tree this
// is also the *only* path between u and v (P5), so it equals LongestPath
// when called with the same endpoints.
func (t *Tree) ShortestPath(u, v int) (string, int64, error) {
	return t.g.ShortestPath(u, v)
}

// LongestPath returns the unique path from u to v via a single DFS from u
// recording parent pointers, per the source's tree-only shortcut (a
// generic Dijkstra would reach the same answer but at needless cost on a
// tree, since there is only one path to find).
func (t *Tree) LongestPath(u, v int) (string, int64, error) {
	if u < 1 || u > t.V() || v < 1 || v > t.V() {
		return "", 0, graph.ErrVertexOutOfRange
	}

	parent, dist, _ := t.dfsFrom(u)
	if parent == nil {
		return "No path", graph.InfDistance, nil
	}

	path := []int{v}
	for path[len(path)-1] != u {
		cur := path[len(path)-1]
		p, ok := parent[cur]
		if !ok {
			return "No path", graph.InfDistance, nil
		}
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return graph.FormatPath(path), dist[v], nil
}

// Diameter returns the tree's diameter: the farthest-pair distance, found
// via the standard two-pass method (farthest node p from an arbitrary
// start, then farthest node q from p; dist(p,q) is the diameter).
func (t *Tree) Diameter() int64 {
	if t.V() <= 1 {
		return 0
	}
	_, dist1, _ := t.dfsFrom(1)
	p := farthest(dist1)
	_, dist2, _ := t.dfsFrom(p)
	q := farthest(dist2)

	return dist2[q]
}

// AverageDistance returns the mean pairwise distance over all reachable
// vertex pairs, computed via Floyd-Warshall.
func (t *Tree) AverageDistance() float64 {
	return t.distances().AverageDistance()
}

// ShortestPair designates the "shortest pair" Floyd-Warshall variant: the
// minimum finite off-diagonal distance anywhere in the tree, together with
// its path (reconstructed via Dijkstra, per the source's two-algorithm
// design — keep distinct from ShortestPath(u,v)).
func (t *Tree) ShortestPair() (path string, dist int64, err error) {
	u, v, d, ok := t.distances().ClosestPair()
	if !ok {
		return "No path", graph.InfDistance, nil
	}
	path, _, err = t.ShortestPath(u, v)
	if err != nil {
		return "", 0, err
	}

	return path, int64(d), nil
}

// distances lazily computes and caches the all-pairs distance matrix.
func (t *Tree) distances() *graph.DistanceMatrix {
	if t.distCache == nil {
		t.distCache = t.g.FloydWarshall()
	}

	return t.distCache
}

// dfsFrom walks the tree from start, returning parent pointers and
// weighted distances for every reachable vertex (all of them, since a
// tree is connected by construction).
func (t *Tree) dfsFrom(start int) (parent map[int]int, dist map[int]int64, order []int) {
	parent = make(map[int]int)
	dist = map[int]int64{start: 0}
	visited := make([]bool, t.V()+1)
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, u)
		for _, e := range t.g.Neighbors(u) {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			parent[e.To] = u
			dist[e.To] = dist[u] + e.Weight
			stack = append(stack, e.To)
		}
	}

	return parent, dist, order
}

// farthest returns the vertex with the maximum distance recorded in dist.
func farthest(dist map[int]int64) int {
	best, bestDist := 0, int64(-1)
	for v, d := range dist {
		if d > bestDist {
			best, bestDist = v, d
		}
	}

	return best
}
