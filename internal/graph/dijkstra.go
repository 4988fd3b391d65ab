package graph

import (
	"container/heap"
	"math"
)

// InfDistance is the sentinel returned for unreachable vertices.
const InfDistance = math.MaxInt64

// ShortestPath runs Dijkstra's algorithm from src and returns the path to
// dst (inclusive of both endpoints) together with its total weight.
//
// A vertex's predecessor changes only on a strictly shorter distance, so
// the first route found at the final distance is kept. Among queued
// vertices with equal distance, the pop order is whatever container/heap
// yields, which is not guaranteed to follow insertion order, so when several
// equal-weight shortest paths exist, which one is reported is not defined.
//
// Returns ("No path", InfDistance, nil) when dst is unreachable from src.
func (g *Graph) ShortestPath(src, dst int) (string, int64, error) {
	if !g.inRange(src) || !g.inRange(dst) {
		return "", 0, ErrVertexOutOfRange
	}

	dist := make([]int64, g.v+1)
	prev := make([]int, g.v+1)
	visited := make([]bool, g.v+1)
	for i := range dist {
		dist[i] = InfDistance
		prev[i] = 0
	}
	dist[src] = 0

	pq := &nodeHeap{{vertex: src, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			break
		}
		for _, e := range g.adj[u] {
			if visited[e.To] {
				continue
			}
			nd := dist[u] + e.Weight
			if nd < dist[e.To] {
				dist[e.To] = nd
				prev[e.To] = u
				heap.Push(pq, nodeItem{vertex: e.To, dist: nd})
			}
		}
	}

	if dist[dst] == InfDistance {
		return "No path", InfDistance, nil
	}

	return FormatPath(reconstructPath(prev, src, dst)), dist[dst], nil
}

// reconstructPath walks prev[] backward from dst to src and returns the
// forward-ordered vertex sequence.
func reconstructPath(prev []int, src, dst int) []int {
	path := []int{dst}
	for path[len(path)-1] != src {
		v := prev[path[len(path)-1]]
		path = append(path, v)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// nodeItem pairs a vertex with its current best-known distance from the
// source, for ordering inside nodeHeap.
type nodeItem struct {
	vertex int
	dist   int64
}

// nodeHeap is a min-heap of nodeItem ordered by dist ascending, using the
// "lazy decrease-key" strategy: stale entries are dropped on Pop via the
// visited[] check in ShortestPath rather than removed eagerly.
type nodeHeap []nodeItem

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(nodeItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
