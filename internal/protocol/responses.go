package protocol

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/mstgraphd/internal/graph"
)

// The strings below are fixed by §6's command grammar table; keep them
// stable since the package and end-to-end tests match on their text.

// GraphCreated formats the reply to a successful Newgraph.
func GraphCreated(n, m int) string {
	return fmt.Sprintf("Graph created with %d vertices and %d edges.", n, m)
}

// EdgeAdded formats the reply to a successful AddEdge.
func EdgeAdded(u, v int, w int64) string {
	return fmt.Sprintf("Edge added: %d-%d (weight %d).", u, v, w)
}

// InvalidEdge formats the reply to a rejected AddEdge.
func InvalidEdge(u, v int, reason error) string {
	return fmt.Sprintf("Invalid edge %d-%d: %v.", u, v, reason)
}

// EdgeRemoved formats the reply to a successful RemoveEdge.
func EdgeRemoved(u, v int) string {
	return fmt.Sprintf("Edge removed: %d-%d.", u, v)
}

// EdgeNotExist formats the reply when RemoveEdge targets a missing edge.
func EdgeNotExist(u, v int) string {
	return fmt.Sprintf("Edge %d-%d does not exist.", u, v)
}

// MSTDump formats the full aggregate reply to Prim/Kruskal: the MST
// edges, total weight, diameter, average distance, and the shortest pair.
func MSTDump(edges []graph.Edge, weight, diameter int64, avgDist float64, pairPath string, pairDist int64) string {
	var b strings.Builder
	b.WriteString("MST edges: ")
	for i, e := range edges {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d-%d(%d)", e.From, e.To, e.Weight)
	}
	fmt.Fprintf(&b, "\nTotal weight of the MST is: %d\n", weight)
	fmt.Fprintf(&b, "The longest path (diameter) of the MST is: %d\n", diameter)
	fmt.Fprintf(&b, "Average distance of the MST is: %.2f\n", avgDist)
	fmt.Fprintf(&b, "Shortest path (pair) is: %s [%d]", pairPath, pairDist)

	return b.String()
}

// Weight formats the reply to MSTweight.
func Weight(total int64) string {
	return fmt.Sprintf("Total weight of the MST is: %d", total)
}

// ShortestPath formats the reply to Shortestpath u v.
func ShortestPath(path string, weight int64) string {
	return fmt.Sprintf("Shortest path is: %s [%d]", path, weight)
}

// ShortestPair formats the reply to no-argument Shortestpath.
func ShortestPair(path string, weight int64) string {
	return fmt.Sprintf("Shortest path (pair) is: %s [%d]", path, weight)
}

// Diameter formats the reply to Longestpath.
func Diameter(d int64) string {
	return fmt.Sprintf("The longest path (diameter) of the MST is: %d", d)
}

// AverageDistance formats the reply to Averdist.
func AverageDistance(avg float64) string {
	return fmt.Sprintf("Average distance of the MST is: %.2f", avg)
}

// Goodbye is the fixed reply to Exit.
const Goodbye = "Goodbye"

// InvalidCommand formats the reply to an unrecognized command line.
func InvalidCommand(raw string) string {
	return fmt.Sprintf("Invalid command: %s", raw)
}

// Fixed precondition-failure replies (§7 PreconditionUnmet).
const (
	GraphNotInitialized = "Graph not initialized."
	MSTNotCreated       = "MST not created."
	ResourceBusy        = "Resource busy, try again."
)

// VertexOutOfRange formats a precondition failure naming the offending vertex.
func VertexOutOfRange(v, maxV int) string {
	return fmt.Sprintf("Vertex %d out of range [1,%d].", v, maxV)
}
