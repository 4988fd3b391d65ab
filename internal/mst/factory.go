package mst

import "github.com/katalvlaran/mstgraphd/internal/graph"

// Factory holds the currently selected MST Strategy and builds Trees from
// it. Replacing the strategy releases the old one (Go's GC makes this
// implicit: dropping the last reference is enough, there is no explicit
// destroyStrategy to call).
type Factory struct {
	strategy Strategy
}

// NewFactory returns a Factory defaulting to Kruskal, mirroring
// prim_kruskal.DefaultOptions().
func NewFactory() *Factory {
	return &Factory{strategy: NewStrategy(MethodKruskal)}
}

// SetStrategy swaps the active Strategy.
func (f *Factory) SetStrategy(m Method) {
	f.strategy = NewStrategy(m)
}

// CreateMST runs the active strategy over g and wraps the result in a Tree.
func (f *Factory) CreateMST(g *graph.Graph) (*Tree, error) {
	edges, err := f.strategy.FindMST(g)
	if err != nil {
		return nil, err
	}

	return NewTree(g.V(), edges)
}
