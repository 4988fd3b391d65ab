// Package pipeline assembles the fixed sequence of ActiveObjects the
// Pipeline server front-end dispatches onto: one stage per command kind
// that touches the shared graph/tree, so that same-kind commands from
// different sessions interleave in FIFO order within their stage while
// different kinds proceed independently.
package pipeline

import (
	"github.com/katalvlaran/mstgraphd/internal/activeobject"
	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/mst"
	"github.com/katalvlaran/mstgraphd/internal/protocol"
)

// Stage names the seven ActiveObjects: StageEdits serializes graph-
// construction edits; the rest serialize Prim, Kruskal, weight, shortest,
// longest, and average-distance queries respectively. Exported so
// telemetry can label per-stage queue-depth gauges.
type Stage int

const (
	StageEdits Stage = iota
	StagePrim
	StageKruskal
	StageWeight
	StageShortest
	StageLongest
	StageAverage
	stageCount
)

// String names a Stage for metrics labels.
func (s Stage) String() string {
	switch s {
	case StageEdits:
		return "edits"
	case StagePrim:
		return "prim"
	case StageKruskal:
		return "kruskal"
	case StageWeight:
		return "weight"
	case StageShortest:
		return "shortest"
	case StageLongest:
		return "longest"
	case StageAverage:
		return "average"
	default:
		return "unknown"
	}
}

// Stages lists every Stage in dispatch order, for telemetry registration.
func Stages() []Stage {
	stages := make([]Stage, stageCount)
	for i := range stages {
		stages[i] = Stage(i)
	}

	return stages
}

// Pipeline is the Active-Object concurrency core: a fixed array of
// ActiveObjects fronting the single shared graphstate.State.
type Pipeline struct {
	stages [stageCount]*activeobject.ActiveObject
	state  *graphstate.State
}

// New starts all seven stage workers.
func New(state *graphstate.State) *Pipeline {
	p := &Pipeline{state: state}
	for i := range p.stages {
		p.stages[i] = activeobject.New()
	}

	return p
}

// Close drains and stops every stage, in stage order.
func (p *Pipeline) Close() {
	for _, s := range p.stages {
		s.Close()
	}
}

// QueueDepth reports the pending task count for the given stage, for
// metrics consumers.
func (p *Pipeline) QueueDepth(s Stage) int { return p.stages[s].QueueDepth() }

// dispatch enqueues fn on the given stage and blocks until it signals its
// Completion, returning the accumulated response.
func (p *Pipeline) dispatch(s Stage, fn func() (string, error)) (string, error) {
	c := NewCompletion()
	p.stages[s].Enqueue(func() {
		res, err := fn()
		c.Signal(res, err)
	})

	return c.Wait()
}

// NewGraph enqueues graph (re)construction onto stageEdits.
func (p *Pipeline) NewGraph(n int, edges []protocol.Command) (string, error) {
	return p.dispatch(StageEdits, func() (string, error) {
		return p.state.NewGraph(n, edges)
	})
}

// AddEdge enqueues a single edge insertion onto stageEdits.
func (p *Pipeline) AddEdge(u, v int, w int64) (string, error) {
	return p.dispatch(StageEdits, func() (string, error) {
		return p.state.AddEdge(u, v, w)
	})
}

// RemoveEdge enqueues a single edge removal onto stageEdits.
func (p *Pipeline) RemoveEdge(u, v int) (string, error) {
	return p.dispatch(StageEdits, func() (string, error) {
		return p.state.RemoveEdge(u, v)
	})
}

// Prim enqueues an MST build via Prim onto stagePrim.
func (p *Pipeline) Prim() (string, error) {
	return p.dispatch(StagePrim, func() (string, error) {
		return p.state.BuildMST(mst.MethodPrim)
	})
}

// Kruskal enqueues an MST build via Kruskal onto stageKruskal.
func (p *Pipeline) Kruskal() (string, error) {
	return p.dispatch(StageKruskal, func() (string, error) {
		return p.state.BuildMST(mst.MethodKruskal)
	})
}

// Weight enqueues a total-weight query onto stageWeight.
func (p *Pipeline) Weight() (string, error) {
	return p.dispatch(StageWeight, func() (string, error) {
		return p.state.Weight()
	})
}

// ShortestPath enqueues a shortest-path query onto stageShortest.
func (p *Pipeline) ShortestPath(u, v int, hasEndpoints bool) (string, error) {
	return p.dispatch(StageShortest, func() (string, error) {
		return p.state.ShortestPath(u, v, hasEndpoints)
	})
}

// LongestPath enqueues a diameter query onto stageLongest.
func (p *Pipeline) LongestPath() (string, error) {
	return p.dispatch(StageLongest, func() (string, error) {
		return p.state.LongestPath()
	})
}

// AverageDistance enqueues an average-distance query onto stageAverage.
func (p *Pipeline) AverageDistance() (string, error) {
	return p.dispatch(StageAverage, func() (string, error) {
		return p.state.AverageDistance()
	})
}
