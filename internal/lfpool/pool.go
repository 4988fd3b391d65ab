package lfpool

import (
	"log/slog"
	"sync"

	"github.com/katalvlaran/mstgraphd/internal/reactor"
)

// Pool is a Leader-Follower thread pool of fixed size fronting one
// reactor.Reactor. At any instant at most one ThreadContext holds
// leadership and blocks in the reactor's Demux; every other context is
// either a follower waiting its turn or off running a previously
// demuxed handler. This is invariant I1. The slot is left empty when a
// leader demuxes an event while no follower is waiting, until the next
// thread to reach becomeLeader claims it. A leader promotes its successor
// before it runs the handler it demuxed (I2), so handling never serializes behind
// the next Demux call, and a single idle follower queue (rather than a
// shared task queue) avoids both an extra hop and a thundering herd on
// wakeup (I3). Shutdown cancels every context and wakes the current
// leader so the whole pool drains (I4).
type Pool struct {
	reactor *reactor.Reactor
	log     *slog.Logger

	mu        sync.Mutex
	leader    *ThreadContext
	followers []*ThreadContext
	contexts  []*ThreadContext

	shutdown bool
	wg       sync.WaitGroup
}

// New builds a Pool of size threads sharing r, but does not start them —
// call Start.
func New(r *reactor.Reactor, size int, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{reactor: r, log: log}
	for i := 0; i < size; i++ {
		p.contexts = append(p.contexts, NewThreadContext(i))
	}

	return p
}

// Start launches every pool thread; they immediately begin contending
// for leadership.
func (p *Pool) Start() {
	for _, ctx := range p.contexts {
		p.wg.Add(1)
		ctx.Start(func(c *ThreadContext) {
			defer p.wg.Done()
			p.run(c)
		})
	}
}

// run is one thread's leader/follower life cycle: become leader (or wait
// as a follower), demux one event, promote a successor, then handle the
// event outside the leader role, and repeat.
func (p *Pool) run(ctx *ThreadContext) {
	for {
		if ctx.Cancelled() {
			return
		}
		if !p.becomeLeader(ctx) {
			if !ctx.Sleep() {
				return
			}

			continue
		}

		fd, handler, woke, err := p.reactor.Demux()
		if err != nil {
			p.log.Error("lfpool: demux failed", "thread", ctx.ID(), "error", err)
			p.resign(ctx)

			continue
		}
		if woke {
			p.resignAndStop(ctx)

			return
		}

		p.promoteSuccessor(ctx)

		if handler != nil {
			if err := handler.HandleEvent(fd); err != nil {
				p.log.Warn("lfpool: handler error", "thread", ctx.ID(), "fd", fd, "error", err)
			}
			// Demux deactivated fd before handing it to us so no other
			// worker could be dispatched the same readiness notification
			// concurrently; restore it now that handling is done. If the
			// handler already removed fd (e.g. the session closed),
			// Reactivate fails harmlessly against an unregistered fd.
			if err := p.reactor.Reactivate(fd); err != nil {
				p.log.Debug("lfpool: reactivate failed (fd likely removed)", "thread", ctx.ID(), "fd", fd, "error", err)
			}
		}

		p.rejoinFollowers(ctx)
	}
}

// becomeLeader claims leadership for ctx if nobody else holds it.
// Returns false if ctx must wait as a follower instead.
func (p *Pool) becomeLeader(ctx *ThreadContext) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return false
	}
	if p.leader == ctx {
		// promoteSuccessor already installed ctx as leader and woke it;
		// this is that same thread re-entering the top of run() to go
		// straight back into Demux, not a fresh contender.
		return true
	}
	if p.leader != nil {
		p.followers = append(p.followers, ctx)

		return false
	}
	p.leader = ctx

	return true
}

// promoteSuccessor hands leadership to the longest-waiting follower, or
// clears the leader slot if none are waiting — the next thread to call
// becomeLeader claims it uncontested.
func (p *Pool) promoteSuccessor(ctx *ThreadContext) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.leader != ctx {
		return
	}
	if len(p.followers) == 0 {
		p.leader = nil

		return
	}
	next := p.followers[0]
	p.followers = p.followers[1:]
	p.leader = next
	next.WakeUp()
}

// rejoinFollowers re-enters ctx into leadership contention after it
// finishes handling an event. If nobody has claimed leadership since
// promoteSuccessor cleared it, ctx's next becomeLeader call at the top
// of run claims it uncontested — rejoinFollowers only needs to queue ctx
// as a follower when someone already has.
func (p *Pool) rejoinFollowers(ctx *ThreadContext) {
	p.mu.Lock()
	if p.shutdown || p.leader == nil {
		p.mu.Unlock()

		return
	}
	p.followers = append(p.followers, ctx)
	p.mu.Unlock()

	ctx.Sleep()
}

// resign releases leadership after a demux error by handing it to the
// longest-waiting follower (or clearing the slot if none waits), so
// another thread can retry.
func (p *Pool) resign(ctx *ThreadContext) {
	p.promoteSuccessor(ctx)
}

// resignAndStop releases leadership and cancels every context, used when
// the reactor's wake fd fires (Shutdown).
func (p *Pool) resignAndStop(ctx *ThreadContext) {
	p.mu.Lock()
	p.shutdown = true
	p.leader = nil
	followers := p.followers
	p.followers = nil
	p.mu.Unlock()

	for _, f := range followers {
		f.Cancel()
	}
	for _, c := range p.contexts {
		c.Cancel()
	}
}

// Shutdown cancels every thread and wakes the reactor so the current
// leader's Demux call returns, then waits for all pool goroutines to
// exit.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	p.shutdown = true
	followers := p.followers
	p.followers = nil
	p.mu.Unlock()

	for _, f := range followers {
		f.Cancel()
	}
	for _, c := range p.contexts {
		c.Cancel()
	}
	if err := p.reactor.Wake(); err != nil {
		return err
	}
	p.wg.Wait()

	return nil
}
