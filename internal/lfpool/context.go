// Package lfpool implements the Leader-Follower thread pool: a fixed set
// of ThreadContexts that take turns demultiplexing events from a shared
// reactor.Reactor, so exactly one goroutine ever blocks in epoll_wait and
// no shared task queue or wakeup storm is needed to hand work to an idle
// worker.
package lfpool

import "sync"

// ThreadContext wraps one pool worker goroutine with a private wake/sleep
// gate. Native thread cancellation has no Go equivalent, so Cancel here
// works the way an eventfd-based self-pipe does: it flips a flag and
// wakes whatever the goroutine is waiting on, and the goroutine itself is
// responsible for noticing Cancelled() and returning.
type ThreadContext struct {
	id int

	mu        sync.Mutex
	cond      *sync.Cond
	awake     bool
	cancelled bool

	done chan struct{}
}

// NewThreadContext returns a ThreadContext that has not been started yet.
func NewThreadContext(id int) *ThreadContext {
	t := &ThreadContext{id: id, done: make(chan struct{})}
	t.cond = sync.NewCond(&t.mu)

	return t
}

// ID returns this context's pool-assigned index, for logging.
func (t *ThreadContext) ID() int { return t.id }

// Start spawns the worker goroutine, which runs fn(t) until fn returns.
// The done channel closes when fn returns, so Join can wait on it.
func (t *ThreadContext) Start(fn func(*ThreadContext)) {
	go func() {
		defer close(t.done)
		fn(t)
	}()
}

// Sleep parks the calling goroutine until WakeUp or Cancel is called.
// Returns false if it woke because of cancellation.
func (t *ThreadContext) Sleep() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for !t.awake && !t.cancelled {
		t.cond.Wait()
	}
	awake := !t.cancelled
	t.awake = false

	return awake
}

// WakeUp wakes a goroutine parked in Sleep.
func (t *ThreadContext) WakeUp() {
	t.mu.Lock()
	t.awake = true
	t.cond.Broadcast()
	t.mu.Unlock()
}

// Cancel requests this context's goroutine stop and wakes it if parked in
// Sleep. It does not block; call Join to wait for actual exit.
func (t *ThreadContext) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.cond.Broadcast()
	t.mu.Unlock()
}

// Cancelled reports whether Cancel has been called.
func (t *ThreadContext) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cancelled
}

// Join blocks until the worker goroutine returns.
func (t *ThreadContext) Join() {
	<-t.done
}
