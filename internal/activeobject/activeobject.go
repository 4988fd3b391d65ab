// Package activeobject implements the Active Object concurrency pattern: a
// single dedicated worker goroutine draining a FIFO queue of closures, so
// that callers enqueueing work never block on its execution.
package activeobject

import (
	"sync"
)

// Task is a unit of work executed by an ActiveObject's worker.
type Task func()

// ActiveObject owns one worker goroutine and a FIFO queue of Tasks.
//
// Contract:
//   - Enqueue never blocks beyond acquiring the queue mutex; it is safe
//     for any number of concurrent producers.
//   - Tasks run strictly in enqueue order, one at a time, on the worker
//     goroutine: for two tasks t1 then t2 enqueued (in that order) by the
//     same caller, t1 happens-before t2's invocation.
//   - Close drains every task already queued before it was called, then
//     stops the worker; tasks enqueued after Close is observed by the
//     worker are discarded.
type ActiveObject struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []Task
	done     bool
	finished chan struct{}
}

// New starts the worker goroutine and returns the ActiveObject.
func New() *ActiveObject {
	ao := &ActiveObject{finished: make(chan struct{})}
	ao.cond = sync.NewCond(&ao.mu)
	go ao.run()

	return ao
}

// Enqueue appends task to the tail of the queue and wakes the worker.
// It is a no-op once Close has been called.
func (ao *ActiveObject) Enqueue(task Task) {
	ao.mu.Lock()
	if ao.done {
		ao.mu.Unlock()
		return
	}
	ao.queue = append(ao.queue, task)
	ao.mu.Unlock()
	ao.cond.Signal()
}

// QueueDepth reports the number of tasks currently waiting (not counting
// one that may be mid-execution). Intended for metrics, not control flow.
func (ao *ActiveObject) QueueDepth() int {
	ao.mu.Lock()
	defer ao.mu.Unlock()

	return len(ao.queue)
}

// run is the worker loop: wait for (done || !empty), pop, unlock, execute.
func (ao *ActiveObject) run() {
	defer close(ao.finished)
	for {
		ao.mu.Lock()
		for len(ao.queue) == 0 && !ao.done {
			ao.cond.Wait()
		}
		if len(ao.queue) == 0 && ao.done {
			ao.mu.Unlock()
			return
		}
		task := ao.queue[0]
		ao.queue = ao.queue[1:]
		ao.mu.Unlock()

		task() // executed outside the lock, per the one-at-a-time contract
	}
}

// Close sets the termination flag, wakes the worker so it observes it, and
// blocks until every task enqueued before this call has run.
func (ao *ActiveObject) Close() {
	ao.mu.Lock()
	ao.done = true
	ao.mu.Unlock()
	ao.cond.Broadcast()
	<-ao.finished
}
