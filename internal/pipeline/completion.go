package pipeline

import "sync"

// Completion is a per-command record a session waits on while a pipeline
// stage closure runs. It is owned by value by the session issuing the
// command; the enqueued closure only borrows a pointer to it, never the
// session's other locals — the source's lambdas captured `src`, `dest`,
// `res` by reference into the queue while the session thread kept
// mutating them, which this record exists specifically to avoid (see
// SPEC_FULL.md design notes).
type Completion struct {
	mu     sync.Mutex
	cond   *sync.Cond
	done   bool
	result string
	err    error
}

// NewCompletion returns a fresh, unsignaled Completion.
func NewCompletion() *Completion {
	c := &Completion{}
	c.cond = sync.NewCond(&c.mu)

	return c
}

// Signal records the command's outcome and wakes the waiter. Safe to call
// exactly once per Completion; later calls are ignored.
func (c *Completion) Signal(result string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.result, c.err, c.done = result, err, true
	c.cond.Broadcast()
}

// Wait blocks until Signal has been called and returns its arguments.
func (c *Completion) Wait() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.done {
		c.cond.Wait()
	}

	return c.result, c.err
}
