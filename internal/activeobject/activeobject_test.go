package activeobject_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/mstgraphd/internal/activeobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFIFOOrdering verifies P1: tasks enqueued in order by one producer
// run to completion in that same order.
func TestFIFOOrdering(t *testing.T) {
	ao := activeobject.New()
	defer ao.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		i := i
		ao.Enqueue(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		assert.Equal(t, i, order[i])
	}
}

// TestCloseDrainsQueue verifies that Close blocks until every task
// enqueued before it was called has run.
func TestCloseDrainsQueue(t *testing.T) {
	ao := activeobject.New()
	var ran int32
	for i := 0; i < 50; i++ {
		ao.Enqueue(func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&ran, 1)
		})
	}
	ao.Close()
	assert.Equal(t, int32(50), ran)
}

// TestEnqueueAfterCloseIsNoop verifies that a task enqueued after Close
// has returned is dropped and never runs.
func TestEnqueueAfterCloseIsNoop(t *testing.T) {
	ao := activeobject.New()
	ao.Close()

	done := make(chan struct{})
	ao.Enqueue(func() { close(done) })
	select {
	case <-done:
		t.Fatal("task enqueued after Close must not run")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestQueueDepth(t *testing.T) {
	ao := activeobject.New()
	defer ao.Close()

	block := make(chan struct{})
	ao.Enqueue(func() { <-block })
	ao.Enqueue(func() {})
	ao.Enqueue(func() {})

	require.Eventually(t, func() bool { return ao.QueueDepth() == 2 }, time.Second, time.Millisecond)
	close(block)
}
