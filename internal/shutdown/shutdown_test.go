package shutdown

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	closed int32
	err    error
}

func (f *fakeCloser) Close() error {
	atomic.StoreInt32(&f.closed, 1)

	return f.err
}

func TestCoordinator_WaitClosesInReverseOrder(t *testing.T) {
	co := New(nil)
	var order []int
	first := &orderedCloser{id: 1, order: &order}
	second := &orderedCloser{id: 2, order: &order}
	co.Register(first)
	co.Register(second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		co.Wait(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
	assert.Equal(t, []int{2, 1}, order)
}

func TestCoordinator_LogsFailedClosersButContinues(t *testing.T) {
	co := New(nil)
	bad := &fakeCloser{err: errors.New("boom")}
	good := &fakeCloser{}
	co.Register(bad)
	co.Register(good)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	co.Wait(ctx)

	assert.Equal(t, int32(1), atomic.LoadInt32(&bad.closed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&good.closed))
}

// orderedCloser records the order Close calls happen in. Safe without
// its own lock since Coordinator.Wait runs closers sequentially.
type orderedCloser struct {
	id    int
	order *[]int
}

func (o *orderedCloser) Close() error {
	*o.order = append(*o.order, o.id)

	return nil
}
