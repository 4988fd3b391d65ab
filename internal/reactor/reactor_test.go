package reactor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestReactor_DispatchesReadyHandler(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	var fds [2]int
	require.NoError(t, unix.Pipe2(fds[:], unix.O_NONBLOCK))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	var called int32
	require.NoError(t, r.AddHandle(fds[0], HandlerFunc(func(fd int) error {
		var buf [1]byte
		_, _ = unix.Read(fd, buf[:])
		atomic.StoreInt32(&called, 1)

		return nil
	})))

	_, err = unix.Write(fds[1], []byte{'x'})
	require.NoError(t, err)

	n, err := r.Wait()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, int32(1), atomic.LoadInt32(&called))
}

func TestReactor_WakeUnblocksWait(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	done := make(chan struct{})
	go func() {
		_, _ = r.Wait()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, r.Wake())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Wake")
	}
}

func TestReactor_DemuxReturnsReadyFdWithoutHandling(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	var fds [2]int
	require.NoError(t, unix.Pipe2(fds[:], unix.O_NONBLOCK))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	var called int32
	require.NoError(t, r.AddHandle(fds[0], HandlerFunc(func(fd int) error {
		atomic.StoreInt32(&called, 1)

		return nil
	})))
	_, err = unix.Write(fds[1], []byte{'x'})
	require.NoError(t, err)

	fd, h, woke, err := r.Demux()
	require.NoError(t, err)
	require.False(t, woke)
	require.Equal(t, fds[0], fd)
	require.Equal(t, int32(0), atomic.LoadInt32(&called))
	require.NoError(t, h.HandleEvent(fd))
	require.Equal(t, int32(1), atomic.LoadInt32(&called))
}

func TestReactor_DemuxDeactivatesUntilReactivated(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	var fds [2]int
	require.NoError(t, unix.Pipe2(fds[:], unix.O_NONBLOCK))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	require.NoError(t, r.AddHandle(fds[0], HandlerFunc(func(int) error { return nil })))
	_, err = unix.Write(fds[1], []byte{'x'})
	require.NoError(t, err)

	fd, _, woke, err := r.Demux()
	require.NoError(t, err)
	require.False(t, woke)
	require.Equal(t, fds[0], fd)

	// The write is still unread, so fds[0] remains level-triggered ready,
	// but Demux deactivated it: a second Demux must not return it again.
	demuxed := make(chan struct{})
	go func() {
		_, _, _, _ = r.Demux()
		close(demuxed)
	}()

	select {
	case <-demuxed:
		t.Fatal("Demux returned a deactivated fd before Reactivate")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, r.Reactivate(fd))

	select {
	case <-demuxed:
	case <-time.After(time.Second):
		t.Fatal("Demux did not return fd again after Reactivate")
	}
}

func TestReactor_RemoveHandleIsIdempotent(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	var fds [2]int
	require.NoError(t, unix.Pipe2(fds[:], unix.O_NONBLOCK))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	require.NoError(t, r.AddHandle(fds[0], HandlerFunc(func(int) error { return nil })))
	r.RemoveHandle(fds[0])
	r.RemoveHandle(fds[0])
}
