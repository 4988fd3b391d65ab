// Package reactor implements the single-threaded readiness multiplexer the
// Leader-Follower core promotes threads into: one goroutine blocks in
// EpollWait. Wait dispatches each ready descriptor to its registered
// EventHandler itself; Demux, which the pool uses, returns one ready
// descriptor and its handler for the caller to run.
//
// The original reactor multiplexed with select()/fd_set, which caps the
// descriptor count and rescans every slot on every wait. epoll scales to
// however many sessions the server accepts and only returns what's ready,
// so it replaces select() here the way a Go server written today would.
package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// EventHandler reacts to one ready file descriptor. Implementations must
// not block for long: under Wait, the next wait does not start until
// every handler of the batch has returned. Under Demux, the pool runs the
// handler after it has promoted a successor leader.
type EventHandler interface {
	HandleEvent(fd int) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(fd int) error

// HandleEvent calls f(fd).
func (f HandlerFunc) HandleEvent(fd int) error { return f(fd) }

// Reactor is an epoll instance plus the fd -> handler registry. A Reactor
// is shared by every ThreadContext in the Leader-Follower pool; only the
// current leader calls Demux.
type Reactor struct {
	epfd int

	mu       sync.RWMutex
	handlers map[int]EventHandler

	wakeR, wakeW int // self-pipe (eventfd) endpoints for Shutdown
}

// New creates an epoll instance and its self-pipe wake descriptor.
func New() (*Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("reactor: epoll_create1: %w", err)
	}

	efd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(epfd)

		return nil, fmt.Errorf("reactor: eventfd: %w", err)
	}

	r := &Reactor{
		epfd:     epfd,
		handlers: make(map[int]EventHandler),
		wakeR:    efd,
		wakeW:    efd,
	}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, efd, &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(efd)}); err != nil {
		unix.Close(epfd)
		unix.Close(efd)

		return nil, fmt.Errorf("reactor: register wake fd: %w", err)
	}

	return r, nil
}

// AddHandle registers fd for read-readiness with the given handler. Safe
// to call from any thread, not just the leader.
func (r *Reactor) AddHandle(fd int, h EventHandler) error {
	r.mu.Lock()
	r.handlers[fd] = h
	r.mu.Unlock()

	ev := &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		r.mu.Lock()
		delete(r.handlers, fd)
		r.mu.Unlock()

		return fmt.Errorf("reactor: add handle %d: %w", fd, err)
	}

	return nil
}

// RemoveHandle deregisters fd. Idempotent.
func (r *Reactor) RemoveHandle(fd int) {
	r.mu.Lock()
	delete(r.handlers, fd)
	r.mu.Unlock()

	_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Deactivate removes fd from the epoll interest set without discarding its
// handler, so a ready-but-not-yet-handled fd cannot be reported to a
// second Demux caller while the first is still acting on it. Reactivate
// restores it. deactivate(fd); reactivate(fd) is an identity operation.
func (r *Reactor) Deactivate(fd int) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Events: 0, Fd: int32(fd)}); err != nil {
		return fmt.Errorf("reactor: deactivate %d: %w", fd, err)
	}

	return nil
}

// Reactivate restores fd to the epoll interest set after Deactivate.
func (r *Reactor) Reactivate(fd int) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}); err != nil {
		return fmt.Errorf("reactor: reactivate %d: %w", fd, err)
	}

	return nil
}

// handlerFor looks up the handler for fd, if still registered.
func (r *Reactor) handlerFor(fd int) (EventHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[fd]

	return h, ok
}

// Wait blocks in EpollWait for up to one batch of ready descriptors and
// dispatches each to its handler in turn. It returns the number of
// descriptors handled, or (0, nil) if only the wake fd fired (meaning
// Shutdown was called and the caller should stop promoting new leaders).
// Only one goroutine may call Wait at a time — that invariant is the LF
// pool's leader-uniqueness guarantee, enforced by the pool, not here.
func (r *Reactor) Wait() (int, error) {
	var events [64]unix.EpollEvent
	n, err := unix.EpollWait(r.epfd, events[:], -1)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}

		return 0, fmt.Errorf("reactor: epoll_wait: %w", err)
	}

	handled := 0
	for i := 0; i < n; i++ {
		fd := int(events[i].Fd)
		if fd == r.wakeR {
			var buf [8]byte
			_, _ = unix.Read(r.wakeR, buf[:])

			continue
		}
		h, ok := r.handlerFor(fd)
		if !ok {
			continue
		}
		if err := h.HandleEvent(fd); err != nil {
			r.RemoveHandle(fd)
		}
		handled++
	}

	return handled, nil
}

// Demux blocks in EpollWait for exactly one ready descriptor and returns
// it without invoking its handler — the Leader-Follower pool calls this
// as the demultiplexing step, promotes a successor leader, and only then
// runs the handler itself, outside the leadership role. woke reports
// whether the wake (self-pipe) descriptor fired instead of a real
// handle, in which case fd/handler are zero/nil and the caller should
// stop seeking leadership.
//
// Before returning a real fd, Demux deactivates it (see Deactivate):
// EPOLLIN is level-triggered, so without this a fd that's still ready
// (not yet read by its handler) would be handed to the very next
// Demux call too, dispatching the same connection to two workers at
// once. The caller must Reactivate(fd) once its handler has run.
func (r *Reactor) Demux() (fd int, h EventHandler, woke bool, err error) {
	var events [1]unix.EpollEvent
	for {
		n, werr := unix.EpollWait(r.epfd, events[:], -1)
		if werr != nil {
			if werr == unix.EINTR {
				continue
			}

			return 0, nil, false, fmt.Errorf("reactor: epoll_wait: %w", werr)
		}
		if n == 0 {
			continue
		}
		fd = int(events[0].Fd)
		if fd == r.wakeR {
			var buf [8]byte
			_, _ = unix.Read(r.wakeR, buf[:])

			return 0, nil, true, nil
		}
		handler, ok := r.handlerFor(fd)
		if !ok {
			continue
		}
		if derr := r.Deactivate(fd); derr != nil {
			// fd was concurrently removed/closed; not a real readiness
			// event for a live handler, so keep demuxing.
			continue
		}

		return fd, handler, false, nil
	}
}

// Wake unblocks a thread currently parked in Wait or Demux by writing to
// the self-pipe, without requiring that thread to hold reactor leadership.
// Used by Shutdown to release whichever thread is leader.
func (r *Reactor) Wake() error {
	var buf [8]byte
	buf[0] = 1
	_, err := unix.Write(r.wakeW, buf[:])

	return err
}

// Close releases the epoll instance and the self-pipe.
func (r *Reactor) Close() error {
	_ = unix.Close(r.wakeW)

	return unix.Close(r.epfd)
}
