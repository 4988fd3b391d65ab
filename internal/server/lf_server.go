package server

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/lfpool"
	"github.com/katalvlaran/mstgraphd/internal/reactor"
)

// LFServer is the Leader-Follower concurrency core's front-end: the
// listening socket and every accepted connection are registered as
// reactor fds, so a pool thread only ever does work in response to
// actual readiness, and the pool's leader/follower handoff — not a
// goroutine per connection — is what bounds concurrent I/O.
type LFServer struct {
	ln      *net.TCPListener
	lnFd    int
	reactor *reactor.Reactor
	pool    *lfpool.Pool
	state   *graphstate.State
	log     *slog.Logger
	metrics Metrics

	mu       sync.Mutex
	sessions map[int]sessionEntry
}

type sessionEntry struct {
	conn    net.Conn
	session *Session
}

// NewLFServer wraps an already-open IPv4 listener, builds its own
// reactor, and sizes the Leader-Follower pool to poolSize threads.
func NewLFServer(ln net.Listener, state *graphstate.State, poolSize int, log *slog.Logger, metrics Metrics) (*LFServer, error) {
	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("server: LFServer requires a *net.TCPListener, got %T", ln)
	}
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	lnFd, err := rawFd(tcpLn)
	if err != nil {
		return nil, fmt.Errorf("server: listener fd: %w", err)
	}

	r, err := reactor.New()
	if err != nil {
		return nil, fmt.Errorf("server: reactor: %w", err)
	}

	s := &LFServer{
		ln:       tcpLn,
		lnFd:     lnFd,
		reactor:  r,
		state:    state,
		log:      log,
		metrics:  metrics,
		sessions: make(map[int]sessionEntry),
	}
	s.pool = lfpool.New(r, poolSize, log)

	if err := r.AddHandle(lnFd, reactor.HandlerFunc(s.handleAccept)); err != nil {
		r.Close()

		return nil, fmt.Errorf("server: register listener fd: %w", err)
	}

	return s, nil
}

// Start launches the Leader-Follower pool; it begins servicing the
// listener and any connections registered afterward.
func (s *LFServer) Start() { s.pool.Start() }

// handleAccept is the listener fd's EventHandler: it accepts exactly one
// pending connection (the listener stays level-triggered, so a second
// pending connection re-fires the event) and registers it with the
// reactor.
func (s *LFServer) handleAccept(fd int) error {
	conn, err := s.ln.Accept()
	if err != nil {
		if isClosedErr(err) {
			return nil
		}
		s.log.Error("lf server: accept failed", "error", err)

		return nil
	}

	connFd, err := rawFd(conn.(*net.TCPConn))
	if err != nil {
		s.log.Error("lf server: connection fd", "error", err)
		conn.Close()

		return nil
	}

	session := NewSession(conn, s.state, s.log)
	s.mu.Lock()
	s.sessions[connFd] = sessionEntry{conn: conn, session: session}
	s.mu.Unlock()

	if err := s.reactor.AddHandle(connFd, reactor.HandlerFunc(s.handleReadable(connFd))); err != nil {
		s.log.Error("lf server: register connection fd", "error", err)
		s.closeSession(connFd)

		return nil
	}

	s.metrics.ClientConnected()

	return nil
}

// handleReadable returns the EventHandler for one connection's fd,
// closing over its identity so a single dispatcher can serve every
// connection without a type per fd.
func (s *LFServer) handleReadable(fd int) func(int) error {
	return func(int) error {
		s.mu.Lock()
		entry, ok := s.sessions[fd]
		s.mu.Unlock()
		if !ok {
			return nil
		}

		if err := entry.session.HandleReadable(fd); err != nil {
			s.closeSession(fd)

			return err
		}

		return nil
	}
}

func (s *LFServer) closeSession(fd int) {
	s.mu.Lock()
	entry, ok := s.sessions[fd]
	delete(s.sessions, fd)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.reactor.RemoveHandle(fd)
	entry.conn.Close()
	unix.Close(fd)
	s.metrics.ClientDisconnected()
}

// ClientCount reports the number of currently registered sessions.
func (s *LFServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Close is Shutdown under the name shutdown.Closer expects.
func (s *LFServer) Close() error { return s.Shutdown() }

// Shutdown cancels the pool, closes every open session, and releases the
// reactor and listener.
func (s *LFServer) Shutdown() error {
	if err := s.pool.Shutdown(); err != nil {
		return err
	}

	s.mu.Lock()
	for fd, entry := range s.sessions {
		entry.conn.Close()
		unix.Close(fd)
		delete(s.sessions, fd)
	}
	s.mu.Unlock()

	s.reactor.RemoveHandle(s.lnFd)
	unix.Close(s.lnFd)

	if err := s.reactor.Close(); err != nil {
		return err
	}

	return s.ln.Close()
}
