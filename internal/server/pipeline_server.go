package server

import (
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mstgraphd/internal/pipeline"
)

// Metrics receives connection lifecycle notifications. *telemetry.Metrics
// implements this; tests and callers that don't care about metrics can
// pass nil (noopMetrics is used internally in that case).
type Metrics interface {
	ClientConnected()
	ClientDisconnected()
}

type noopMetrics struct{}

func (noopMetrics) ClientConnected()    {}
func (noopMetrics) ClientDisconnected() {}

// PipelineServer is the Active-Object concurrency core's front-end: one
// goroutine per accepted connection, each blocking on its own recv loop
// and forwarding parsed commands onto the shared Pipeline's stages.
type PipelineServer struct {
	ln       net.Listener
	pipeline *pipeline.Pipeline
	log      *slog.Logger
	metrics  Metrics

	clientCount int64
	sessions    errgroup.Group

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewPipelineServer wraps an already-open listener and the shared
// pipeline every session dispatches into.
func NewPipelineServer(ln net.Listener, p *pipeline.Pipeline, log *slog.Logger, metrics Metrics) *PipelineServer {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &PipelineServer{ln: ln, pipeline: p, log: log, metrics: metrics, conns: make(map[net.Conn]struct{})}
}

// Serve accepts connections until the listener is closed (typically by
// Close). Accept errors after a close are treated as the normal
// shutdown path and Serve returns nil.
func (s *PipelineServer) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if isClosedErr(err) {
				return nil
			}

			return err
		}
		s.sessions.Go(func() error {
			s.handleConn(conn)

			return nil
		})
	}
}

func (s *PipelineServer) handleConn(conn net.Conn) {
	atomic.AddInt64(&s.clientCount, 1)
	s.metrics.ClientConnected()
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		atomic.AddInt64(&s.clientCount, -1)
		s.metrics.ClientDisconnected()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	session := NewSession(conn, s.pipeline, s.log)
	if err := session.ServeBlocking(); err != nil {
		s.log.Warn("pipeline server: session ended with error", "remote", conn.RemoteAddr(), "error", err)
	}
}

// ClientCount reports the number of currently connected sessions.
func (s *PipelineServer) ClientCount() int64 { return atomic.LoadInt64(&s.clientCount) }

// Close stops accepting new connections, force-closes every open
// session (matching the source's "cancels and joins all workers" on
// SIGINT rather than waiting for clients to disconnect on their own),
// and blocks until every session goroutine has returned.
func (s *PipelineServer) Close() error {
	err := s.ln.Close()

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.sessions.Wait()

	return err
}
