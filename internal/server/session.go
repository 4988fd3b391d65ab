package server

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/katalvlaran/mstgraphd/internal/protocol"
)

// Handler is whatever a command line ultimately gets dispatched to:
// either a pipeline.Pipeline (each call hops onto its stage's
// ActiveObject and blocks for the Completion) or a graphstate.State
// called directly from the LF reactor thread. Both already expose this
// exact method set.
type Handler interface {
	NewGraph(n int, edges []protocol.Command) (string, error)
	AddEdge(u, v int, w int64) (string, error)
	RemoveEdge(u, v int) (string, error)
	Prim() (string, error)
	Kruskal() (string, error)
	Weight() (string, error)
	ShortestPath(u, v int, hasEndpoints bool) (string, error)
	LongestPath() (string, error)
	AverageDistance() (string, error)
}

// Session is one client's protocol state machine: which command, if
// any, is still waiting on its Newgraph edge-definition lines, plus
// enough buffering to parse commands that arrive split across several
// reads. A Session is single-owner — the Pipeline core owns one per
// connection goroutine, the LF core owns one per registered fd and only
// ever touches it from within a HandleEvent callback.
type Session struct {
	conn    net.Conn
	handler Handler
	log     *slog.Logger

	buf bytes.Buffer

	awaitingEdges int
	edgesWanted   int
	edgesSeen     []protocol.Command
	pendingN      int
}

// NewSession wraps conn for dispatch to handler.
func NewSession(conn net.Conn, handler Handler, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}

	return &Session{conn: conn, handler: handler, log: log}
}

// ServeBlocking runs the session to completion on the calling goroutine,
// used by the Pipeline core's one-goroutine-per-connection front-end. It
// returns nil on a clean Exit or peer close, and a non-nil error only
// for unexpected I/O failures.
func (s *Session) ServeBlocking() error {
	defer s.conn.Close()
	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		reply, closeNow := s.handleLine(scanner.Text())
		if reply != "" {
			if err := s.writeLine(reply); err != nil {
				return err
			}
		}
		if closeNow {
			return nil
		}
	}

	return scanner.Err()
}

// HandleReadable is the LF core's EventHandler callback: it performs one
// non-blocking-safe read of whatever is currently available, extracts
// every complete line it can, and processes each in turn. It returns
// io.EOF when the peer closed the connection (recv==0 in the source),
// signalling the caller to deregister and close; any other non-nil error
// is the recv<0 case and gets the same treatment.
func (s *Session) HandleReadable(fd int) error {
	var chunk [4096]byte
	n, err := s.conn.Read(chunk[:])
	if n > 0 {
		s.buf.Write(chunk[:n])
	}
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}

		return fmt.Errorf("server: recv on fd %d: %w", fd, err)
	}
	if n == 0 {
		return io.EOF
	}

	for {
		line, ok := s.nextLine()
		if !ok {
			break
		}
		reply, closeNow := s.handleLine(line)
		if reply != "" {
			if werr := s.writeLine(reply); werr != nil {
				return werr
			}
		}
		if closeNow {
			return io.EOF
		}
	}

	return nil
}

// nextLine extracts one newline-terminated line from buf, if a full one
// is present.
func (s *Session) nextLine() (string, bool) {
	data := s.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return "", false
	}
	line := string(bytes.TrimRight(data[:idx], "\r"))
	s.buf.Next(idx + 1)

	return line, true
}

// handleLine dispatches one line according to whatever the session is
// currently expecting: either the next Newgraph edge-definition row, or
// a fresh command.
func (s *Session) handleLine(line string) (reply string, closeNow bool) {
	if s.awaitingEdges > 0 {
		u, v, w, err := protocol.EdgeLine(line)
		if err == nil {
			s.edgesSeen = append(s.edgesSeen, protocol.Command{U: u, V: v, Weight: w})
		}
		s.awaitingEdges--
		if s.awaitingEdges == 0 {
			reply, err := s.handler.NewGraph(s.pendingN, s.edgesSeen)
			s.edgesSeen = nil

			return s.finish(reply, err)
		}

		return "", false
	}

	cmd, err := protocol.Parse(line)
	if err != nil {
		return protocol.InvalidCommand(line), false
	}

	switch cmd.Kind {
	case protocol.KindNewGraph:
		s.pendingN = cmd.N
		s.awaitingEdges = cmd.M
		s.edgesSeen = make([]protocol.Command, 0, cmd.M)
		if cmd.M == 0 {
			reply, err := s.handler.NewGraph(cmd.N, nil)

			return s.finish(reply, err)
		}

		return "", false

	case protocol.KindAddEdge:
		return s.finish(s.handler.AddEdge(cmd.U, cmd.V, cmd.Weight))

	case protocol.KindRemoveEdge:
		return s.finish(s.handler.RemoveEdge(cmd.U, cmd.V))

	case protocol.KindPrim:
		return s.finish(s.handler.Prim())

	case protocol.KindKruskal:
		return s.finish(s.handler.Kruskal())

	case protocol.KindMSTWeight:
		return s.finish(s.handler.Weight())

	case protocol.KindShortestPath:
		return s.finish(s.handler.ShortestPath(cmd.U, cmd.V, cmd.HasEndpoints))

	case protocol.KindLongestPath:
		return s.finish(s.handler.LongestPath())

	case protocol.KindAverageDistance:
		return s.finish(s.handler.AverageDistance())

	case protocol.KindExit:
		return protocol.Goodbye, true

	default:
		return protocol.InvalidCommand(line), false
	}
}

// finish turns a Handler result into a wire reply, mapping the handler's
// sentinel preconditions onto their fixed reply strings.
func (s *Session) finish(reply string, err error) (string, bool) {
	if err != nil {
		return preconditionReply(err), false
	}

	return reply, false
}

func (s *Session) writeLine(reply string) error {
	_, err := fmt.Fprintf(s.conn, "%s\n", reply)

	return err
}
