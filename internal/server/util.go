package server

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// syscallConn is satisfied by *net.TCPListener and *net.TCPConn.
type syscallConn interface {
	SyscallConn() (syscall.RawConn, error)
}

// rawFd extracts a duplicate of the underlying file descriptor from a
// TCP listener or connection, for registration with the reactor's epoll
// instance. The descriptor is duplicated rather than borrowed so that
// closing it through epoll's bookkeeping never races the net.Conn's own
// close of the original.
func rawFd(c syscallConn) (int, error) {
	raw, err := c.SyscallConn()
	if err != nil {
		return 0, fmt.Errorf("server: SyscallConn: %w", err)
	}

	var fd int
	var ctrlErr error
	if err := raw.Control(func(original uintptr) {
		dup, derr := unix.Dup(int(original))
		if derr != nil {
			ctrlErr = derr

			return
		}
		fd = dup
	}); err != nil {
		return 0, fmt.Errorf("server: Control: %w", err)
	}
	if ctrlErr != nil {
		return 0, fmt.Errorf("server: dup fd: %w", ctrlErr)
	}

	return fd, nil
}

// isClosedErr reports whether err is the error Accept/Read return after
// the listener or connection has been closed out from under them — the
// expected shape of a clean shutdown, not a failure worth logging.
func isClosedErr(err error) bool {
	var opErr *net.OpError

	return errors.As(err, &opErr) && errors.Is(opErr.Err, net.ErrClosed)
}
