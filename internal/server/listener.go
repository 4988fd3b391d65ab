// Package server hosts the two TCP front-ends (Pipeline and
// Leader-Follower) that both speak the same line protocol over the same
// socket options, differing only in how a ready connection gets
// dispatched to the shared graphstate.
package server

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// Backlog is the fixed listen backlog both cores bind with.
const Backlog = 10

// Listen opens an IPv4 TCP listener on addr ("host:port") with
// SO_REUSEADDR and SO_REUSEPORT set and Backlog as the listen queue
// depth. net.Listen's own backlog is whatever the OS default happens to
// be and isn't caller-settable, so this builds the socket by hand the
// way the source's socket/setsockopt/bind/listen sequence does, then
// hands the resulting fd to net.FileListener for normal net.Conn
// ergonomics afterward.
func Listen(addr string) (net.Listener, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("server: parse address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("server: parse port %q: %w", portStr, err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("server: socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("server: setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("server: setsockopt SO_REUSEPORT: %w", err)
	}

	sa := &unix.SockaddrInet4{Port: port}
	if host != "" && host != "0.0.0.0" {
		ip := net.ParseIP(host).To4()
		if ip == nil {
			unix.Close(fd)

			return nil, fmt.Errorf("server: %q is not an IPv4 address", host)
		}
		copy(sa.Addr[:], ip)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("server: bind: %w", err)
	}
	if err := unix.Listen(fd, Backlog); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("server: listen: %w", err)
	}

	f := os.NewFile(uintptr(fd), "mstgraphd-listener")
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("server: FileListener: %w", err)
	}

	return ln, nil
}
