// Command mstgraphdctl is a line-oriented REPL client for mstgraphd: it
// forwards each line typed on stdin to the server and prints the reply,
// for manual poking and for scripting against the wire protocol.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var addr string

	root := &cobra.Command{
		Use:   "mstgraphdctl",
		Short: "Line-protocol REPL client for mstgraphd",
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(addr, os.Stdin, os.Stdout)
		},
	}
	root.Flags().StringVar(&addr, "addr", "127.0.0.1:4050", "mstgraphd address (host:port)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mstgraphdctl:", err)
		os.Exit(1)
	}
}

// repl dials addr, then copies lines from in to the connection and
// copies replies from the connection to out, until in is exhausted or
// the server closes the connection.
func repl(addr string, in io.Reader, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("mstgraphdctl: dial %s: %w", addr, err)
	}
	defer conn.Close()

	replies := make(chan string)
	go func() {
		defer close(replies)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			replies <- scanner.Text()
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			return fmt.Errorf("mstgraphdctl: write: %w", err)
		}
		reply, ok := <-replies
		if !ok {
			return nil
		}
		fmt.Fprintln(out, reply)
		if line == "Exit" || line == "exit" {
			return nil
		}
	}

	return scanner.Err()
}
