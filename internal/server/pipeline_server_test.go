package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/pipeline"
)

func TestPipelineServer_EndToEnd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	p := pipeline.New(graphstate.New())
	defer p.Close()
	srv := NewPipelineServer(ln, p, nil, nil)
	go srv.Serve()
	defer srv.Close()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(conn)

	send := func(line string) string {
		_, err := conn.Write([]byte(line + "\n"))
		require.NoError(t, err)
		reply, err := reader.ReadString('\n')
		require.NoError(t, err)

		return reply
	}

	_, err = conn.Write([]byte("newgraph 4 5\n"))
	require.NoError(t, err)
	for _, l := range []string{"1 2 1", "2 3 2", "1 3 4", "3 4 3", "2 4 5"} {
		_, err = conn.Write([]byte(l + "\n"))
		require.NoError(t, err)
	}
	reply, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, reply, "5 edges")

	reply = send("kruskal")
	require.Contains(t, reply, "Total weight of the MST is: 6")

	reply = send("mstweight")
	require.Contains(t, reply, "6")

	reply = send("exit")
	require.Contains(t, reply, "Goodbye")
}
