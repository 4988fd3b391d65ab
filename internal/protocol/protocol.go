// Package protocol implements the line-oriented command grammar served by
// both concurrency cores: tokenizing a command line into a typed Command,
// and formatting the fixed reply strings the wire grammar specifies.
//
// Parsing is intentionally thin glue over strings.Fields/strconv — the
// grammar itself is the contract, not the tokenizer.
package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed indicates a command whose tokens do not match any known
// grammar (wrong arity, non-integer argument, unknown verb).
var ErrMalformed = errors.New("protocol: malformed command")

// Kind identifies which command grammar a parsed line matched.
type Kind int

const (
	KindUnknown Kind = iota
	KindNewGraph
	KindAddEdge
	KindRemoveEdge
	KindPrim
	KindKruskal
	KindMSTWeight
	KindShortestPath
	KindLongestPath
	KindAverageDistance
	KindExit
)

// Command is a fully parsed client request. Weight/U/V are populated
// only for the grammars that use them; HasEndpoints distinguishes
// "Shortestpath" (pair query) from "Shortestpath u v" (point-to-point).
type Command struct {
	Kind         Kind
	Raw          string
	N, M         int
	U, V         int
	Weight       int64
	HasEndpoints bool
}

// Parse tokenizes a single command line per §6's grammar table.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	cmd := Command{Raw: line}
	if len(fields) == 0 {
		return cmd, ErrMalformed
	}

	switch strings.ToLower(fields[0]) {
	case "newgraph":
		if len(fields) != 3 {
			return cmd, ErrMalformed
		}
		n, err1 := strconv.Atoi(fields[1])
		m, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || n <= 0 || m < 0 {
			return cmd, ErrMalformed
		}
		cmd.Kind, cmd.N, cmd.M = KindNewGraph, n, m

		return cmd, nil

	case "addedge":
		if len(fields) != 4 {
			return cmd, ErrMalformed
		}
		u, err1 := strconv.Atoi(fields[1])
		v, err2 := strconv.Atoi(fields[2])
		w, err3 := strconv.ParseInt(fields[3], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return cmd, ErrMalformed
		}
		cmd.Kind, cmd.U, cmd.V, cmd.Weight = KindAddEdge, u, v, w

		return cmd, nil

	case "removeedge":
		if len(fields) != 3 {
			return cmd, ErrMalformed
		}
		u, err1 := strconv.Atoi(fields[1])
		v, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return cmd, ErrMalformed
		}
		cmd.Kind, cmd.U, cmd.V = KindRemoveEdge, u, v

		return cmd, nil

	case "prim":
		return requireArity(cmd, fields, 1, KindPrim)

	case "kruskal":
		return requireArity(cmd, fields, 1, KindKruskal)

	case "mstweight":
		return requireArity(cmd, fields, 1, KindMSTWeight)

	case "shortestpath":
		switch len(fields) {
		case 1:
			cmd.Kind = KindShortestPath

			return cmd, nil
		case 3:
			u, err1 := strconv.Atoi(fields[1])
			v, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return cmd, ErrMalformed
			}
			cmd.Kind, cmd.U, cmd.V, cmd.HasEndpoints = KindShortestPath, u, v, true

			return cmd, nil
		default:
			return cmd, ErrMalformed
		}

	case "longestpath":
		return requireArity(cmd, fields, 1, KindLongestPath)

	case "averdist":
		return requireArity(cmd, fields, 1, KindAverageDistance)

	case "exit":
		return requireArity(cmd, fields, 1, KindExit)

	default:
		return cmd, ErrMalformed
	}
}

func requireArity(cmd Command, fields []string, n int, kind Kind) (Command, error) {
	if len(fields) != n {
		return cmd, ErrMalformed
	}
	cmd.Kind = kind

	return cmd, nil
}

// EdgeLine parses one "u v w" edge-definition line consumed after
// Newgraph's header.
func EdgeLine(line string) (u, v int, w int64, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, ErrMalformed
	}
	u, err1 := strconv.Atoi(fields[0])
	v, err2 := strconv.Atoi(fields[1])
	w, err3 := strconv.ParseInt(fields[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, ErrMalformed
	}

	return u, v, w, nil
}
