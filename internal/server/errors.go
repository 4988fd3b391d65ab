package server

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/mst"
	"github.com/katalvlaran/mstgraphd/internal/protocol"
)

// preconditionReply maps a Handler error onto the fixed one-line reply
// §7's PreconditionUnmet taxonomy specifies. Anything unrecognized still
// gets a reply rather than propagating past the session boundary, per
// "errors never propagate across session boundaries."
func preconditionReply(err error) string {
	switch {
	case errors.Is(err, graphstate.ErrGraphNotInitialized):
		return protocol.GraphNotInitialized
	case errors.Is(err, graphstate.ErrMSTNotCreated):
		return protocol.MSTNotCreated
	case errors.Is(err, mst.ErrDisconnected):
		return fmt.Sprintf("Invalid command: %v.", err)
	default:
		return fmt.Sprintf("Invalid command: %v.", err)
	}
}
