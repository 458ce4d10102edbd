// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package relay contains the hidden CLI command that runs the
// distributor stage. The orchestrator re-execs the dpipe binary with
// this command so the relay loop gets a real child process of its own.
package relay

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/dpipe/internal/relay"
	"github.com/urfave/cli/v3"
)

// Descriptor slots the orchestrator populates in the relay child:
// stdin carries the head pipe read end, 3 and 4 the leg write ends.
const (
	legAFd = 3
	legBFd = 4
)

// ErrMissingLegDescriptor is returned when the relay is started
// without its leg pipe descriptors, i.e. not by the orchestrator.
var ErrMissingLegDescriptor = errors.New("relay: leg pipe descriptors 3 and 4 not present")

// RelayCmd is the hidden command implementing the distributor stage.
var RelayCmd = &cli.Command{
	Name:            "relay",
	Hidden:          true,
	Description:     "Internal distributor stage: copies stdin to file descriptors 3 and 4.",
	SkipFlagParsing: true,
	Action:          actionFunc,
}

func actionFunc(_ context.Context, _ *cli.Command) error {
	legA := os.NewFile(legAFd, "leg A write end")
	legB := os.NewFile(legBFd, "leg B write end")

	// os.NewFile does not validate the descriptor number, so probe
	// each leg up front: a relay started without its pipes fails here
	// with a usable diagnostic instead of an EBADF mid-stream.
	for _, leg := range []*os.File{legA, legB} {
		if _, err := leg.Stat(); err != nil {
			return cli.Exit(errors.Join(ErrMissingLegDescriptor, err).Error(), 1)
		}
	}

	if err := relay.Run(os.Stdin, legA, legB); err != nil {
		return cli.Exit("relay: "+err.Error(), 1)
	}

	// Closing the leg write ends is what turns head EOF into leg EOF;
	// exiting would do it too, but make the handoff explicit.
	if err := errors.Join(legA.Close(), legB.Close()); err != nil {
		return cli.Exit("relay: "+err.Error(), 1)
	}

	return nil
}
