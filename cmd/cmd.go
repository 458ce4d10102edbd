// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/dpipe/cmd/relay"
	"github.com/matt-FFFFFF/dpipe/internal/cmdline"
	"github.com/matt-FFFFFF/dpipe/internal/pipeline"
	"github.com/urfave/cli/v3"
)

// UsageText is printed on standard output for malformed invocations.
const UsageText = "Usage: dpipe <cmd1 arg...> : <cmd2 arg...> : <cmd3 arg...>"

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		relay.RelayCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "dpipe",
	Description: `dpipe fans the standard output of one command into the standard
input of two other commands, replicating shell tee-to-dual-pipeline behaviour
without shell involvement. The three commands are separated by a literal ":"
token; cmd1's output is duplicated byte-for-byte, in order, to cmd2 and cmd3.`,
	Usage:     "dpipe cmd1 [args...] : cmd2 [args...] : cmd3 [args...]",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	// The three command segments are opaque argument vectors; tokens
	// like "-l" belong to the commands being run, not to dpipe.
	SkipFlagParsing: true,
	Action:          actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		fmt.Fprintln(cmd.Root().Writer, UsageText)

		return cli.Exit("", 1)
	}

	specs, err := cmdline.Parse(args)
	if err != nil {
		// Usage diagnostics go to standard output; no pipeline has
		// started, so stdout is still ours.
		fmt.Fprintln(cmd.Root().Writer, err.Error())

		return cli.Exit("", 1)
	}

	orc := pipeline.New(specs)

	// The run's own exit status reflects only reaching the terminal
	// state: individual child statuses are logged, not propagated.
	_, err = orc.Run(ctx)

	return err
}
