// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdline splits a flat argument list into the three command
// specifications of a fan-out run. The literal token ":" separates the
// head command from the two leg commands. Only the first two
// delimiters are significant; further tokens belong to the third
// command verbatim.
package cmdline

import (
	"errors"
	"fmt"
	"slices"
)

// Delimiter is the literal standalone token separating command segments.
const Delimiter = ":"

var (
	// ErrNoCommands is returned when the argument list is empty.
	ErrNoCommands = errors.New("no commands given")
	// ErrOneCommand is returned when no delimiter token is present.
	ErrOneCommand = errors.New("bad command syntax - only one command found")
	// ErrTwoCommands is returned when only one delimiter token is present.
	ErrTwoCommands = errors.New("bad command syntax - only two commands found")
	// ErrEmptySegment is returned when a command segment contains no arguments.
	ErrEmptySegment = errors.New("bad command syntax - empty command segment")
)

// CommandSpec is an immutable description of one external command.
type CommandSpec struct {
	Path string   // The command to run (name resolved via PATH, or a full path).
	Args []string // Arguments to the command, do not include the executable name itself.
}

// Argv returns the full argument vector, executable name first.
func (c CommandSpec) Argv() []string {
	return slices.Concat([]string{c.Path}, c.Args)
}

// Specs holds the three commands of a run, named by pipeline role.
type Specs struct {
	Head CommandSpec // produces the byte stream
	LegA CommandSpec // first consumer
	LegB CommandSpec // second consumer
}

// Parse splits args on the first two Delimiter tokens and builds the
// three CommandSpecs. It fails with a descriptive error naming the
// missing or empty segment; no segment may be empty.
func Parse(args []string) (Specs, error) {
	if len(args) == 0 {
		return Specs{}, ErrNoCommands
	}

	first := slices.Index(args, Delimiter)
	if first < 0 {
		return Specs{}, ErrOneCommand
	}

	rest := args[first+1:]

	second := slices.Index(rest, Delimiter)
	if second < 0 {
		return Specs{}, ErrTwoCommands
	}

	segments := [][]string{
		args[:first],
		rest[:second],
		rest[second+1:],
	}

	names := []string{"first", "second", "third"}

	specs := make([]CommandSpec, 0, len(segments))

	for i, seg := range segments {
		if len(seg) == 0 {
			return Specs{}, fmt.Errorf("%w: %s command is missing", ErrEmptySegment, names[i])
		}

		specs = append(specs, CommandSpec{
			Path: seg[0],
			Args: slices.Clone(seg[1:]),
		})
	}

	return Specs{
		Head: specs[0],
		LegA: specs[1],
		LegB: specs[2],
	}, nil
}
