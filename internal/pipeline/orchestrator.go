// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/dpipe/internal/cmdline"
	"github.com/matt-FFFFFF/dpipe/internal/ctxlog"
)

// ErrRelayUnavailable is returned when the running executable cannot
// be resolved for the relay re-exec.
var ErrRelayUnavailable = errors.New("could not resolve executable for relay stage")

// State identifies the orchestrator's progress through a run. Each
// transition is unconditional given its predecessor succeeded.
type State int

// Orchestrator states, in run order.
const (
	StateInit State = iota
	StatePipesCreated
	StateHeadSpawned
	StateDistributorSpawned
	StateLegsSpawned
	StateCleanedUp
	StateAllReaped
)

// String implements fmt.Stringer for State.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StatePipesCreated:
		return "PipesCreated"
	case StateHeadSpawned:
		return "HeadSpawned"
	case StateDistributorSpawned:
		return "DistributorSpawned"
	case StateLegsSpawned:
		return "LegsSpawned"
	case StateCleanedUp:
		return "CleanedUp"
	case StateAllReaped:
		return "AllReaped"
	default:
		return "Unknown"
	}
}

// Labels identifying each child's pipeline role in results and logs.
const (
	LabelHead  = "head"
	LabelRelay = "relay"
	LabelLegA  = "leg A"
	LabelLegB  = "leg B"
)

// RelayCommand builds the command used to start the relay child. The
// default re-execs the running binary with the hidden relay
// subcommand; it is a package-level seam so tests can point it at a
// helper process.
var RelayCommand = func() (cmdline.CommandSpec, error) {
	exe, err := os.Executable()
	if err != nil {
		return cmdline.CommandSpec{}, errors.Join(ErrRelayUnavailable, err)
	}

	return cmdline.CommandSpec{Path: exe, Args: []string{"relay"}}, nil
}

// Orchestrator coordinates one fan-out run: it creates the pipe set,
// spawns the head, relay and leg children with their exact descriptor
// tables, closes its own endpoint copies, and reaps all four children
// unconditionally.
//
// There is no cancellation or timeout: a head that never closes its
// output holds the run open forever, by design. The context carries
// the logger only.
type Orchestrator struct {
	specs cmdline.Specs
	state State
}

// New creates an Orchestrator for the given three commands.
func New(specs cmdline.Specs) *Orchestrator {
	return &Orchestrator{specs: specs}
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the pipeline to completion. The returned error is
// non-nil only for failures of the run itself (pipe allocation, spawn
// machinery); individual children failing to spawn or exiting non-zero
// are reported through Results and never affect the error. Run returns
// after exactly four reaps, one per child.
func (o *Orchestrator) Run(ctx context.Context) (Results, error) {
	logger := ctxlog.Logger(ctx)

	pipes, err := NewPipeSet()
	if err != nil {
		return nil, err
	}

	o.state = StatePipesCreated
	logger.Debug("state transition", "state", o.state.String())

	// The head writes the pipe; its stdin and stderr pass through.
	head, err := o.spawn(ctx, pipes, LabelHead, o.specs.Head,
		[]*os.File{os.Stdin, pipes.Head.W.File(), os.Stderr})
	if err != nil {
		return nil, err
	}

	o.state = StateHeadSpawned
	logger.Debug("state transition", "state", o.state.String())

	relaySpec, err := RelayCommand()
	if err != nil {
		return nil, errors.Join(err, pipes.CloseAll())
	}

	// The relay reads the head pipe on stdin and writes the legs via
	// descriptors 3 and 4. It gets no other pipe endpoints, so the
	// EOF chain cannot be held open by a stray copy.
	relay, err := o.spawn(ctx, pipes, LabelRelay, relaySpec,
		[]*os.File{pipes.Head.R.File(), os.Stdout, os.Stderr, pipes.LegA.W.File(), pipes.LegB.W.File()})
	if err != nil {
		return nil, err
	}

	o.state = StateDistributorSpawned
	logger.Debug("state transition", "state", o.state.String())

	legA, err := o.spawn(ctx, pipes, LabelLegA, o.specs.LegA,
		[]*os.File{pipes.LegA.R.File(), os.Stdout, os.Stderr})
	if err != nil {
		return nil, err
	}

	legB, err := o.spawn(ctx, pipes, LabelLegB, o.specs.LegB,
		[]*os.File{pipes.LegB.R.File(), os.Stdout, os.Stderr})
	if err != nil {
		return nil, err
	}

	o.state = StateLegsSpawned
	logger.Debug("state transition", "state", o.state.String())

	// Spawning copied every needed endpoint into the children; the
	// orchestrator's own copies must all go or no reader ever sees EOF.
	if err := pipes.CloseAll(); err != nil {
		logger.Warn("failed to close pipe endpoints", "error", err)
	}

	o.state = StateCleanedUp
	logger.Debug("state transition", "state", o.state.String())

	results := make(Results, 0, 4)
	for _, c := range []*Child{head, relay, legA, legB} {
		results = append(results, c.Wait(ctx))
	}

	o.state = StateAllReaped

	for _, res := range results {
		logger.Info("child finished", "result", res)
	}

	return results, nil
}

// spawn wraps Spawn with the fatal-path bookkeeping: a spawn-machinery
// failure aborts the run, and the orchestrator sheds its endpoint
// copies before propagating so the error path cannot leak descriptors.
func (o *Orchestrator) spawn(ctx context.Context, pipes *PipeSet, label string, spec cmdline.CommandSpec, files []*os.File) (*Child, error) {
	child, err := Spawn(ctx, label, spec, files)
	if err != nil {
		return nil, errors.Join(err, pipes.CloseAll())
	}

	return child, nil
}
