// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/matt-FFFFFF/dpipe/internal/cmdline"
	"github.com/matt-FFFFFF/dpipe/internal/ctxlog"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrAlreadyReaped is returned when a child is waited on a second time.
	ErrAlreadyReaped = errors.New("child already reaped")
)

// exitCodeSpawnFailure is reported for a child whose executable could
// not be located or invoked, mirroring the shell convention for
// "command not found".
const exitCodeSpawnFailure = 127

// Child is an opaque handle to one spawned pipeline member. It is
// owned by the orchestrator and must be reaped exactly once via Wait.
//
// A Child may hold no operating system process at all: when the
// executable cannot be located or invoked the failure is fatal only to
// that one pipeline member, so Spawn returns a handle that reaps
// immediately with a non-zero exit code while the rest of the run
// proceeds. Downstream readers observe the failure as premature EOF,
// never as an error unwinding across process boundaries.
type Child struct {
	Label string

	proc     *os.Process
	spawnErr error
	reaped   bool
}

// Pid returns the operating system process id, or -1 if the child
// never reached a live process.
func (c *Child) Pid() int {
	if c.proc == nil {
		return -1
	}

	return c.proc.Pid
}

// Wait blocks until the child has exited and returns its result. The
// second and subsequent calls fail with ErrAlreadyReaped so that no
// process is ever reaped twice.
func (c *Child) Wait(ctx context.Context) *Result {
	if c.reaped {
		return &Result{
			Label:    c.Label,
			ExitCode: -1,
			Error:    ErrAlreadyReaped,
		}
	}

	c.reaped = true

	if c.proc == nil {
		return &Result{
			Label:    c.Label,
			ExitCode: exitCodeSpawnFailure,
			Error:    errors.Join(ErrCouldNotStartProcess, c.spawnErr),
		}
	}

	state, err := c.proc.Wait()
	if err != nil {
		return &Result{
			Label:    c.Label,
			ExitCode: -1,
			Error:    err,
		}
	}

	ctxlog.Debug(ctx, "child reaped", "label", c.Label, "pid", c.proc.Pid, "exitCode", state.ExitCode())

	return &Result{
		Label:    c.Label,
		ExitCode: state.ExitCode(),
	}
}

// Spawn starts spec as a child process whose descriptor table is
// exactly files: index 0 is the child's stdin, 1 its stdout, 2 its
// stderr, and any further entries appear as descriptors 3, 4 and so
// on. Endpoints the child must not hold are simply never passed, which
// makes descriptor inheritance a declared contract rather than a side
// effect of spawning.
//
// A lookup or invocation failure is fatal only to the returned child
// (see Child); the diagnostic goes to the error stream. A non-nil
// error is returned only for failures of the spawn machinery itself,
// which are fatal to the whole run.
func Spawn(ctx context.Context, label string, spec cmdline.CommandSpec, files []*os.File) (*Child, error) {
	logger := ctxlog.Logger(ctx).With("label", label)

	path, err := exec.LookPath(spec.Path)
	if err != nil {
		logger.Debug("executable lookup failed", "path", spec.Path, "error", err)
		fmt.Fprintf(os.Stderr, "dpipe: %s: %v\n", label, err)

		return &Child{Label: label, spawnErr: err}, nil
	}

	ps, err := os.StartProcess(path, spec.Argv(), &os.ProcAttr{
		Env:   os.Environ(),
		Files: files,
	})
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "path", path, "args", spec.Args, "pid", ps.Pid)

	return &Child{Label: label, proc: ps}, nil
}
