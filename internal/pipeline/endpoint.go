// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"os"
)

// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
var ErrFailedToCreatePipe = errors.New("failed to create pipe")

// Endpoint is one end of a pipe, an owned readable-or-writable handle.
// Close is idempotent per handle: a second call is a no-op and can
// never touch an unrelated descriptor, even if the operating system
// has reused the underlying number.
type Endpoint struct {
	file   *os.File
	name   string
	closed bool
}

// Name identifies the endpoint's pipeline role in diagnostics.
func (e *Endpoint) Name() string {
	return e.name
}

// File returns the underlying file for handing to a child's descriptor
// table, or nil once the endpoint is closed.
func (e *Endpoint) File() *os.File {
	if e == nil || e.closed {
		return nil
	}

	return e.file
}

// Close closes the endpoint. Calling Close on an already-closed
// endpoint returns nil.
func (e *Endpoint) Close() error {
	if e == nil || e.closed {
		return nil
	}

	e.closed = true

	if err := e.file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", e.name, err)
	}

	return nil
}

// Pipe is a unidirectional byte channel: bytes written to W become
// readable from R, and closing every copy of W makes R observe EOF.
type Pipe struct {
	R *Endpoint
	W *Endpoint
}

// newPipe allocates a pipe and wraps both ends in owned endpoints
// named after their pipeline role.
func newPipe(name string) (Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return Pipe{}, errors.Join(ErrFailedToCreatePipe, err)
	}

	return Pipe{
		R: &Endpoint{file: r, name: name + " read end"},
		W: &Endpoint{file: w, name: name + " write end"},
	}, nil
}

// close closes both ends. Both are attempted even if the first fails.
func (p Pipe) close() error {
	return errors.Join(p.R.Close(), p.W.Close())
}
