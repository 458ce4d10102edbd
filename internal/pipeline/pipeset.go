// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/hashicorp/go-multierror"
)

// PipeSet owns the three pipes of a run: head command to relay, and
// relay to each leg command. After the spawn phase the orchestrator
// holds the only remaining copies of all six endpoints and sheds them
// with a single CloseAll call.
type PipeSet struct {
	Head Pipe // head stdout -> relay stdin
	LegA Pipe // relay -> leg A stdin
	LegB Pipe // relay -> leg B stdin
}

// NewPipeSet allocates the three pipes atomically: if any allocation
// fails, every already-created endpoint is closed before the error is
// returned.
func NewPipeSet() (*PipeSet, error) {
	head, err := newPipe("head")
	if err != nil {
		return nil, err
	}

	legA, err := newPipe("leg A")
	if err != nil {
		return nil, multierror.Append(err, head.close()).ErrorOrNil()
	}

	legB, err := newPipe("leg B")
	if err != nil {
		return nil, multierror.Append(err, head.close(), legA.close()).ErrorOrNil()
	}

	return &PipeSet{
		Head: head,
		LegA: legA,
		LegB: legB,
	}, nil
}

// CloseAll closes every endpoint in the set. It is idempotent: already
// closed endpoints are skipped. Close failures are aggregated so that
// one bad endpoint does not leave the rest open.
func (s *PipeSet) CloseAll() error {
	var errs *multierror.Error

	for _, p := range []Pipe{s.Head, s.LegA, s.LegB} {
		errs = multierror.Append(errs, p.R.Close(), p.W.Close())
	}

	return errs.ErrorOrNil()
}
