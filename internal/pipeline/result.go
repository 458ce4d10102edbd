// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"log/slog"
	"slices"
)

// Result represents the reaped outcome of one pipeline child. Child
// output is never captured here: the whole point of the pipeline is
// that bytes flow between the children, and the legs own their own
// stdout.
type Result struct {
	Label    string // Pipeline role of the child.
	ExitCode int    // Exit code of the child.
	Error    error  // Error, if any. Never set for an ordinary non-zero exit.
}

// LogValue implements slog.LogValuer for structured result logging.
func (r *Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("label", r.Label),
		slog.Int("exitCode", r.ExitCode),
	}

	if r.Error != nil {
		attrs = append(attrs, slog.String("error", r.Error.Error()))
	}

	return slog.GroupValue(attrs...)
}

// Results is a slice of Result pointers, one per reaped child.
type Results []*Result

// HasError reports whether any child failed to spawn, exited non-zero
// or could not be reaped. The orchestrator's own exit status does not
// depend on this; it exists so callers can observe the gap explicitly.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Error != nil || v.ExitCode != 0 {
			return true
		}
	}

	return false
}

// Get returns the result with the given label, or nil.
func (r Results) Get(label string) *Result {
	for v := range slices.Values(r) {
		if v.Label == label {
			return v
		}
	}

	return nil
}
