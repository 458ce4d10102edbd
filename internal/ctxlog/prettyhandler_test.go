// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(
		&slog.HandlerOptions{Level: level},
		WithDestinationWriter(buf),
	)

	return slog.New(h), buf
}

func TestPrettyHandler_MessageAndAttrs(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.Info("something happened", "label", "head", "exitCode", 0)

	out := buf.String()
	assert.Contains(t, out, "something happened")
	assert.Contains(t, out, "label")
	assert.Contains(t, out, "head")
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.Info("bare message")

	out := buf.String()
	assert.Contains(t, out, "bare message")
	assert.NotContains(t, out, "{", "no attribute JSON for a bare record")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelWarn)

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.With("runnableType", "relay").WithGroup("pipes").Info("wired", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "wired")
	assert.Contains(t, out, "runnableType")
	assert.Contains(t, out, "pipes")
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := context.Background()
	require.False(t, h.Enabled(ctx, slog.LevelDebug))
	require.True(t, h.Enabled(ctx, slog.LevelError))
}
