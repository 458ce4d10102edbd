// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeSet(t *testing.T) {
	t.Parallel()

	pipes, err := NewPipeSet()
	require.NoError(t, err)

	for _, p := range []Pipe{pipes.Head, pipes.LegA, pipes.LegB} {
		assert.NotNil(t, p.R.File())
		assert.NotNil(t, p.W.File())
	}

	require.NoError(t, pipes.CloseAll())
}

func TestPipeSet_CloseAllIsIdempotent(t *testing.T) {
	t.Parallel()

	pipes, err := NewPipeSet()
	require.NoError(t, err)

	require.NoError(t, pipes.CloseAll())
	assert.NoError(t, pipes.CloseAll(), "second CloseAll must be a no-op")

	for _, p := range []Pipe{pipes.Head, pipes.LegA, pipes.LegB} {
		assert.Nil(t, p.R.File())
		assert.Nil(t, p.W.File())
	}
}

func TestPipeSet_EndpointNames(t *testing.T) {
	t.Parallel()

	pipes, err := NewPipeSet()
	require.NoError(t, err)

	defer pipes.CloseAll() //nolint:errcheck

	assert.Equal(t, "head read end", pipes.Head.R.Name())
	assert.Equal(t, "head write end", pipes.Head.W.Name())
	assert.Equal(t, "leg A write end", pipes.LegA.W.Name())
	assert.Equal(t, "leg B read end", pipes.LegB.R.Name())
}
