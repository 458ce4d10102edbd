// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package relay

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CopiesToBothLegs(t *testing.T) {
	t.Parallel()

	src := strings.NewReader("hello\n")
	legA := &bytes.Buffer{}
	legB := &bytes.Buffer{}

	require.NoError(t, Run(src, legA, legB))
	assert.Equal(t, "hello\n", legA.String())
	assert.Equal(t, "hello\n", legB.String())
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	legA := &bytes.Buffer{}
	legB := &bytes.Buffer{}

	require.NoError(t, Run(strings.NewReader(""), legA, legB))
	assert.Zero(t, legA.Len())
	assert.Zero(t, legB.Len())
}

func TestRun_LargeStreamIdenticalAndOrdered(t *testing.T) {
	t.Parallel()

	// Several chunks worth of random bytes.
	data := make([]byte, chunkSize*3+1234)
	_, err := rand.Read(data)
	require.NoError(t, err)

	legA := &bytes.Buffer{}
	legB := &bytes.Buffer{}

	require.NoError(t, Run(bytes.NewReader(data), legA, legB))
	assert.Equal(t, data, legA.Bytes())
	assert.Equal(t, data, legB.Bytes())
}

// chunkRecorder captures the write sequence so cross-leg ordering per
// chunk can be asserted.
type chunkRecorder struct {
	name string
	log  *[]string
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	*c.log = append(*c.log, c.name)

	return len(p), nil
}

func TestRun_LegAWrittenBeforeLegB(t *testing.T) {
	t.Parallel()

	var log []string

	legA := &chunkRecorder{name: "A", log: &log}
	legB := &chunkRecorder{name: "B", log: &log}

	data := make([]byte, chunkSize*2)
	require.NoError(t, Run(bytes.NewReader(data), legA, legB))

	require.GreaterOrEqual(t, len(log), 4)
	for i := 0; i+1 < len(log); i += 2 {
		assert.Equal(t, "A", log[i], "each chunk goes to leg A first")
		assert.Equal(t, "B", log[i+1])
	}
}

type failingWriter struct {
	err error
}

func (f *failingWriter) Write(p []byte) (int, error) {
	return 0, f.err
}

type shortWriter struct{}

func (s *shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

type failingReader struct {
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	return 0, f.err
}

func TestRun_WriteErrorIsFatal(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("broken pipe")

	err := Run(strings.NewReader("data"), &failingWriter{err: sentinel}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, sentinel)
}

func TestRun_SecondLegWriteErrorIsFatal(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("broken pipe")
	legA := &bytes.Buffer{}

	err := Run(strings.NewReader("data"), legA, &failingWriter{err: sentinel})
	require.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, "data", legA.String(), "leg A write precedes the leg B failure")
}

func TestRun_ShortWriteIsFatal(t *testing.T) {
	t.Parallel()

	err := Run(strings.NewReader("data"), &shortWriter{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestRun_ReadErrorIsFatal(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("read failure")

	err := Run(&failingReader{err: sentinel}, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, sentinel)
}
