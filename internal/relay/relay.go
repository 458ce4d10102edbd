// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package relay implements the distributor stage of a fan-out run: it
// reads one byte stream and writes identical bytes, in order, to both
// leg pipes. It runs inside its own child process (spawned as a
// re-exec of the dpipe binary) because a pipe delivers an ordered
// stream to a single reader; only an explicit copy loop can hand the
// same ordered bytes to two consumers regardless of how fast each one
// drains its pipe.
package relay

import (
	"errors"
	"io"
)

// chunkSize bounds each read from the head pipe.
const chunkSize = 32 * 1024

var (
	// ErrRead is returned when reading the head pipe fails.
	ErrRead = errors.New("failed to read from head pipe")
	// ErrWrite is returned when writing a leg pipe fails.
	ErrWrite = errors.New("failed to write to leg pipe")
)

// Run copies src to legA and legB until src reaches end of input. Each
// chunk is written to legA first, then legB, unmodified and in read
// order. A write error or short write on either leg is fatal: partial
// write recovery is out of scope, as pipe writes either complete the
// requested chunk or fail outright.
func Run(src io.Reader, legA, legB io.Writer) error {
	buf := make([]byte, chunkSize)

	for {
		n, err := src.Read(buf)
		if n > 0 {
			if werr := writeFull(legA, buf[:n]); werr != nil {
				return werr
			}

			if werr := writeFull(legB, buf[:n]); werr != nil {
				return werr
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return errors.Join(ErrRead, err)
		}
	}
}

// writeFull writes all of p or fails. An io.Writer that reports fewer
// bytes without an error breaks the contract; surface that as a short
// write rather than silently dropping bytes.
func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return errors.Join(ErrWrite, err)
	}

	if n < len(p) {
		return errors.Join(ErrWrite, io.ErrShortWrite)
	}

	return nil
}
