// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline implements the process-and-pipe orchestration at
// the core of dpipe: pipe creation, child spawning with an explicit
// inherited-descriptor table, descriptor-closing discipline, and child
// reaping.
//
// A run wires four children together: the head command's stdout feeds
// a relay child, which duplicates every byte to two leg commands'
// stdins. Correctness rests entirely on descriptor bookkeeping: a
// reader only observes end-of-stream once every copy of the peer write
// end is closed, so each process must hold exactly the endpoints its
// role requires and nothing else. Spawning therefore takes the exact
// file table the child receives rather than relying on ambient
// inheritance.
package pipeline
