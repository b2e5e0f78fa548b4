// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for grel packages.
//
// [ScriptConn] is an in-memory net.Conn whose reads and writes follow
// a script set up by the test: queued read chunks are returned one per
// Read call, and write acceptance can be limited to exercise partial
// write handling. Reads past the end of the script time out (like a
// deadline-bounded read on an idle socket) unless the test installs a
// terminal error with [ScriptConn.FailReads]. This keeps transport and
// dispatcher tests deterministic: no real sockets, no wall-clock
// sleeps.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no grel-internal dependencies.
package testutil
