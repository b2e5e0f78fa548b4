// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package client ties the grel client together: session state, the
// message dispatcher, input-line command parsing, and the event loop.
//
// [Session] owns the transport connection and the screen, and runs a
// single-threaded cooperative loop: each tick drains pending keyboard
// events into the input editor, flushes the outgoing queue, makes one
// bounded read from the socket, dispatches whatever complete frames
// arrived, and repaints if anything visible changed. The two bounded
// waits (the key-event drain is non-blocking, the socket read has the
// tick timeout) keep the loop responsive to both sources without
// threads or locks. Termination is cooperative: the dispatcher or a
// transport failure sets a flag consulted at the top of the next
// iteration.
//
// Committed input lines starting with the command sigil are parsed
// into structured requests (quit, name, join, who); anything else is
// sent as chat text. An unrecognized sigil command produces a
// local-only notice and sends nothing.
package client
