// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport owns the byte plumbing between the client and the
// chat server.
//
// [Conn] wraps a TCP connection in two queues. The outgoing queue
// accumulates encoded protocol values via [Conn.Enqueue]; one
// deadline-bounded [Conn.Flush] per event-loop tick writes as much of
// it as the socket will accept, keeping the unaccepted suffix for the
// next tick. The incoming buffer accumulates whatever one bounded
// [Conn.Poll] read delivers; [Conn.Next] peels complete protocol
// values off its front via wire.DecodeFirst, leaving partial trailing
// bytes in place until more arrive.
//
// Timeouts are not errors: an idle tick reports zero bytes and no
// frames. A clean remote close surfaces as [ErrClosed], distinct from
// hard I/O errors; both are fatal to the session.
//
// The blocking helpers [Conn.BlockingSend] and [Conn.BlockingNext]
// busy-wait at a tick interval and exist for the login handshake,
// before the event loop starts.
package transport
