// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"net"
	"time"
)

// Compile-time interface check.
var _ net.Conn = (*ScriptConn)(nil)

// ScriptConn is a scripted in-memory net.Conn for tests. Reads return
// the queued chunks in order; once the script is exhausted, Read
// returns a timeout error (or the terminal error installed with
// FailReads). Writes are captured, optionally truncated to the
// acceptance limits queued with LimitWrite so partial-write paths can
// be exercised.
type ScriptConn struct {
	reads        [][]byte
	readErr      error
	acceptLimits []int
	written      bytes.Buffer
	closed       bool
}

// NewScriptConn returns an empty ScriptConn: every Read times out and
// every Write is accepted in full.
func NewScriptConn() *ScriptConn {
	return &ScriptConn{}
}

// QueueRead appends one chunk to the read script. Each Read call
// returns exactly one queued chunk.
func (c *ScriptConn) QueueRead(data []byte) {
	c.reads = append(c.reads, append([]byte(nil), data...))
}

// FailReads makes Read return err once the queued chunks are
// exhausted, instead of timing out. Use io.EOF for a clean remote
// close.
func (c *ScriptConn) FailReads(err error) {
	c.readErr = err
}

// LimitWrite queues an acceptance limit: the next Write accepts at
// most n bytes and reports a timeout for the remainder, mimicking a
// short write on a deadline-bounded socket.
func (c *ScriptConn) LimitWrite(n int) {
	c.acceptLimits = append(c.acceptLimits, n)
}

// Written returns everything accepted by Write so far.
func (c *ScriptConn) Written() []byte {
	return c.written.Bytes()
}

func (c *ScriptConn) Read(p []byte) (int, error) {
	if len(c.reads) == 0 {
		if c.readErr != nil {
			return 0, c.readErr
		}
		return 0, timeoutError{}
	}
	chunk := c.reads[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		c.reads[0] = chunk[n:]
	} else {
		c.reads = c.reads[1:]
	}
	return n, nil
}

func (c *ScriptConn) Write(p []byte) (int, error) {
	limit := len(p)
	if len(c.acceptLimits) > 0 {
		limit = c.acceptLimits[0]
		c.acceptLimits = c.acceptLimits[1:]
	}
	if limit >= len(p) {
		c.written.Write(p)
		return len(p), nil
	}
	c.written.Write(p[:limit])
	return limit, timeoutError{}
}

func (c *ScriptConn) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *ScriptConn) Closed() bool {
	return c.closed
}

func (c *ScriptConn) LocalAddr() net.Addr                { return scriptAddr{} }
func (c *ScriptConn) RemoteAddr() net.Addr               { return scriptAddr{} }
func (c *ScriptConn) SetDeadline(t time.Time) error      { return nil }
func (c *ScriptConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *ScriptConn) SetWriteDeadline(t time.Time) error { return nil }

type scriptAddr struct{}

func (scriptAddr) Network() string { return "script" }
func (scriptAddr) String() string  { return "script:0" }

// timeoutError satisfies net.Error with Timeout() == true, matching
// what a deadline-bounded read or write reports on an idle socket.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
