// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/d2718/grel/wire"
)

// ErrClosed reports that the remote end closed the stream cleanly.
// It ends the session but is not a transport fault.
var ErrClosed = errors.New("transport: connection closed by remote")

// DefaultReadSize is how many bytes one Poll attempts to read when the
// caller does not configure a size.
const DefaultReadSize = 1024

// defaultWriteTimeout bounds one Flush attempt. Long enough to drain a
// full outgoing queue on a healthy link, short enough that a stalled
// peer cannot hold up the event loop for a visible beat.
const defaultWriteTimeout = 50 * time.Millisecond

// Conn wraps a stream connection with an outgoing byte queue and an
// incoming decode buffer. It is not safe for concurrent use; the
// client's single-threaded event loop is the only caller.
type Conn struct {
	conn       net.Conn
	readChunk  []byte
	sendQueue  []byte
	recvBuffer []byte

	// WriteTimeout bounds each Flush attempt. A timeout is not an
	// error; unaccepted bytes stay queued for the next tick.
	WriteTimeout time.Duration
}

// Dial connects to a grel server at address ("host:port"), enabling
// TCP no-delay so single keystroke-sized frames are not batched.
func Dial(address string, readSize int) (*Conn, error) {
	raw, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", address, err)
	}
	if tcp, ok := raw.(*net.TCPConn); ok {
		if err := tcp.SetNoDelay(true); err != nil {
			raw.Close()
			return nil, fmt.Errorf("transport: set no-delay: %w", err)
		}
	}
	return New(raw, readSize), nil
}

// New wraps an established connection. readSize controls how many
// bytes one Poll attempts; zero or negative uses DefaultReadSize.
func New(conn net.Conn, readSize int) *Conn {
	if readSize <= 0 {
		readSize = DefaultReadSize
	}
	return &Conn{
		conn:         conn,
		readChunk:    make([]byte, readSize),
		WriteTimeout: defaultWriteTimeout,
	}
}

// Enqueue appends already-encoded bytes to the outgoing queue. Nothing
// is written until Flush.
func (c *Conn) Enqueue(data []byte) {
	c.sendQueue = append(c.sendQueue, data...)
}

// EnqueueMessage encodes a protocol value and appends it to the
// outgoing queue.
func (c *Conn) EnqueueMessage(message wire.Message) error {
	data, err := wire.Encode(message)
	if err != nil {
		return err
	}
	c.Enqueue(data)
	return nil
}

// Flush makes one bounded attempt to write the whole outgoing queue.
// On partial acceptance, exactly the accepted prefix is removed and
// the remainder stays queued for the next tick. A timeout is not an
// error; any other write failure is fatal to the session.
func (c *Conn) Flush() error {
	if len(c.sendQueue) == 0 {
		return nil
	}
	if c.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout)); err != nil {
			return fmt.Errorf("transport: set write deadline: %w", err)
		}
	}
	accepted, err := c.conn.Write(c.sendQueue)
	c.sendQueue = c.sendQueue[accepted:]
	if err != nil && !isTimeout(err) {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Poll makes one bounded-wait read, appending whatever arrives to the
// incoming buffer. It returns the number of bytes read; zero with a
// nil error means the tick was idle. A clean end of stream returns
// ErrClosed after appending any trailing bytes; other read failures
// are fatal.
func (c *Conn) Poll(timeout time.Duration) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, fmt.Errorf("transport: set read deadline: %w", err)
	}
	n, err := c.conn.Read(c.readChunk)
	if n > 0 {
		c.recvBuffer = append(c.recvBuffer, c.readChunk[:n]...)
	}
	if err != nil {
		if isTimeout(err) {
			return n, nil
		}
		if errors.Is(err, io.EOF) {
			return n, ErrClosed
		}
		return n, fmt.Errorf("transport: read: %w", err)
	}
	return n, nil
}

// Next extracts the next complete protocol value from the incoming
// buffer, consuming exactly its bytes. It returns (nil, nil) when the
// buffer holds no complete value; the partial bytes are retained for
// the next Poll. A decode error means the stream is carrying garbage
// and the session should end.
func (c *Conn) Next() (wire.Message, error) {
	if len(c.recvBuffer) == 0 {
		return nil, nil
	}
	message, consumed, err := wire.DecodeFirst(c.recvBuffer)
	if errors.Is(err, wire.ErrIncomplete) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.recvBuffer = c.recvBuffer[consumed:]
	return message, nil
}

// SendQueued returns how many bytes are waiting to be flushed.
func (c *Conn) SendQueued() int { return len(c.sendQueue) }

// RecvBuffered returns how many received bytes are waiting to be
// decoded.
func (c *Conn) RecvBuffered() int { return len(c.recvBuffer) }

// RemoteAddr returns the server's address.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Close shuts down the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// BlockingSend enqueues data and flushes at the tick interval until
// the outgoing queue is empty or ctx is done. Used for the login
// handshake before the event loop starts.
func (c *Conn) BlockingSend(ctx context.Context, data []byte, tick time.Duration) error {
	c.Enqueue(data)
	for {
		if err := c.Flush(); err != nil {
			return err
		}
		if len(c.sendQueue) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(tick):
		}
	}
}

// BlockingNext polls at the tick interval until one complete protocol
// value arrives or ctx is done.
func (c *Conn) BlockingNext(ctx context.Context, tick time.Duration) (wire.Message, error) {
	for {
		message, err := c.Next()
		if err != nil {
			return nil, err
		}
		if message != nil {
			return message, nil
		}
		if _, err := c.Poll(tick); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
}

// isTimeout reports whether err is a deadline expiry rather than a
// hard I/O failure.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
