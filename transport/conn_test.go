// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/d2718/grel/lib/testutil"
	"github.com/d2718/grel/wire"
)

// tick is the poll bound used throughout; ScriptConn never actually
// waits, so the value is immaterial.
const tick = 10 * time.Millisecond

func newTestConn(t *testing.T) (*Conn, *testutil.ScriptConn) {
	t.Helper()
	script := testutil.NewScriptConn()
	return New(script, 0), script
}

func TestPollIdle(t *testing.T) {
	conn, _ := newTestConn(t)
	n, err := conn.Poll(tick)
	if err != nil {
		t.Fatalf("Poll on idle conn failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Poll read %d bytes, want 0", n)
	}
	if conn.RecvBuffered() != 0 {
		t.Errorf("RecvBuffered = %d, want 0", conn.RecvBuffered())
	}
}

func TestNextDrainsSingleChunk(t *testing.T) {
	conn, script := newTestConn(t)
	script.QueueRead([]byte(`"Ping"{"Info":"hi"}`))

	if _, err := conn.Poll(tick); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	first, err := conn.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if _, ok := first.(wire.Ping); !ok {
		t.Fatalf("first frame is %T, want Ping", first)
	}

	second, err := conn.Next()
	if err != nil {
		t.Fatalf("second Next failed: %v", err)
	}
	if info, ok := second.(wire.Info); !ok || info.Text != "hi" {
		t.Fatalf("second frame is %#v, want Info{hi}", second)
	}

	third, err := conn.Next()
	if err != nil || third != nil {
		t.Fatalf("third Next = (%v, %v), want (nil, nil)", third, err)
	}
	if conn.RecvBuffered() != 0 {
		t.Errorf("RecvBuffered = %d after draining, want 0", conn.RecvBuffered())
	}
}

func TestNextAcrossSplitReads(t *testing.T) {
	conn, script := newTestConn(t)
	frame := []byte(`{"Text":{"who":"alice","lines":["hello"]}}`)
	script.QueueRead(frame[:17])
	script.QueueRead(frame[17:])

	if _, err := conn.Poll(tick); err != nil {
		t.Fatalf("first Poll failed: %v", err)
	}
	message, err := conn.Next()
	if err != nil || message != nil {
		t.Fatalf("Next after partial read = (%v, %v), want (nil, nil)", message, err)
	}

	if _, err := conn.Poll(tick); err != nil {
		t.Fatalf("second Poll failed: %v", err)
	}
	message, err = conn.Next()
	if err != nil {
		t.Fatalf("Next after full frame failed: %v", err)
	}
	text, ok := message.(wire.Text)
	if !ok {
		t.Fatalf("frame is %T, want Text", message)
	}
	if text.Who != "alice" || len(text.Lines) != 1 || text.Lines[0] != "hello" {
		t.Errorf("unexpected frame: %#v", text)
	}
}

func TestFlushPartialWrite(t *testing.T) {
	conn, script := newTestConn(t)
	conn.Enqueue([]byte("0123456789"))
	script.LimitWrite(4)

	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush with short write failed: %v", err)
	}
	if conn.SendQueued() != 6 {
		t.Errorf("SendQueued = %d after short write, want 6", conn.SendQueued())
	}

	if err := conn.Flush(); err != nil {
		t.Fatalf("second Flush failed: %v", err)
	}
	if conn.SendQueued() != 0 {
		t.Errorf("SendQueued = %d after drain, want 0", conn.SendQueued())
	}
	if got := script.Written(); !bytes.Equal(got, []byte("0123456789")) {
		t.Errorf("wrote %q, want the full queue in order", got)
	}
}

func TestPollCleanClose(t *testing.T) {
	conn, script := newTestConn(t)
	script.FailReads(io.EOF)

	_, err := conn.Poll(tick)
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Poll after remote close = %v, want ErrClosed", err)
	}
}

func TestPollHardError(t *testing.T) {
	conn, script := newTestConn(t)
	script.FailReads(errors.New("connection reset"))

	_, err := conn.Poll(tick)
	if err == nil || errors.Is(err, ErrClosed) {
		t.Fatalf("Poll after hard error = %v, want wrapped transport error", err)
	}
}

func TestPollTrailingBytesBeforeClose(t *testing.T) {
	conn, script := newTestConn(t)
	script.QueueRead([]byte(`{"Logout":"bye"}`))
	script.FailReads(io.EOF)

	if _, err := conn.Poll(tick); err != nil {
		t.Fatalf("Poll with trailing data failed: %v", err)
	}
	message, err := conn.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if logout, ok := message.(wire.Logout); !ok || logout.Message != "bye" {
		t.Fatalf("frame is %#v, want Logout{bye}", message)
	}

	if _, err := conn.Poll(tick); !errors.Is(err, ErrClosed) {
		t.Fatalf("Poll after drain = %v, want ErrClosed", err)
	}
}

func TestEnqueueMessage(t *testing.T) {
	conn, script := newTestConn(t)
	if err := conn.EnqueueMessage(wire.Query{What: "roster"}); err != nil {
		t.Fatalf("EnqueueMessage failed: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	message, consumed, err := wire.DecodeFirst(script.Written())
	if err != nil {
		t.Fatalf("written bytes do not decode: %v", err)
	}
	if consumed != len(script.Written()) {
		t.Errorf("decode consumed %d of %d written bytes", consumed, len(script.Written()))
	}
	if query, ok := message.(wire.Query); !ok || query.What != "roster" {
		t.Errorf("wrote %#v, want Query{roster}", message)
	}
}

func TestBlockingSend(t *testing.T) {
	conn, script := newTestConn(t)
	script.LimitWrite(2)

	err := conn.BlockingSend(context.Background(), []byte("abcdef"), time.Millisecond)
	if err != nil {
		t.Fatalf("BlockingSend failed: %v", err)
	}
	if got := script.Written(); !bytes.Equal(got, []byte("abcdef")) {
		t.Errorf("wrote %q, want %q", got, "abcdef")
	}
}

func TestBlockingNext(t *testing.T) {
	conn, script := newTestConn(t)
	frame := []byte(`{"Info":"welcome"}`)
	script.QueueRead(frame[:5])
	script.QueueRead(frame[5:])

	message, err := conn.BlockingNext(context.Background(), time.Millisecond)
	if err != nil {
		t.Fatalf("BlockingNext failed: %v", err)
	}
	if info, ok := message.(wire.Info); !ok || info.Text != "welcome" {
		t.Fatalf("frame is %#v, want Info{welcome}", message)
	}
}
