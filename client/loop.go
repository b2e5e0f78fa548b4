// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/d2718/grel/transport"
	"github.com/d2718/grel/wire"
)

// Run is the event loop. One iteration per tick: drain pending key
// events, flush the outgoing queue, one bounded socket read, dispatch
// the frames it produced, repaint if anything changed, then sleep out
// the remainder of the tick. Returns nil on normal termination
// (server logout or local quit) and the transport error otherwise.
func (s *Session) Run(ctx context.Context) error {
	s.updateStatus()
	s.screen.Paint()

	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		s.drainEvents()

		if err := s.conn.Flush(); err != nil {
			s.fail(err)
			break
		}

		if _, err := s.conn.Poll(s.tick); err != nil {
			if errors.Is(err, transport.ErrClosed) {
				s.farewell = append(s.farewell, "Connection closed by server.")
				s.done = true
			} else {
				s.fail(err)
			}
			break
		}

		for !s.done {
			message, err := s.conn.Next()
			if err != nil {
				s.fail(err)
				break
			}
			if message == nil {
				break
			}
			s.dispatch(message)
		}

		s.screen.Paint()

		if remaining := s.tick - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	return s.exitErr
}

// drainEvents consumes every pending terminal event without blocking:
// the socket poll is the loop's only wait.
func (s *Session) drainEvents() {
	for s.terminal.HasPendingEvent() {
		event := s.terminal.PollEvent()
		if event == nil {
			return
		}
		switch ev := event.(type) {
		case *tcell.EventResize:
			width, height := ev.Size()
			s.screen.Resize(width, height)
		case *tcell.EventKey:
			s.handleKey(ev)
		}
	}
}

// handleKey routes one keystroke to the input editor, the scrollback
// pane, or the quit path.
func (s *Session) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		s.screen.InsertRune(ev.Rune())
	case tcell.KeyEnter:
		s.commit(s.screen.CommitInput())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.screen.Backspace()
	case tcell.KeyDelete:
		s.screen.DeleteForward()
	case tcell.KeyLeft:
		s.screen.CursorLeft()
	case tcell.KeyRight:
		s.screen.CursorRight()
	case tcell.KeyHome:
		s.screen.CursorHome()
	case tcell.KeyEnd:
		s.screen.CursorEnd()
	case tcell.KeyPgUp:
		s.screen.ScrollPage(1)
	case tcell.KeyPgDn:
		s.screen.ScrollPage(-1)
	case tcell.KeyCtrlC:
		s.enqueue(wire.Logout{Message: "quit"})
	}
}
