// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/d2718/grel/screen"
	"github.com/d2718/grel/transport"
	"github.com/d2718/grel/wire"
)

// defaultRoom is what the status line shows until the server confirms
// the first join.
const defaultRoom = "Lobby"

// Config carries the session tunables from the configuration layer.
type Config struct {
	// Name is the display name sent in the login handshake.
	Name string

	// Tick bounds the socket read each loop iteration and paces the
	// loop. Smaller values lower input and message latency at the
	// cost of more wakeups per second; the 100ms default keeps the
	// client under 0.5% of a core while feeling immediate.
	Tick time.Duration

	// Sigil marks a committed input line as a command.
	Sigil rune

	// RosterWidth is the column width of the roster side panel.
	RosterWidth int

	// MaxScrollback caps stored scrollback lines; the oldest are
	// truncated beyond it. Zero or less means unbounded.
	MaxScrollback int
}

// Session is the running client: connection, screen, and chat state,
// mutated only by the event loop's goroutine.
type Session struct {
	conn     *transport.Conn
	terminal tcell.Screen
	screen   *screen.Screen
	logger   *slog.Logger

	tick  time.Duration
	sigil rune

	name       string
	room       string
	serverAddr string

	done     bool
	exitErr  error
	farewell []string
}

// New assembles a session over an established connection and an
// initialized terminal.
func New(conn *transport.Conn, terminal tcell.Screen, cfg Config, logger *slog.Logger) *Session {
	return &Session{
		conn:       conn,
		terminal:   terminal,
		screen:     screen.New(terminal, cfg.RosterWidth, cfg.MaxScrollback),
		logger:     logger,
		tick:       cfg.Tick,
		sigil:      cfg.Sigil,
		name:       cfg.Name,
		room:       defaultRoom,
		serverAddr: conn.RemoteAddr(),
	}
}

// Farewell returns the messages to print after the terminal is
// restored: the server's parting words, or the error that ended the
// session.
func (s *Session) Farewell() []string {
	return s.farewell
}

// Screen exposes the screen for tests.
func (s *Session) Screen() *screen.Screen {
	return s.screen
}

// enqueue encodes a message onto the outgoing queue. Encoding a known
// variant cannot fail; a failure here is a programming error worth a
// log line but not a crash mid-session.
func (s *Session) enqueue(message wire.Message) {
	if err := s.conn.EnqueueMessage(message); err != nil {
		s.logger.Error("cannot encode outgoing message", "error", err)
	}
}

// updateStatus rewrites the status row from the current chat state.
func (s *Session) updateStatus() {
	s.screen.SetStatus(fmt.Sprintf("%s @ %s | %s", s.name, s.serverAddr, s.room))
}

// fail records a fatal transport error and stops the loop.
func (s *Session) fail(err error) {
	s.logger.Error("session failed", "error", err)
	s.exitErr = err
	s.farewell = append(s.farewell, err.Error())
	s.done = true
}
