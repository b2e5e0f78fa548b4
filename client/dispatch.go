// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"strings"

	"github.com/d2718/grel/wire"
)

// dispatch applies one received protocol value to the session. The
// switch is exhaustive over the closed wire.Message set; adding a
// variant without a case here falls through to the unrecognized
// notice, which the Unknown policy below makes visible.
func (s *Session) dispatch(message wire.Message) {
	switch value := message.(type) {
	case wire.Ping:
		// Keepalive: answer immediately, nothing visible.
		s.enqueue(wire.Ping{})

	case wire.Text:
		for _, line := range value.Lines {
			s.screen.Push(value.Who + ": " + line)
		}

	case wire.Join:
		if value.Who == s.name {
			s.room = value.What
			s.screen.Push(fmt.Sprintf("* You join %s.", value.What))
			s.updateStatus()
		} else {
			s.screen.Push(fmt.Sprintf("* %s joins %s.", value.Who, value.What))
		}
		s.enqueue(wire.Query{What: "roster"})

	case wire.Name:
		if value.Who == s.name {
			s.name = value.New
			s.screen.Push(fmt.Sprintf("* You are now known as %s.", value.New))
			s.updateStatus()
		} else {
			s.screen.Push(fmt.Sprintf("* %s is now known as %s.", value.Who, value.New))
		}
		s.enqueue(wire.Query{What: "roster"})

	case wire.Leave:
		s.screen.Push(fmt.Sprintf("* %s leaves: %s", value.Who, value.Message))
		s.enqueue(wire.Query{What: "roster"})

	case wire.List:
		if value.What == "roster" {
			s.screen.SetRoster(value.Items)
		} else {
			s.screen.Push(fmt.Sprintf("* %s: %s", value.What, strings.Join(value.Items, ", ")))
		}

	case wire.Info:
		s.screen.Push("* " + value.Text)

	case wire.Err:
		s.screen.Push("# " + value.Text)

	case wire.Logout:
		s.screen.Push("* " + value.Message)
		s.farewell = append(s.farewell, value.Message)
		s.done = true

	case wire.Query:
		// Queries only flow client-to-server; one arriving here is
		// as unrecognized as a foreign tag.
		s.unrecognized("Query")

	case wire.Unknown:
		s.unrecognized(value.Tag)
	}
}

// unrecognized is the single policy for values outside the understood
// set: a visible notice rather than a silent drop, so protocol
// mismatches with newer servers are diagnosable from the scrollback.
func (s *Session) unrecognized(tag string) {
	s.logger.Warn("unrecognized message", "tag", tag)
	s.screen.Push(fmt.Sprintf("# Unrecognized message: %s", tag))
}
