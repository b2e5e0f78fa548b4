// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/d2718/grel/wire"
)

// splitCommand tries to read line as a sigil command: optional leading
// whitespace, the sigil, then a non-whitespace command token, then the
// rest of the line as its argument. The command is lowercased and the
// argument trimmed of surrounding whitespace. ok is false when the
// line is plain chat text (including a bare sigil with no token).
func splitCommand(line string, sigil rune) (command, argument string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	runes := []rune(trimmed)
	if len(runes) == 0 || runes[0] != sigil {
		return "", "", false
	}

	rest := runes[1:]
	tokenEnd := 0
	for tokenEnd < len(rest) && !unicode.IsSpace(rest[tokenEnd]) {
		tokenEnd++
	}
	if tokenEnd == 0 {
		return "", "", false
	}

	command = strings.ToLower(string(rest[:tokenEnd]))
	argument = strings.TrimSpace(string(rest[tokenEnd:]))
	return command, argument, true
}

// commit handles one committed input line: a recognized sigil command
// becomes a structured outgoing request, an unrecognized one becomes a
// local-only notice, and anything else is sent as chat text.
func (s *Session) commit(line string) {
	command, argument, ok := splitCommand(line, s.sigil)
	if !ok {
		if strings.TrimSpace(line) == "" {
			return
		}
		s.enqueue(wire.Text{Lines: strings.Split(line, "\n")})
		return
	}

	switch command {
	case "quit":
		s.enqueue(wire.Logout{Message: argument})
	case "name":
		s.enqueue(wire.Name{New: argument})
	case "join":
		s.enqueue(wire.Join{What: argument})
	case "who":
		s.enqueue(wire.Query{What: "who", Arg: argument})
	default:
		s.screen.Push(fmt.Sprintf("# Unknown command %q", command))
	}
}
