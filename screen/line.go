// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import "unicode"

// span is one word together with the whitespace that preceded it in
// the logical line.
type span struct {
	space string
	word  string
}

// Line is one immutable logical line of scrollback text with a cached
// wrapped rendering. The cache is valid for exactly one width: asking
// for the same width again returns it untouched, asking for a
// different width discards and recomputes it.
type Line struct {
	text  string
	spans []span

	// width is the pane width the cached rows were computed for;
	// zero means no rendering has been computed yet.
	width int

	// rows holds the wrapped fragments newest-first, matching the
	// bottom-up paint order of the main pane.
	rows []string
}

// NewLine tokenizes text into whitespace-delimited words, keeping each
// word's leading spacing so mid-row word gaps survive wrapping.
func NewLine(text string) *Line {
	line := &Line{text: text}
	runes := []rune(text)
	for i := 0; i < len(runes); {
		spaceStart := i
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		wordStart := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		if wordStart == i {
			break // trailing whitespace, no word follows
		}
		line.spans = append(line.spans, span{
			space: string(runes[spaceStart:wordStart]),
			word:  string(runes[wordStart:i]),
		})
	}
	return line
}

// Text returns the original logical text.
func (l *Line) Text() string { return l.text }

// Rows returns the line wrapped to width, newest fragment first.
// Repeated calls at the same width return the cached rendering.
func (l *Line) Rows(width int) []string {
	if width <= 0 {
		return nil
	}
	if l.width != width {
		l.wrap(width)
	}
	return l.rows
}

// wrap greedily packs words into rows of at most width characters. A
// single word longer than the width is hard-split into consecutive
// width-sized fragments, each its own row. Continuation rows start
// with their leading whitespace trimmed; only the first row keeps the
// logical line's leading whitespace.
func (l *Line) wrap(width int) {
	var rows []string
	current := make([]rune, 0, width)
	flush := func() {
		rows = append(rows, string(current))
		current = current[:0]
	}

	for index, piece := range l.spans {
		space := []rune(piece.space)
		word := []rune(piece.word)

		keepSpace := len(current) > 0 || (index == 0 && len(rows) == 0)
		need := len(word)
		if keepSpace {
			need += len(space)
		}
		if len(current)+need <= width {
			if keepSpace {
				current = append(current, space...)
			}
			current = append(current, word...)
			continue
		}

		if len(current) > 0 {
			flush()
		}
		for len(word) > width {
			rows = append(rows, string(word[:width]))
			word = word[width:]
		}
		current = append(current, word...)
	}
	if len(current) > 0 || len(rows) == 0 {
		flush()
	}

	// Painting fills the pane bottom-up, so store the fragments
	// newest-first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	l.width = width
	l.rows = rows
}

// Scrollback stores logical lines oldest-first and enforces an
// optional cap by truncating the oldest lines.
type Scrollback struct {
	lines []*Line
	max   int
}

// NewScrollback creates a scrollback capped at max logical lines; a
// max of zero or less means unbounded.
func NewScrollback(max int) *Scrollback {
	return &Scrollback{max: max}
}

// Push appends one logical line, evicting the oldest lines when the
// cap is exceeded.
func (s *Scrollback) Push(text string) {
	s.lines = append(s.lines, NewLine(text))
	if s.max > 0 && len(s.lines) > s.max {
		overflow := len(s.lines) - s.max
		s.lines = append(s.lines[:0:0], s.lines[overflow:]...)
	}
}

// Len returns the number of stored logical lines.
func (s *Scrollback) Len() int { return len(s.lines) }

// Recent returns the i-th newest line; Recent(0) is the newest.
func (s *Scrollback) Recent(i int) *Line {
	return s.lines[len(s.lines)-1-i]
}

// TotalRows returns the total wrapped row count at the given width,
// used to bound how far back the pane can scroll.
func (s *Scrollback) TotalRows(width int) int {
	total := 0
	for _, line := range s.lines {
		total += len(line.Rows(width))
	}
	return total
}
