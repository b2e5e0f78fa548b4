// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	// minMainWidth and minHeight are the smallest geometry the panes
	// can be laid out in; below this the screen shows a resize
	// prompt instead.
	minMainWidth = 12
	minHeight    = 5

	separator = '│'
)

// tooSmall is shown when the terminal cannot fit the pane layout.
const tooSmall = "The terminal window is too small. Please make it larger."

// Screen is the layout manager. It owns the scrollback pane, the
// roster side panel, the status row, and the input row, derives their
// geometry from the terminal size, and repaints only the panes whose
// dirty flag is set.
type Screen struct {
	terminal    tcell.Screen
	scrollback  *Scrollback
	input       Input
	roster      []string
	rosterWidth int
	status      string

	width  int
	height int

	// scroll is how many wrapped rows the main pane is scrolled back
	// from the bottom (0 = pinned to the newest line).
	scroll int

	linesDirty  bool
	inputDirty  bool
	rosterDirty bool
	statusDirty bool
}

// New creates a Screen over an initialized terminal. rosterWidth is
// the fixed column width of the side panel; maxScrollback caps the
// number of stored logical lines (zero or less = unbounded).
func New(terminal tcell.Screen, rosterWidth, maxScrollback int) *Screen {
	width, height := terminal.Size()
	terminal.HideCursor()
	return &Screen{
		terminal:    terminal,
		scrollback:  NewScrollback(maxScrollback),
		rosterWidth: rosterWidth,
		width:       width,
		height:      height,
		linesDirty:  true,
		inputDirty:  true,
		rosterDirty: true,
		statusDirty: true,
	}
}

// Push appends one logical line to the scrollback.
func (s *Screen) Push(text string) {
	s.scrollback.Push(text)
	s.linesDirty = true
}

// ScrollbackLen returns the number of stored logical lines.
func (s *Screen) ScrollbackLen() int { return s.scrollback.Len() }

// SetRoster replaces the side panel contents wholesale.
func (s *Screen) SetRoster(items []string) {
	s.roster = append([]string(nil), items...)
	s.rosterDirty = true
}

// SetStatus replaces the status row text.
func (s *Screen) SetStatus(text string) {
	s.status = text
	s.statusDirty = true
}

// Resize records a new terminal size and marks every pane dirty. The
// wrap caches invalidate themselves lazily on the next paint.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.linesDirty = true
	s.inputDirty = true
	s.rosterDirty = true
	s.statusDirty = true
}

// ScrollPage scrolls the main pane by whole pages; positive direction
// scrolls back in time. The offset is clamped so the pane can neither
// scroll below the newest row nor past the oldest.
func (s *Screen) ScrollPage(direction int) {
	page := s.mainHeight() - 1
	if page < 1 {
		page = 1
	}
	s.scroll += direction * page
	if limit := s.scrollback.TotalRows(s.mainWidth()) - 1; s.scroll > limit {
		s.scroll = limit
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	s.linesDirty = true
}

// Input editing entry points. Each marks the input row dirty.

func (s *Screen) InsertRune(ch rune) { s.input.Insert(ch); s.inputDirty = true }
func (s *Screen) Backspace()         { s.input.Backspace(); s.inputDirty = true }
func (s *Screen) DeleteForward()     { s.input.Delete(); s.inputDirty = true }
func (s *Screen) CursorLeft()        { s.input.MoveLeft(); s.inputDirty = true }
func (s *Screen) CursorRight()       { s.input.MoveRight(); s.inputDirty = true }
func (s *Screen) CursorHome()        { s.input.MoveStart(); s.inputDirty = true }
func (s *Screen) CursorEnd()         { s.input.MoveEnd(); s.inputDirty = true }

// CommitInput returns the input line's contents and resets it. The
// committed line also re-pins the main pane to the newest row.
func (s *Screen) CommitInput() string {
	s.inputDirty = true
	if s.scroll != 0 {
		s.scroll = 0
		s.linesDirty = true
	}
	return s.input.Commit()
}

// Dirty reports whether any pane needs repainting.
func (s *Screen) Dirty() bool {
	return s.linesDirty || s.inputDirty || s.rosterDirty || s.statusDirty
}

func (s *Screen) mainWidth() int  { return s.width - s.rosterWidth - 1 }
func (s *Screen) mainHeight() int { return s.height - 2 }

// Paint redraws every dirty pane and flushes the terminal. It is a
// no-op when nothing changed since the last call.
func (s *Screen) Paint() {
	if !s.Dirty() {
		return
	}

	if s.mainWidth() < minMainWidth || s.height < minHeight {
		// Leave the dirty flags set so the next resize repaints.
		s.terminal.Clear()
		s.drawText(0, 0, s.width, tcell.StyleDefault, tooSmall)
		s.terminal.Show()
		return
	}

	if s.linesDirty {
		s.paintMain()
		s.linesDirty = false
	}
	if s.rosterDirty {
		s.paintRoster()
		s.rosterDirty = false
	}
	if s.statusDirty {
		s.paintStatus()
		s.statusDirty = false
	}
	if s.inputDirty {
		s.paintInput()
		s.inputDirty = false
	}
	s.terminal.Show()
}

// paintMain fills the scrollback pane bottom-up: logical lines newest
// to oldest, each line's wrapped fragments newest first, until the
// pane runs out of rows. Fewer stored lines than rows leaves the top
// blank.
func (s *Screen) paintMain() {
	width := s.mainWidth()
	y := s.mainHeight() - 1
	skip := s.scroll

	for i := 0; i < s.scrollback.Len() && y >= 0; i++ {
		for _, row := range s.scrollback.Recent(i).Rows(width) {
			if skip > 0 {
				skip--
				continue
			}
			s.drawText(0, y, width, tcell.StyleDefault, row)
			y--
			if y < 0 {
				break
			}
		}
	}
	for ; y >= 0; y-- {
		s.drawText(0, y, width, tcell.StyleDefault, "")
	}
}

// paintRoster draws the separator column and the user list, one name
// per row, truncated to the panel width.
func (s *Screen) paintRoster() {
	left := s.mainWidth()
	height := s.mainHeight()
	for y := 0; y < height; y++ {
		s.terminal.SetContent(left, y, separator, nil, tcell.StyleDefault)
		name := ""
		if y < len(s.roster) {
			name = runewidth.Truncate(s.roster[y], s.rosterWidth, "")
		}
		s.drawText(left+1, y, s.rosterWidth, tcell.StyleDefault, name)
	}
}

// paintStatus draws the status row, reverse-styled, above the input
// row.
func (s *Screen) paintStatus() {
	s.drawText(0, s.height-2, s.width, tcell.StyleDefault.Reverse(true), " "+s.status)
}

// paintInput draws the input row with the cursor cell reverse-styled;
// past the last rune the cursor is a reverse-styled blank. The buffer
// scrolls horizontally in thirds of the row width so the cursor stays
// visible on long lines.
func (s *Screen) paintInput() {
	width := s.width
	y := s.height - 1
	runes := s.input.Runes()
	cursor := s.input.Cursor()

	third := width / 3
	start := 0
	if len(runes) >= width {
		switch {
		case cursor < third:
			start = 0
		case cursor > width-third:
			start = cursor - (width - third)
		default:
			start = cursor - third
		}
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
	}

	x := 0
	for i := start; i < end && x < width; i++ {
		style := tcell.StyleDefault
		if i == cursor {
			style = style.Reverse(true)
		}
		s.terminal.SetContent(x, y, runes[i], nil, style)
		x++
	}
	if cursor == len(runes) && x < width {
		s.terminal.SetContent(x, y, ' ', nil, tcell.StyleDefault.Reverse(true))
		x++
	}
	for ; x < width; x++ {
		s.terminal.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// drawText draws text at (x, y) clipped and padded to max cells,
// advancing by display width so wide runes stay aligned.
func (s *Screen) drawText(x, y, max int, style tcell.Style, text string) {
	column := x
	for _, ch := range text {
		cells := runewidth.RuneWidth(ch)
		if cells == 0 {
			cells = 1
		}
		if column+cells > x+max {
			break
		}
		s.terminal.SetContent(column, y, ch, nil, style)
		column += cells
	}
	for ; column < x+max; column++ {
		s.terminal.SetContent(column, y, ' ', nil, style)
	}
}
