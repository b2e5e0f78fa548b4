// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package screen

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newTestScreen creates a Screen over a simulation terminal of the
// given size, with a 10-column roster panel and unbounded scrollback.
func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen Init failed: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(width, height)

	screen := New(sim, 10, 0)
	screen.Resize(width, height)
	return screen, sim
}

// rowText reads one terminal row back from the simulation, with
// trailing blanks trimmed.
func rowText(t *testing.T, sim tcell.SimulationScreen, y int) string {
	t.Helper()
	cells, width, height := sim.GetContents()
	if y < 0 || y >= height {
		t.Fatalf("row %d out of range (height %d)", y, height)
	}
	var builder strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			builder.WriteRune(' ')
			continue
		}
		builder.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(builder.String(), " ")
}

func cellAt(t *testing.T, sim tcell.SimulationScreen, x, y int) tcell.SimCell {
	t.Helper()
	cells, width, height := sim.GetContents()
	if x < 0 || x >= width || y < 0 || y >= height {
		t.Fatalf("cell (%d,%d) out of range (%dx%d)", x, y, width, height)
	}
	return cells[y*width+x]
}

func TestPaintFillsBottomUp(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	screen.Push("first")
	screen.Push("second")
	screen.Paint()

	// Main pane rows are 0..height-3; newest line on the lowest row.
	if got := rowText(t, sim, 7); got != "second" {
		t.Errorf("bottom row = %q, want %q", got, "second")
	}
	if got := rowText(t, sim, 6); got != "first" {
		t.Errorf("row above = %q, want %q", got, "first")
	}
	if got := rowText(t, sim, 5); got != "" {
		t.Errorf("row above that = %q, want blank", got)
	}
}

func TestPaintWrapsLongLine(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	// Main width is 40 - 10 - 1 = 29 columns.
	screen.Push("this logical line is long enough to wrap around")
	screen.Paint()

	bottom := rowText(t, sim, 7)
	above := rowText(t, sim, 6)
	if bottom == "" || above == "" {
		t.Fatalf("expected two wrapped rows, got %q / %q", above, bottom)
	}
	joined := above + " " + bottom
	if joined != "this logical line is long enough to wrap around" {
		t.Errorf("wrapped rows read %q top-to-bottom", joined)
	}
}

func TestPaintRoster(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	screen.SetRoster([]string{"alice", "bob"})
	screen.Paint()

	// Separator column sits between the main pane and the panel.
	if cell := cellAt(t, sim, 29, 0); len(cell.Runes) == 0 || cell.Runes[0] != separator {
		t.Errorf("separator column missing at (29, 0)")
	}
	if got := rowText(t, sim, 0); !strings.HasSuffix(got, "alice") {
		t.Errorf("roster row 0 = %q, want it to end with %q", got, "alice")
	}
	if got := rowText(t, sim, 1); !strings.HasSuffix(got, "bob") {
		t.Errorf("roster row 1 = %q, want it to end with %q", got, "bob")
	}
}

func TestPaintStatusRow(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	screen.SetStatus("grel user @ 127.0.0.1:51516 | Lobby")
	screen.Paint()

	if got := rowText(t, sim, 8); !strings.Contains(got, "grel user @ 127.0.0.1:51516 | Lobby") {
		t.Errorf("status row = %q", got)
	}
	if cell := cellAt(t, sim, 0, 8); cell.Style != tcell.StyleDefault.Reverse(true) {
		t.Error("status row is not reverse-styled")
	}
}

func TestPaintInputCursor(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	for _, ch := range "hi" {
		screen.InsertRune(ch)
	}
	screen.Paint()

	if got := rowText(t, sim, 9); got != "hi" {
		t.Errorf("input row = %q, want %q", got, "hi")
	}
	// Cursor past the last rune renders as a reverse-styled blank.
	if cell := cellAt(t, sim, 2, 9); cell.Style != tcell.StyleDefault.Reverse(true) {
		t.Error("cursor cell at end of input is not reverse-styled")
	}

	screen.CursorLeft()
	screen.Paint()
	if cell := cellAt(t, sim, 1, 9); cell.Style != tcell.StyleDefault.Reverse(true) {
		t.Error("cursor cell over a rune is not reverse-styled")
	}
	if cell := cellAt(t, sim, 0, 9); cell.Style == tcell.StyleDefault.Reverse(true) {
		t.Error("non-cursor cell is reverse-styled")
	}
}

func TestPaintTooSmall(t *testing.T) {
	screen, sim := newTestScreen(t, 15, 4)
	screen.Push("hello")
	screen.Paint()

	if got := rowText(t, sim, 0); !strings.HasPrefix(tooSmall, got) || got == "" {
		t.Errorf("top row = %q, want a prefix of the too-small prompt", got)
	}
	if !screen.Dirty() {
		t.Error("too-small paint cleared the dirty flags; a resize would not repaint")
	}
}

func TestResizeRewraps(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	screen.Push("alpha beta gamma delta epsilon zeta")
	screen.Paint()
	tall := rowText(t, sim, 7)

	sim.SetSize(60, 10)
	screen.Resize(60, 10)
	screen.Paint()
	wide := rowText(t, sim, 7)

	if tall == wide && rowText(t, sim, 6) != "" {
		t.Errorf("resize did not rewrap: bottom row still %q", wide)
	}
	// Main width is now 49; the whole line fits on one row.
	if wide != "alpha beta gamma delta epsilon zeta" {
		t.Errorf("bottom row after widening = %q", wide)
	}
}

func TestScrollPage(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 10)
	for i := 0; i < 20; i++ {
		screen.Push(strings.Repeat("x", i%5+1))
	}
	screen.Paint()
	pinned := rowText(t, sim, 7)

	screen.ScrollPage(1)
	screen.Paint()
	scrolled := rowText(t, sim, 7)
	if scrolled == pinned {
		t.Error("ScrollPage(1) did not move the pane")
	}

	screen.ScrollPage(-1)
	screen.Paint()
	if got := rowText(t, sim, 7); got != pinned {
		t.Errorf("ScrollPage(-1) did not return to the newest row: %q vs %q", got, pinned)
	}

	// Scrolling forward past the newest row clamps at zero.
	screen.ScrollPage(-3)
	screen.Paint()
	if got := rowText(t, sim, 7); got != pinned {
		t.Errorf("scroll clamped wrong: bottom row %q, want %q", got, pinned)
	}
}
