// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

package screen

// Input is the editable input line: a rune buffer plus an insertion
// cursor. The cursor is always in [0, len]; position len means
// "append here".
type Input struct {
	buffer []rune
	cursor int
}

// Len returns the number of runes in the buffer.
func (in *Input) Len() int { return len(in.buffer) }

// Cursor returns the insertion position.
func (in *Input) Cursor() int { return in.cursor }

// Runes returns the buffer contents for rendering. The slice must not
// be mutated by the caller.
func (in *Input) Runes() []rune { return in.buffer }

// Insert places ch at the cursor and advances the cursor past it.
func (in *Input) Insert(ch rune) {
	in.buffer = append(in.buffer, 0)
	copy(in.buffer[in.cursor+1:], in.buffer[in.cursor:])
	in.buffer[in.cursor] = ch
	in.cursor++
}

// Backspace deletes the rune before the cursor. No-op at the start of
// the line.
func (in *Input) Backspace() {
	if in.cursor == 0 {
		return
	}
	in.buffer = append(in.buffer[:in.cursor-1], in.buffer[in.cursor:]...)
	in.cursor--
}

// Delete removes the rune at the cursor. No-op at the end of the line.
func (in *Input) Delete() {
	if in.cursor >= len(in.buffer) {
		return
	}
	in.buffer = append(in.buffer[:in.cursor], in.buffer[in.cursor+1:]...)
}

// MoveLeft moves the cursor one position left, clamped to the start.
func (in *Input) MoveLeft() {
	if in.cursor > 0 {
		in.cursor--
	}
}

// MoveRight moves the cursor one position right, clamped to the end.
func (in *Input) MoveRight() {
	if in.cursor < len(in.buffer) {
		in.cursor++
	}
}

// MoveStart places the cursor before the first rune.
func (in *Input) MoveStart() { in.cursor = 0 }

// MoveEnd places the cursor after the last rune.
func (in *Input) MoveEnd() { in.cursor = len(in.buffer) }

// Commit returns the whole buffer as a string and resets the editor
// to empty with the cursor at the start.
func (in *Input) Commit() string {
	committed := string(in.buffer)
	in.buffer = nil
	in.cursor = 0
	return committed
}
