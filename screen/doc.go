// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package screen renders the grel client interface onto a cell-
// addressed terminal.
//
// Three concerns live here. [Line] and [Scrollback] form the text
// layout engine: a Line stores one logical line of chat or notice text
// together with a wrapped rendering cached for exactly one pane width,
// recomputed lazily whenever the requested width changes. [Input] is
// the editable input line: a rune buffer with an insertion cursor.
// [Screen] is the layout manager: it derives pane geometry (main
// scrollback pane, roster side panel, status row, input row) from the
// terminal size, tracks per-pane dirty flags, and repaints only what
// changed.
//
// Painting the main pane walks logical lines newest to oldest and
// their wrapped fragments newest first, filling rows bottom-up until
// the pane is exhausted. The terminal capability is tcell; tests use
// tcell's simulation screen.
package screen
