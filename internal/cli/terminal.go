// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use for wrapping
	MinTerminalWidth = 40
)

// TerminalWidth returns the width of stdout, or DefaultTerminalWidth.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// =============================================================================
// COLOR
// =============================================================================

// colorProfile picks the profile for the line chat. NO_COLOR, the no_color
// setting or a non-terminal stdout all mean plain text.
func colorProfile(noColor bool) termenv.Profile {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsStdoutTTY() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// =============================================================================
// WRAPPING
// =============================================================================

// wrapText wraps text at word boundaries so no line is wider than width
// columns. Existing newlines are kept; a single word wider than the line is
// left whole.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if runewidth.StringWidth(line) <= width {
			b.WriteString(line)
			continue
		}

		col := 0
		for j, word := range strings.Fields(line) {
			w := runewidth.StringWidth(word)
			switch {
			case j == 0:
			case col+1+w > width:
				b.WriteByte('\n')
				col = 0
			default:
				b.WriteByte(' ')
				col++
			}
			b.WriteString(word)
			col += w
		}
	}
	return b.String()
}
