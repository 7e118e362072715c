// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"regexp"
	"strings"
	"unicode"
)

// Delimiter separates table columns.
const Delimiter = "|"

// separatorPattern matches rows made only of pipes, dashes and whitespace.
var separatorPattern = regexp.MustCompile(`^[\s|\-]+$`)

// =============================================================================
// TYPES
// =============================================================================

// Table is a parsed pipe table. Rows may have a different number of cells
// than Header; nothing is padded or aligned.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Document is a reply split around its table.
// When Table is nil, Prefix holds the whole text and Suffix is empty.
type Document struct {
	Prefix string `json:"prefix"`
	Table  *Table `json:"table,omitempty"`
	Suffix string `json:"suffix"`
}

// HasTable reports whether a table was found.
func (d Document) HasTable() bool {
	return d.Table != nil
}

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractTable finds the first table block in text.
//
// A table line is a trimmed, non-empty line containing the delimiter. Lines are
// collected from the first table line on; blank lines inside the block are
// skipped and any other line ends it. Fewer than two collected lines, or a block
// in which no row yields a cell, leaves the text untouched.
func ExtractTable(text string) Document {
	lines := strings.Split(text, "\n")

	first, last := -1, -1
	var collected []string
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line != "" && strings.Contains(line, Delimiter) {
			if first < 0 {
				first = i
			}
			last = i
			collected = append(collected, line)
		} else if first >= 0 && line != "" {
			break
		}
	}

	if len(collected) < 2 {
		return Document{Prefix: text}
	}

	table := parseRows(collected)
	if table == nil {
		return Document{Prefix: text}
	}

	begin, end := blockBounds(lines, first, last)
	return Document{
		Prefix: text[:begin],
		Table:  table,
		Suffix: text[end:],
	}
}

// IsSeparatorRow reports whether line is a header/body separator such as "|---|---|".
func IsSeparatorRow(line string) bool {
	return separatorPattern.MatchString(line)
}

// SplitCells splits a table line into trimmed cells, dropping empty ones.
func SplitCells(line string) []string {
	parts := strings.Split(line, Delimiter)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if cell := strings.TrimSpace(p); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// parseRows turns collected lines into a Table. It returns nil when no line
// yields any cells.
func parseRows(collected []string) *Table {
	var table *Table
	for _, line := range collected {
		if IsSeparatorRow(line) {
			continue
		}
		cells := SplitCells(line)
		if len(cells) == 0 {
			continue
		}
		if table == nil {
			table = &Table{Header: cells, Rows: [][]string{}}
			continue
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// blockBounds converts the first and last collected line indexes into byte
// offsets in the original text. Leading whitespace of the first line and
// trailing whitespace of the last line stay outside the block.
func blockBounds(lines []string, first, last int) (begin, end int) {
	offset := 0
	for i := 0; i <= last; i++ {
		line := lines[i]
		if i == first {
			begin = offset + len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		}
		if i == last {
			end = offset + len(strings.TrimRightFunc(line, unicode.IsSpace))
		}
		offset += len(line) + 1
	}
	return begin, end
}
