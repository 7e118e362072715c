// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

// TableStyle controls how tables are drawn in a terminal.
type TableStyle struct {
	Border lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
}

// DefaultTableStyle returns a bordered style with a bold header row.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// RenderTerminal renders a Document for a terminal. The table is drawn with
// box borders; width <= 0 lets the table size itself.
func RenderTerminal(doc Document, width int, style TableStyle) string {
	if doc.Table == nil {
		return doc.Prefix
	}

	var b strings.Builder
	b.WriteString(doc.Prefix)
	b.WriteString(TableString(doc.Table, width, style))
	b.WriteString(doc.Suffix)
	return b.String()
}

// TableString draws a single table.
//
// The grid needs a rectangular shape, so short rows are displayed with blank
// trailing cells. The parsed Table itself is never padded.
func TableString(t *Table, width int, style TableStyle) string {
	columns := len(t.Header)
	for _, row := range t.Rows {
		columns = max(columns, len(row))
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Border).
		Headers(fill(t.Header, columns)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Header
			}
			return style.Cell
		})
	for _, row := range t.Rows {
		tbl.Row(fill(row, columns)...)
	}
	if width > 0 {
		tbl.Width(width)
	}
	return tbl.String()
}

func fill(cells []string, n int) []string {
	if len(cells) >= n {
		return cells
	}
	out := make([]string, n)
	copy(out, cells)
	return out
}
