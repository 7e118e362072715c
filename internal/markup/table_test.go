// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// EXTRACTION TESTS
// =============================================================================

func TestExtractTable_NoTable(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose", "Watering twice a week is ideal."},
		{"multiline prose", "Step 1. Open the app.\nStep 2. Tap pair.\n\nDone."},
		{"single pipe line", "Choose A | B depending on your yard."},
		{"single line with prose after", "Zone | Minutes\nwater early in the morning"},
		{"pipe lines separated by prose", "A | B\nsome words\nC | D"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := ExtractTable(tc.text)
			if doc.HasTable() {
				t.Fatalf("ExtractTable(%q) found a table: %+v", tc.text, doc.Table)
			}
			if doc.Prefix != tc.text || doc.Suffix != "" {
				t.Errorf("text not returned unchanged: prefix=%q suffix=%q", doc.Prefix, doc.Suffix)
			}
		})
	}
}

func TestExtractTable_HeaderSeparatorRow(t *testing.T) {
	doc := ExtractTable("| Model | Zones | Price |\n|---|---|---|\n| OtO One | 1 | $99 |")

	want := &Table{
		Header: []string{"Model", "Zones", "Price"},
		Rows:   [][]string{{"OtO One", "1", "$99"}},
	}
	if diff := cmp.Diff(want, doc.Table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if doc.Prefix != "" || doc.Suffix != "" {
		t.Errorf("prefix=%q suffix=%q, want both empty", doc.Prefix, doc.Suffix)
	}
}

func TestExtractTable_PreservesSurroundingText(t *testing.T) {
	text := "Here is the comparison:\n\n  A | B\n  --- | ---\n  1 | 2  \n\nLet me know if you need more."

	doc := ExtractTable(text)
	if !doc.HasTable() {
		t.Fatal("expected a table")
	}
	if doc.Prefix != "Here is the comparison:\n\n  " {
		t.Errorf("Prefix = %q", doc.Prefix)
	}
	if doc.Suffix != "  \n\nLet me know if you need more." {
		t.Errorf("Suffix = %q", doc.Suffix)
	}
	if diff := cmp.Diff([][]string{{"1", "2"}}, doc.Table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTable_BlankLinesInsideBlock(t *testing.T) {
	doc := ExtractTable("A | B\n\n--- | ---\n\n1 | 2\n\n3 | 4\nThat's all.")

	want := &Table{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}
	if diff := cmp.Diff(want, doc.Table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if doc.Suffix != "\nThat's all." {
		t.Errorf("Suffix = %q", doc.Suffix)
	}
}

func TestExtractTable_OnlyFirstBlock(t *testing.T) {
	doc := ExtractTable("A | B\n1 | 2\nbetween\nC | D\n3 | 4")

	want := &Table{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}}
	if diff := cmp.Diff(want, doc.Table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
	if doc.Suffix != "\nbetween\nC | D\n3 | 4" {
		t.Errorf("Suffix = %q", doc.Suffix)
	}
}

func TestExtractTable_RaggedRowsAndEmptyCells(t *testing.T) {
	doc := ExtractTable("| Feature | One | Pro |\n|---|---|---|\n| Zones | 1 | |\n| Weather skip | yes | yes | extra |")

	want := &Table{
		Header: []string{"Feature", "One", "Pro"},
		Rows: [][]string{
			{"Zones", "1"},
			{"Weather skip", "yes", "yes", "extra"},
		},
	}
	if diff := cmp.Diff(want, doc.Table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTable_SeparatorOnlyBlockIsPlainText(t *testing.T) {
	text := "|---|---|\n| | |"
	doc := ExtractTable(text)
	if doc.HasTable() {
		t.Fatalf("separator-only block should be plain text, got %+v", doc.Table)
	}
	if doc.Prefix != text {
		t.Errorf("Prefix = %q", doc.Prefix)
	}
}

func TestExtractTable_HeaderWithoutBody(t *testing.T) {
	doc := ExtractTable("Name | Price\n--- | ---")
	if !doc.HasTable() {
		t.Fatal("header plus separator is two collected lines and should parse")
	}
	if len(doc.Table.Rows) != 0 {
		t.Errorf("Rows = %v, want none", doc.Table.Rows)
	}
}

// A repeated row must not move the end of the block back to its first
// occurrence.
func TestExtractTable_DuplicateRowsSpliceByPosition(t *testing.T) {
	text := "A | B\n--- | ---\n1 | 2\n3 | 4\n1 | 2\nafter"

	doc := ExtractTable(text)
	if doc.Prefix != "" {
		t.Errorf("Prefix = %q, want empty", doc.Prefix)
	}
	if doc.Suffix != "\nafter" {
		t.Errorf("Suffix = %q, want %q", doc.Suffix, "\nafter")
	}
	if len(doc.Table.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3", len(doc.Table.Rows))
	}
}

// The first table line also appearing inside earlier prose must not pull the
// splice point into the prose.
func TestExtractTable_HeaderTextRepeatedInProse(t *testing.T) {
	text := "Compare A with B below.\nA | B\n1 | 2"

	doc := ExtractTable(text)
	if doc.Prefix != "Compare A with B below.\n" {
		t.Errorf("Prefix = %q", doc.Prefix)
	}
	if doc.Suffix != "" {
		t.Errorf("Suffix = %q", doc.Suffix)
	}
}

func TestExtractTable_CRLF(t *testing.T) {
	doc := ExtractTable("Intro\r\nA | B\r\n---|---\r\n1 | 2\r\nOutro")
	if !doc.HasTable() {
		t.Fatal("expected a table")
	}
	if doc.Prefix != "Intro\r\n" {
		t.Errorf("Prefix = %q", doc.Prefix)
	}
	if doc.Suffix != "\r\nOutro" {
		t.Errorf("Suffix = %q", doc.Suffix)
	}
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|---|---|", true},
		{"--- | ---", true},
		{"| - | - |", true},
		{"|:---|---:|", false},
		{"A | B", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if got := IsSeparatorRow(tc.line); got != tc.want {
				t.Errorf("IsSeparatorRow(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"| a | b |", []string{"a", "b"}},
		{"a|b|c", []string{"a", "b", "c"}},
		{"| a |  | c |", []string{"a", "c"}},
		{"|   |", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, SplitCells(tc.line)); diff != "" {
				t.Errorf("SplitCells(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}
