// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML_Table(t *testing.T) {
	got := ToHTML("Here:\nA | B\n--- | ---\n1 | 2\nBye")

	want := "Here:\n<table><thead><tr><th>A</th><th>B</th></tr></thead>" +
		"<tbody><tr><td>1</td><td>2</td></tr></tbody></table>\nBye"
	assert.Equal(t, want, got)
}

func TestToHTML_NoTableKeepsText(t *testing.T) {
	assert.Equal(t, "Watering twice a week is ideal.", ToHTML("Watering twice a week is ideal."))
}

func TestToHTML_SeparatorNeverRendered(t *testing.T) {
	got := ToHTML("| A | B |\n|---|---|\n| 1 | 2 |")
	assert.NotContains(t, got, "---")
	assert.Equal(t, 1, strings.Count(got, "<thead>"))
}

func TestToHTML_HeaderOnlyTable(t *testing.T) {
	got := ToHTML("  | a | b |  \n  |---|---|  \n")
	assert.Contains(t, got, "<thead><tr><th>a</th><th>b</th></tr></thead><tbody></tbody></table>")
	assert.NotContains(t, got, "---")
}

func TestToHTML_NormalizesLineEndings(t *testing.T) {
	text := "Intro\r\nA | B\r\n---|---\r\n1 | 2\r\nafter"

	doc := ExtractTable(text)
	assert.Equal(t, "\r\nafter", doc.Suffix)

	got := ToHTML(text)
	assert.True(t, strings.HasSuffix(got, "</table>\nafter"), got)
	assert.NotContains(t, got, "\r")
}

func TestToHTML_StripsScripts(t *testing.T) {
	got := ToHTML("Hi <script>alert(1)</script>\nA | B\n<img src=x onerror=alert(1)> | 2")

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "onerror")
	assert.Contains(t, got, "<th>A</th>")
}

func TestToHTML_KeepsModelHTMLTable(t *testing.T) {
	got := ToHTML("<table><tr><td>OtO One</td></tr></table>")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>OtO One</td>")
}

func TestRenderTerminal(t *testing.T) {
	doc := ExtractTable("Specs:\nModel | Zones\n--- | ---\nOtO One | 1\nOtO Pro\nEnjoy!")

	out := RenderTerminal(doc, 0, DefaultTableStyle())
	assert.True(t, strings.HasPrefix(out, "Specs:\n"))
	assert.True(t, strings.HasSuffix(out, "Enjoy!"))
	assert.Contains(t, out, "Model")
	assert.Contains(t, out, "OtO One")
	assert.NotContains(t, out, "---")
}

func TestRenderTerminal_NoTable(t *testing.T) {
	doc := ExtractTable("plain")
	assert.Equal(t, "plain", RenderTerminal(doc, 40, DefaultTableStyle()))
}

func TestTableString_RaggedRows(t *testing.T) {
	tbl := &Table{Header: []string{"A"}, Rows: [][]string{{"1", "2", "3"}}}
	out := TableString(tbl, 0, DefaultTableStyle())

	for _, want := range []string{"A", "1", "2", "3"} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, tbl.Header, 1, "rendering must not pad the parsed table")
}
