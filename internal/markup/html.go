// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy strips scripts, event handlers and other active content while
// keeping the formatting elements (including tables) a reply may carry.
// bluemonday policies are safe for concurrent use once built.
var htmlPolicy = bluemonday.UGCPolicy()

// ToHTML converts a reply to widget markup: the table block, if any, becomes
// an HTML table and the surrounding text is kept in place. The HTML form
// normalizes line endings to \n; the Document from ExtractTable keeps them.
func ToHTML(text string) string {
	return RenderHTML(ExtractTable(text))
}

// RenderHTML renders a Document as sanitized HTML. A table without body
// rows renders with an empty tbody.
func RenderHTML(doc Document) string {
	if doc.Table == nil {
		return Sanitize(doc.Prefix)
	}

	var b strings.Builder
	b.WriteString(Sanitize(doc.Prefix))
	writeTableHTML(&b, doc.Table)
	b.WriteString(Sanitize(doc.Suffix))
	return b.String()
}

// Sanitize removes unsafe markup from model-produced text. \r\n comes back
// as \n.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return htmlPolicy.Sanitize(text)
}

func writeTableHTML(b *strings.Builder, t *Table) {
	b.WriteString("<table><thead><tr>")
	for _, cell := range t.Header {
		b.WriteString("<th>")
		b.WriteString(Sanitize(cell))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(Sanitize(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}
