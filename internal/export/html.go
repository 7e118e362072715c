// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shauraya-mohan/chatbot/internal/markup"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts as a standalone HTML page. Message
// bodies go through markup.ToHTML, so tables become <table> elements and
// everything else is sanitized.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a transcript to HTML.
func (e *HTMLExporter) Export(t Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "dark" {
		theme = "light"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(t.title())))
	sb.WriteString("<meta name=\"generator\" content=\"chatbot\">\n")
	sb.WriteString(fmt.Sprintf("<meta name=\"date\" content=\"%s\">\n", t.Messages[0].Timestamp.Format(time.RFC3339)))
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n<div class=\"container\">\n", theme))

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(t))
	}

	sb.WriteString("<main class=\"conversation\">\n")
	for _, msg := range t.Messages {
		role := string(msg.Role)
		sb.WriteString(fmt.Sprintf("<div class=\"message %s-message\">\n", html.EscapeString(role)))
		sb.WriteString(fmt.Sprintf("<div class=\"role\">%s", html.EscapeString(roleLabel(msg.Role))))
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf(" <span class=\"time\">%s</span>", msg.FormattedTime()))
		}
		sb.WriteString("</div>\n")
		sb.WriteString("<div class=\"content\">")
		sb.WriteString(markup.ToHTML(msg.Content))
		sb.WriteString("</div>\n</div>\n")
	}
	sb.WriteString("</main>\n")

	sb.WriteString(fmt.Sprintf("<footer class=\"footer\">Exported on %s</footer>\n", formatTimestamp(t.exportedAt())))
	sb.WriteString("</div>\n</body>\n</html>\n")
	return []byte(sb.String()), nil
}

func (e *HTMLExporter) renderHeader(t Transcript) string {
	var sb strings.Builder
	sb.WriteString("<header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n<div class=\"metadata\">", html.EscapeString(t.title())))
	if t.Model != "" {
		sb.WriteString(fmt.Sprintf("<span><strong>Model:</strong> %s</span> ", html.EscapeString(t.Model)))
	}
	sb.WriteString(fmt.Sprintf("<span><strong>Started:</strong> %s</span> ", formatTimestamp(t.Messages[0].Timestamp)))
	sb.WriteString(fmt.Sprintf("<span><strong>Messages:</strong> %d</span>", len(t.Messages)))
	if t.Tokens > 0 {
		sb.WriteString(fmt.Sprintf(" <span><strong>Tokens:</strong> %d</span>", t.Tokens))
	}
	sb.WriteString("</div>\n</header>\n")
	return sb.String()
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string { return ".html" }

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string { return "text/html; charset=utf-8" }

const css = `<style>
body { font-family: system-ui, sans-serif; margin: 0; line-height: 1.5; }
.light-theme { background: #ffffff; color: #1f2937; }
.dark-theme { background: #1e1e2e; color: #cdd6f4; }
.container { max-width: 760px; margin: 0 auto; padding: 24px; }
.header h1 { color: #10b981; margin-bottom: 4px; }
.metadata span { margin-right: 12px; font-size: 0.9em; opacity: 0.8; }
.message { border-radius: 12px; padding: 10px 14px; margin: 12px 0; }
.user-message { background: #d1fae5; color: #064e3b; margin-left: 20%; }
.assistant-message { background: #f3f4f6; color: #1f2937; margin-right: 20%; }
.dark-theme .assistant-message { background: #313244; color: #cdd6f4; }
.role { font-weight: 600; font-size: 0.85em; }
.time { font-weight: 400; opacity: 0.6; }
.content { white-space: pre-wrap; }
table { border-collapse: collapse; margin: 8px 0; white-space: normal; }
th, td { border: 1px solid #9ca3af; padding: 4px 8px; text-align: left; }
th { background: #10b981; color: #ffffff; }
.footer { margin-top: 24px; font-size: 0.8em; opacity: 0.6; }
</style>
`
