// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts as Markdown with YAML front matter.
// Tables in replies are already Markdown and pass through unchanged.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// frontMatter is the YAML header of an exported file.
type frontMatter struct {
	Title     string `yaml:"title"`
	Model     string `yaml:"model,omitempty"`
	Started   string `yaml:"started"`
	Messages  int    `yaml:"messages"`
	Tokens    int    `yaml:"tokens,omitempty"`
	Exported  string `yaml:"exported"`
	Generator string `yaml:"generator"`
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		fm, err := yaml.Marshal(frontMatter{
			Title:     t.title(),
			Model:     t.Model,
			Started:   t.Messages[0].Timestamp.Format(time.RFC3339),
			Messages:  len(t.Messages),
			Tokens:    t.Tokens,
			Exported:  t.exportedAt().Format(time.RFC3339),
			Generator: "chatbot",
		})
		if err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(fm)
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(t.title())))

	for i, msg := range t.Messages {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", roleLabel(msg.Role), msg.FormattedTime()))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", roleLabel(msg.Role)))
		}
		sb.WriteString(strings.TrimRight(msg.Content, "\n"))
		sb.WriteString("\n\n")

		if i < len(t.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString(fmt.Sprintf("*Exported on %s*\n", formatTimestamp(t.exportedAt())))
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string { return "text/markdown; charset=utf-8" }

// escapeMarkdown escapes characters with meaning in a heading.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"#", `\#`,
	)
	return r.Replace(s)
}
