// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/util"
)

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("transcript has no messages")

// ErrUnknownFormat is returned by ForFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exported view of a conversation.
type Transcript struct {
	Title    string
	Model    string
	Tokens   int
	Messages []model.Message
	// ExportedAt defaults to the time of export.
	ExportedAt time.Time
}

func (t Transcript) validate() error {
	if len(t.Messages) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

func (t Transcript) title() string {
	if t.Title == "" {
		return "OtO Assistant conversation"
	}
	return t.Title
}

func (t Transcript) exportedAt() time.Time {
	if t.ExportedAt.IsZero() {
		return time.Now()
	}
	return t.ExportedAt
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a transcript in one format.
type Exporter interface {
	// Export converts a transcript to the target format.
	Export(t Transcript) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type for the format.
	MimeType() string
}

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds the title block (model, dates, message count).
	IncludeMetadata bool

	// IncludeTimestamps adds the time to every message.
	IncludeTimestamps bool

	// Theme for HTML export ("light" or "dark").
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             "light",
	}
}

// Formats lists the names ForFormat accepts.
func Formats() []string {
	return []string{"markdown", "html", "json"}
}

// ForFormat returns the exporter for name ("markdown" or "md", "html",
// "json").
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "html":
		return NewHTMLExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
}

// WriteFile exports t into dir and returns the file path. The file is
// written atomically and readable only by its owner.
func WriteFile(t Transcript, exporter Exporter, dir string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	filename := fmt.Sprintf("transcript_%s%s", t.exportedAt().Format("20060102_150405"), exporter.FileExtension())
	path := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func formatTimestamp(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}

func roleLabel(r model.Role) string {
	if r == model.RoleAssistant {
		return "OtO Assistant"
	}
	return r.DisplayName()
}
