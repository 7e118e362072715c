// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/shauraya-mohan/chatbot/internal/model"
)

// JSONExporter exports transcripts as indented JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonTranscript struct {
	Title    string        `json:"title"`
	Model    string        `json:"model,omitempty"`
	Tokens   int           `json:"tokens,omitempty"`
	Exported time.Time     `json:"exported"`
	Messages []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID        string     `json:"id"`
	Role      model.Role `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Export converts a transcript to JSON.
func (e *JSONExporter) Export(t Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	out := jsonTranscript{
		Title:    t.title(),
		Model:    t.Model,
		Tokens:   t.Tokens,
		Exported: t.exportedAt(),
		Messages: make([]jsonMessage, len(t.Messages)),
	}
	for i, msg := range t.Messages {
		jm := jsonMessage{ID: msg.ID, Role: msg.Role, Content: msg.Content}
		if e.options.IncludeTimestamps {
			ts := msg.Timestamp
			jm.Timestamp = &ts
		}
		out.Messages[i] = jm
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string { return ".json" }

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string { return "application/json" }
