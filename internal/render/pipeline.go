// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"time"

	"github.com/shauraya-mohan/chatbot/internal/markup"
	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/router"
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is a message prepared for display.
type Entry struct {
	ID   string
	Role model.Role
	Text string
	Doc  markup.Document
	Mode router.RenderMode
	At   time.Time
}

// NewEntry prepares msg for display in the given mode. Tables are parsed for
// every entry, user messages included.
func NewEntry(msg model.Message, mode router.RenderMode) Entry {
	return Entry{
		ID:   msg.ID,
		Role: msg.Role,
		Text: msg.Content,
		Doc:  markup.ExtractTable(msg.Content),
		Mode: mode,
		At:   msg.Timestamp,
	}
}

// Time returns the display timestamp, e.g. "09:41".
func (e Entry) Time() string {
	return e.At.Format("15:04")
}

// HTML returns the entry as sanitized widget markup.
func (e Entry) HTML() string {
	return markup.RenderHTML(e.Doc)
}

// =============================================================================
// SINK
// =============================================================================

// Sink is the only capability the core needs from a front end.
type Sink interface {
	// Append inserts a complete entry and scrolls it into view.
	Append(e Entry)
	// Open inserts an empty entry and returns the target that a reveal
	// writes the text into.
	Open(e Entry) reveal.Sink
}

// Indicator is implemented by sinks that show a "typing" placeholder while
// a completion is in flight.
type Indicator interface {
	ShowTyping()
	HideTyping()
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline routes entries to a sink.
type Pipeline struct {
	sink     Sink
	revealer reveal.Revealer
}

// NewPipeline creates a pipeline. A nil revealer means reveal.Instant.
func NewPipeline(sink Sink, revealer reveal.Revealer) *Pipeline {
	if revealer == nil {
		revealer = reveal.Instant{}
	}
	return &Pipeline{sink: sink, revealer: revealer}
}

// Dispatch shows e. Immediate entries are appended whole and nil is
// returned; progressive entries are opened and revealed, and the reveal's
// handle is returned.
func (p *Pipeline) Dispatch(e Entry) *reveal.Handle {
	if e.Mode.IsImmediate() {
		p.sink.Append(e)
		return nil
	}
	target := p.sink.Open(e)
	return p.revealer.Reveal(target, e.Text)
}

// ShowTyping turns on the sink's typing indicator, if it has one.
func (p *Pipeline) ShowTyping() {
	if ind, ok := p.sink.(Indicator); ok {
		ind.ShowTyping()
	}
}

// HideTyping turns off the sink's typing indicator, if it has one.
func (p *Pipeline) HideTyping() {
	if ind, ok := p.sink.(Indicator); ok {
		ind.HideTyping()
	}
}
