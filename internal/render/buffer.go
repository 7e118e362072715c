// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"sync"

	"github.com/shauraya-mohan/chatbot/internal/reveal"
)

// Buffer is an in-memory Sink. Progressive entries grow as their reveal
// appends to them.
type Buffer struct {
	mu      sync.Mutex
	entries []*bufferedEntry
	typing  bool
	scrolls int
}

type bufferedEntry struct {
	entry    Entry
	text     strings.Builder
	finished bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append implements Sink.
func (b *Buffer) Append(e Entry) {
	be := &bufferedEntry{entry: e, finished: true}
	be.text.WriteString(e.Text)

	b.mu.Lock()
	b.entries = append(b.entries, be)
	b.scrolls++
	b.mu.Unlock()
}

// Open implements Sink.
func (b *Buffer) Open(e Entry) reveal.Sink {
	be := &bufferedEntry{entry: e}

	b.mu.Lock()
	b.entries = append(b.entries, be)
	b.scrolls++
	b.mu.Unlock()

	return &bufferTarget{buf: b, entry: be}
}

// ShowTyping implements Indicator.
func (b *Buffer) ShowTyping() {
	b.mu.Lock()
	b.typing = true
	b.mu.Unlock()
}

// HideTyping implements Indicator.
func (b *Buffer) HideTyping() {
	b.mu.Lock()
	b.typing = false
	b.mu.Unlock()
}

// Typing reports whether the typing indicator is showing.
func (b *Buffer) Typing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.typing
}

// Len returns the number of entries shown.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Texts returns the currently visible text of every entry.
func (b *Buffer) Texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.entries))
	for i, be := range b.entries {
		out[i] = be.text.String()
	}
	return out
}

// Entries returns a copy of the entries as dispatched.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.entries))
	for i, be := range b.entries {
		out[i] = be.entry
	}
	return out
}

// Finished reports whether entry i has its full text.
func (b *Buffer) Finished(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return i >= 0 && i < len(b.entries) && b.entries[i].finished
}

// Scrolls returns how many scroll-to-latest requests were made.
func (b *Buffer) Scrolls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scrolls
}

type bufferTarget struct {
	buf   *Buffer
	entry *bufferedEntry
}

func (t *bufferTarget) Append(chunk string) {
	t.buf.mu.Lock()
	t.entry.text.WriteString(chunk)
	t.buf.mu.Unlock()
}

func (t *bufferTarget) ScrollToLatest() {
	t.buf.mu.Lock()
	t.buf.scrolls++
	t.buf.mu.Unlock()
}

func (t *bufferTarget) Finish() {
	t.buf.mu.Lock()
	t.entry.finished = true
	t.buf.mu.Unlock()
}

// Discard is a Sink that drops everything.
type Discard struct{}

// Append implements Sink.
func (Discard) Append(Entry) {}

// Open implements Sink.
func (Discard) Open(Entry) reveal.Sink { return discardTarget{} }

type discardTarget struct{}

func (discardTarget) Append(string)   {}
func (discardTarget) ScrollToLatest() {}
