// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards pipeline events to a Bubble Tea program. Events
// raised before Attach are dropped.
type ProgramSink struct {
	mu     sync.RWMutex
	sender Sender
}

var (
	_ render.Sink      = (*ProgramSink)(nil)
	_ render.Indicator = (*ProgramSink)(nil)
)

// NewProgramSink creates a sink with no program attached.
func NewProgramSink() *ProgramSink {
	return &ProgramSink{}
}

// Attach sets the program that receives events.
func (s *ProgramSink) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *ProgramSink) send(msg tea.Msg) {
	s.mu.RLock()
	sender := s.sender
	s.mu.RUnlock()
	if sender != nil {
		sender.Send(msg)
	}
}

// Append implements render.Sink.
func (s *ProgramSink) Append(e render.Entry) {
	s.send(entryAppendedMsg{entry: e})
}

// Open implements render.Sink.
func (s *ProgramSink) Open(e render.Entry) reveal.Sink {
	s.send(entryOpenedMsg{entry: e})
	return &programTarget{sink: s, id: e.ID}
}

// ShowTyping implements render.Indicator.
func (s *ProgramSink) ShowTyping() { s.send(typingMsg{on: true}) }

// HideTyping implements render.Indicator.
func (s *ProgramSink) HideTyping() { s.send(typingMsg{on: false}) }

// programTarget is the reveal target for one opened entry.
type programTarget struct {
	sink *ProgramSink
	id   string
}

var _ reveal.Finisher = (*programTarget)(nil)

func (t *programTarget) Append(chunk string) {
	t.sink.send(revealChunkMsg{id: t.id, chunk: chunk})
}

func (t *programTarget) ScrollToLatest() {
	t.sink.send(scrollMsg{})
}

func (t *programTarget) Finish() {
	t.sink.send(revealFinishedMsg{id: t.id})
}
