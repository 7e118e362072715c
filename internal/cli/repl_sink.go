// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/shauraya-mohan/chatbot/internal/markup"
	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
)

const (
	brandColor   = "#10B981"
	apologyColor = "#FB7185"
	assistantTag = "OtO"
)

// lineSink prints assistant entries to a line-oriented terminal. The user's
// own entries are skipped since the terminal already echoed them.
type lineSink struct {
	mu          sync.Mutex
	out         *termenv.Output
	width       int
	interactive bool
	apology     string
	timestamps  bool
	typing      bool
}

var (
	_ render.Sink      = (*lineSink)(nil)
	_ render.Indicator = (*lineSink)(nil)
)

func newLineSink(out *termenv.Output, width int, interactive bool) *lineSink {
	return &lineSink{out: out, width: width, interactive: interactive}
}

func (s *lineSink) setApology(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apology = text
}

// Append implements render.Sink.
func (s *lineSink) Append(e render.Entry) {
	if e.Role == model.RoleUser {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearTyping()
	s.writeLabel(e)

	var b strings.Builder
	b.WriteString(wrapText(strings.TrimRight(e.Doc.Prefix, "\n"), s.width))
	if e.Doc.Table != nil {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(markup.TableString(e.Doc.Table, s.width, markup.DefaultTableStyle()))
		if suffix := strings.TrimSpace(e.Doc.Suffix); suffix != "" {
			b.WriteByte('\n')
			b.WriteString(wrapText(suffix, s.width))
		}
	}
	s.out.WriteString(b.String() + "\n\n")
}

// Open implements render.Sink.
func (s *lineSink) Open(e render.Entry) reveal.Sink {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearTyping()
	s.writeLabel(e)
	return &lineTarget{sink: s, breaks: breakPoints(e.Text, s.width)}
}

// ShowTyping implements render.Indicator.
func (s *lineSink) ShowTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.interactive {
		return
	}
	s.out.WriteString(s.out.String(assistantTag + " is typing...").Faint().String())
	s.typing = true
}

// HideTyping implements render.Indicator.
func (s *lineSink) HideTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearTyping()
}

// clearTyping erases the typing line. Callers hold mu.
func (s *lineSink) clearTyping() {
	if !s.typing {
		return
	}
	s.out.ClearLine()
	s.out.WriteString("\r")
	s.typing = false
}

func (s *lineSink) writeLabel(e render.Entry) {
	color := brandColor
	if e.Text == s.apology {
		color = apologyColor
	}
	label := s.out.String(assistantTag).Foreground(s.out.Color(color)).Bold().String()
	if s.timestamps && !e.At.IsZero() {
		label += " " + s.out.String(e.Time()).Faint().String()
	}
	s.out.WriteString(label + "\n")
}

// =============================================================================
// PROGRESSIVE TARGET
// =============================================================================

// lineTarget writes revealed graphemes, turning the spaces chosen by
// breakPoints into newlines so words are not split at the margin.
type lineTarget struct {
	sink   *lineSink
	breaks map[int]bool
	next   int
}

var _ reveal.Finisher = (*lineTarget)(nil)

func (t *lineTarget) Append(chunk string) {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()

	var b strings.Builder
	for _, g := range reveal.Graphemes(chunk) {
		if t.breaks[t.next] {
			b.WriteByte('\n')
		} else {
			b.WriteString(g)
		}
		t.next++
	}
	t.sink.out.WriteString(b.String())
}

// ScrollToLatest is a no-op; a terminal always shows the newest line.
func (t *lineTarget) ScrollToLatest() {}

func (t *lineTarget) Finish() {
	t.sink.mu.Lock()
	defer t.sink.mu.Unlock()
	t.sink.out.WriteString("\n\n")
}

// breakPoints returns the grapheme indexes of the spaces in text that must
// become line breaks for text to fit in width columns.
func breakPoints(text string, width int) map[int]bool {
	breaks := make(map[int]bool)
	if width <= 0 {
		return breaks
	}

	graphemes := reveal.Graphemes(text)
	col, lastSpace, sinceSpace := 0, -1, 0
	for i, g := range graphemes {
		if g == "\n" {
			col, lastSpace, sinceSpace = 0, -1, 0
			continue
		}
		w := runewidth.StringWidth(g)
		if g == " " {
			if col+w > width {
				breaks[i] = true
				col, lastSpace, sinceSpace = 0, -1, 0
				continue
			}
			lastSpace, sinceSpace = i, 0
			col += w
			continue
		}
		if col+w > width && lastSpace >= 0 {
			breaks[lastSpace] = true
			col, lastSpace = sinceSpace, -1
		}
		col += w
		sinceSpace += w
	}
	return breaks
}
