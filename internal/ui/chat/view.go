// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shauraya-mohan/chatbot/internal/markup"
	"github.com/shauraya-mohan/chatbot/internal/model"
)

// View renders the window.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderQuickActions(),
		m.renderInput(),
		m.renderStatus(),
	)
}

// refresh re-renders the transcript into the viewport. follow scrolls to the
// newest content; otherwise the scroll position is kept unless it was
// already at the bottom.
func (m *Model) refresh(follow bool) {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if follow || atBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	var b strings.Builder
	for i, d := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderEntry(d))
	}
	if m.typing {
		b.WriteString("\n")
		b.WriteString(m.theme.Typing.Render(m.spinner.View() + " typing..."))
	}
	return b.String()
}

func (m Model) renderEntry(d *displayEntry) string {
	style := m.theme.AssistantBubble
	align := lipgloss.Left
	switch {
	case d.entry.Role == model.RoleUser:
		style = m.theme.UserBubble
		align = lipgloss.Right
	case !d.revealing && d.entry.Text == m.sess.Messages().Apology:
		style = m.theme.ApologyBubble
	}

	maxOuter := m.theme.BubbleWidth()
	inner := max(maxOuter-style.GetHorizontalFrameSize(), 1)

	var body string
	if d.revealing {
		body = d.text
	} else {
		body = markup.RenderTerminal(d.entry.Doc, inner, m.theme.Table)
	}
	body = strings.TrimRight(body, "\n")

	width := min(widestLine(body), inner) + style.GetHorizontalPadding()
	bubble := style.Width(width).Render(body)

	block := bubble
	if m.showTimestamps && !d.entry.At.IsZero() {
		stamp := m.theme.Timestamp.Render(d.entry.Time())
		block = lipgloss.JoinVertical(align, bubble, stamp)
	}
	return lipgloss.PlaceHorizontal(m.viewport.Width, align, block)
}

func widestLine(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return max(w, 1)
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("OtO Assistant")
	subtitle := m.theme.HeaderSubtitle.Render("  smart sprinkler help")
	return m.theme.Header.Width(m.width).Render(title + subtitle)
}

func (m Model) renderQuickActions() string {
	actions := m.sess.QuickActions()
	parts := make([]string, 0, len(actions))
	for i, a := range actions {
		parts = append(parts,
			m.theme.ShortcutKey.Render(fmt.Sprintf("F%d", i+1))+" "+m.theme.ShortcutDesc.Render(a.Label))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderInput() string {
	content := m.input.View()
	if m.busy {
		content = m.theme.InputDisabled.Render("  waiting for the reply...")
	}
	return m.theme.InputContainer.Width(m.width).Render(content)
}

func (m Model) renderStatus() string {
	var state string
	switch {
	case m.busy:
		state = m.theme.StatusBusy.Render("replying")
	case !m.sess.Ready():
		state = m.theme.StatusBusy.Render("loading OtO info")
	default:
		state = m.theme.StatusReady.Render("ready")
	}
	if m.notice != "" {
		state += "  " + m.theme.Error.Render(m.notice)
	}
	return m.theme.StatusBar.Width(m.width).Render(state + "  " + m.help.View(m.keys))
}
