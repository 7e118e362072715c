// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shauraya-mohan/chatbot/internal/session"
)

// Update handles every message for the window.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// =========================================================================
	// PIPELINE EVENTS
	// =========================================================================

	case entryAppendedMsg:
		m.addEntry(msg.entry, false)
		m.refresh(true)
		return m, nil

	case entryOpenedMsg:
		m.addEntry(msg.entry, true)
		m.refresh(true)
		return m, nil

	case revealChunkMsg:
		if d := m.entryByID(msg.id); d != nil {
			d.text += msg.chunk
		}
		m.refresh(false)
		return m, nil

	case scrollMsg:
		m.refresh(true)
		return m, nil

	case revealFinishedMsg:
		if d := m.entryByID(msg.id); d != nil {
			d.revealing = false
			d.text = d.entry.Text
		}
		m.refresh(true)
		return m, nil

	case typingMsg:
		m.typing = msg.on
		m.refresh(true)
		if m.typing {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd

	case replyMsg:
		return m.handleReply(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelMgr.cancel()
		if m.reveal != nil {
			m.reveal.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Skip):
		if m.reveal != nil {
			m.reveal.Skip()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m, m.submit(func(ctx context.Context) (session.Reply, error) {
			return m.sess.Submit(ctx, text)
		})

	case key.Matches(msg, m.keys.QuickAction):
		i, ok := quickActionIndex(msg.String())
		if !ok || m.busy || i >= len(m.sess.QuickActions()) {
			return m, nil
		}
		return m, m.submit(func(ctx context.Context) (session.Reply, error) {
			return m.sess.SubmitQuickAction(ctx, i)
		})

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit marks the window busy and returns a command running fn on its own
// goroutine. The user entry, typing indicator and reply all arrive through
// the sink while fn runs.
func (m *Model) submit(fn func(ctx context.Context) (session.Reply, error)) tea.Cmd {
	m.busy = true
	m.notice = ""
	m.input.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	return func() tea.Msg {
		reply, err := fn(ctx)
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.cancelMgr.cancel()
	m.busy = false

	switch {
	case msg.err == nil:
		m.reveal = msg.reply.Handle
	case errors.Is(msg.err, session.ErrBusy):
		m.notice = "Still working on the previous reply."
	case errors.Is(msg.err, session.ErrEmptyMessage):
		m.notice = ""
	default:
		m.notice = msg.err.Error()
	}

	m.refresh(false)
	return m, m.input.Focus()
}
