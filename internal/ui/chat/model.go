// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/ui/styles"
)

// MaxInputLength caps a single message typed into the window.
const MaxInputLength = 2000

// Rows used by everything except the transcript: header, quick actions,
// input (with its top border) and status bar.
const chromeHeight = 5

// =============================================================================
// MODEL
// =============================================================================

// displayEntry is an entry as shown in the transcript. Opened entries grow
// through text until the reveal finishes.
type displayEntry struct {
	entry     render.Entry
	text      string
	revealing bool
}

// Model is the Bubble Tea model for the chat window.
type Model struct {
	sess  *session.Session
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	entries []*displayEntry
	index   map[string]int

	typing bool
	busy   bool
	notice string

	// reveal is the handle of the latest progressive reply; Esc skips it.
	reveal *reveal.Handle

	cancelMgr *cancelManager

	showTimestamps bool
	width, height  int
	ready          bool
}

// Option configures a Model.
type Option func(*Model)

// WithTimestamps toggles the time shown under each bubble.
func WithTimestamps(on bool) Option {
	return func(m *Model) { m.showTimestamps = on }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// New creates the chat window for sess.
func New(sess *session.Session, theme *styles.Theme, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Ask about OtO sprinklers..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = MaxInputLength
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Typing

	m := Model{
		sess:           sess,
		theme:          theme,
		keys:           DefaultKeyMap(),
		viewport:       viewport.New(0, 0),
		input:          input,
		spinner:        spin,
		help:           help.New(),
		index:          make(map[string]int),
		cancelMgr:      newCancelManager(),
		showTimestamps: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the cursor blink and shows the greeting.
func (m Model) Init() tea.Cmd {
	sess := m.sess
	return tea.Batch(textinput.Blink, func() tea.Msg {
		sess.Start()
		return nil
	})
}

// Busy reports whether a submission is in flight.
func (m Model) Busy() bool { return m.busy }

// Typing reports whether the typing indicator is shown.
func (m Model) Typing() bool { return m.typing }

// Transcript returns the text of every entry, in order.
func (m Model) Transcript() []string {
	out := make([]string, len(m.entries))
	for i, d := range m.entries {
		out[i] = d.text
	}
	return out
}

// =============================================================================
// ENTRY BOOKKEEPING
// =============================================================================

func (m *Model) addEntry(e render.Entry, revealing bool) {
	d := &displayEntry{entry: e, revealing: revealing}
	if !revealing {
		d.text = e.Text
	}
	m.index[e.ID] = len(m.entries)
	m.entries = append(m.entries, d)
}

func (m *Model) entryByID(id string) *displayEntry {
	i, ok := m.index[id]
	if !ok {
		return nil
	}
	return m.entries[i]
}

// resize lays the window out for width x height.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
	m.help.Width = width
	m.ready = true
}
