// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/reference"
	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/router"
	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// collector stands in for a running tea.Program.
type collector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collector) Send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) drain() []tea.Msg {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.msgs
	c.msgs = nil
	return out
}

type recordingCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
}

func (r *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	return r.reply, nil
}

func loadedStore(t *testing.T) *reference.Store {
	t.Helper()
	store := reference.NewStore(zap.NewNop())
	loader := &reference.FileLoader{
		CompanyPath: "../../reference/testdata/company.json",
		CatalogPath: "../../reference/testdata/catalog.json",
	}
	require.NoError(t, store.Load(context.Background(), loader))
	return store
}

func newTestModel(t *testing.T, store *reference.Store, c session.Completer) (Model, *collector) {
	t.Helper()
	sink := NewProgramSink()
	col := &collector{}
	sink.Attach(col)

	sess := session.New(store, c, render.NewPipeline(sink, reveal.Instant{}))
	theme, err := styles.NewTheme("dark", true)
	require.NoError(t, err)

	m := New(sess, theme)
	m = feed(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, col
}

func feed(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	return feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// =============================================================================
// SINK TESTS
// =============================================================================

func TestProgramSink_ForwardsPipelineEvents(t *testing.T) {
	sink := NewProgramSink()
	col := &collector{}
	sink.Attach(col)
	pipeline := render.NewPipeline(sink, reveal.Instant{})

	immediate := render.NewEntry(model.NewMessage(model.RoleUser, "hi"), router.Immediate)
	progressive := render.NewEntry(model.NewMessage(model.RoleAssistant, "hello"), router.Progressive)

	pipeline.ShowTyping()
	pipeline.HideTyping()
	pipeline.Dispatch(immediate)
	pipeline.Dispatch(progressive)

	msgs := col.drain()
	require.Len(t, msgs, 7)
	assert.Equal(t, typingMsg{on: true}, msgs[0])
	assert.Equal(t, typingMsg{on: false}, msgs[1])
	assert.Equal(t, entryAppendedMsg{entry: immediate}, msgs[2])
	assert.Equal(t, entryOpenedMsg{entry: progressive}, msgs[3])
	assert.Equal(t, revealChunkMsg{id: progressive.ID, chunk: "hello"}, msgs[4])
	assert.Equal(t, scrollMsg{}, msgs[5])
	assert.Equal(t, revealFinishedMsg{id: progressive.ID}, msgs[6])
}

func TestProgramSink_DropsBeforeAttach(t *testing.T) {
	sink := NewProgramSink()
	assert.NotPanics(t, func() {
		sink.Append(render.Entry{ID: "x"})
		sink.Open(render.Entry{ID: "y"}).Append("z")
		sink.ShowTyping()
	})
}

// =============================================================================
// MODEL TESTS
// =============================================================================

func TestModel_GreetingShown(t *testing.T) {
	m, col := newTestModel(t, loadedStore(t), &recordingCompleter{})

	m.sess.Start()
	m = feed(m, col.drain()...)

	require.Len(t, m.Transcript(), 1)
	assert.Equal(t, session.DefaultMessages().Greeting, m.Transcript()[0])
	assert.Contains(t, m.View(), "OtO Assistant")
}

func TestModel_GreetingArrivesWithData(t *testing.T) {
	store := reference.NewStore(nil)
	m, col := newTestModel(t, store, &recordingCompleter{})

	m.sess.Start()
	m = feed(m, col.drain()...)
	assert.Empty(t, m.Transcript())

	store.Set(&reference.Data{Company: reference.Company{Name: "Acme Irrigation"}})
	m = feed(m, col.drain()...)

	require.Len(t, m.Transcript(), 1)
	assert.Contains(t, m.Transcript()[0], "Acme Irrigation assistant")
}

func TestModel_SubmitWhileLoading(t *testing.T) {
	completer := &recordingCompleter{reply: "unused"}
	m, col := newTestModel(t, reference.NewStore(nil), completer)

	m = typeText(m, "  How do I set a schedule?  ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Empty(t, m.input.Value(), "input is cleared on send")
	assert.Contains(t, m.View(), "waiting for the reply")

	result := cmd()
	m = feed(m, col.drain()...)
	m = feed(m, result)

	assert.False(t, m.Busy())
	assert.Equal(t, []string{"How do I set a schedule?", session.StillLoadingMessage}, m.Transcript())
	assert.Empty(t, completer.prompts)
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})

	m = typeText(m, "   ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).Busy())
}

func TestModel_BusyIgnoresInput(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})
	m.busy = true

	m = typeText(m, "more")
	assert.Empty(t, m.input.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Nil(t, cmd)
}

func TestModel_QuickAction(t *testing.T) {
	completer := &recordingCompleter{reply: "Open the app and tap Schedules."}
	m, col := newTestModel(t, loadedStore(t), completer)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = feed(m, cmd())
	m = feed(m, col.drain()...)

	actions := session.DefaultQuickActions()
	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], actions[0].Message)
	assert.Equal(t, []string{actions[0].Message, "Open the app and tap Schedules."}, m.Transcript())
}

func TestModel_QuickActionOutOfRange(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF9})
	assert.Nil(t, cmd, "only four quick actions are configured")
}

func TestModel_RevealGrowsEntry(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})
	e := render.NewEntry(model.NewMessage(model.RoleAssistant, "Check the valve."), router.Progressive)

	m = feed(m, entryOpenedMsg{entry: e})
	assert.Equal(t, []string{""}, m.Transcript())

	m = feed(m, revealChunkMsg{id: e.ID, chunk: "C"}, revealChunkMsg{id: e.ID, chunk: "h"})
	assert.Equal(t, []string{"Ch"}, m.Transcript())

	m = feed(m, revealFinishedMsg{id: e.ID})
	assert.Equal(t, []string{"Check the valve."}, m.Transcript())
}

func TestModel_TableRendered(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})
	text := "Here you go:\n| Model | Zones |\n|---|---|\n| OtO Go | 4 |"
	e := render.NewEntry(model.NewMessage(model.RoleAssistant, text), router.Immediate)

	m = feed(m, entryAppendedMsg{entry: e})
	view := m.viewport.View()
	assert.Contains(t, view, "OtO Go")
	assert.NotContains(t, view, "|---|", "separator row is not shown raw")
}

func TestModel_TypingIndicator(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})

	next, cmd := m.Update(typingMsg{on: true})
	m = next.(Model)
	assert.True(t, m.Typing())
	assert.NotNil(t, cmd, "spinner starts ticking")
	assert.Contains(t, m.viewport.View(), "typing...")

	m = feed(m, typingMsg{on: false})
	assert.False(t, m.Typing())
	assert.NotContains(t, m.viewport.View(), "typing...")
}

func TestModel_EscSkipsReveal(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})

	sched := reveal.NewScheduler(reveal.WithInterval(time.Second))
	defer sched.Stop()
	h := sched.Reveal(render.NewBuffer().Open(render.Entry{ID: "a"}), "a long reply")

	m = feed(m, replyMsg{reply: session.Reply{Handle: h}})
	m = feed(m, tea.KeyMsg{Type: tea.KeyEsc})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx))
	assert.True(t, h.Completed())
}

func TestModel_ReplyErrorShownAsNotice(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})
	m.busy = true

	m = feed(m, replyMsg{err: session.ErrBusy})
	assert.False(t, m.Busy())
	assert.Contains(t, m.View(), "Still working on the previous reply.")
}

func TestModel_QuitCancelsInFlight(t *testing.T) {
	m, _ := newTestModel(t, reference.NewStore(nil), &recordingCompleter{})

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, m.cancelMgr.pending())
}

func TestQuickActionIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"f1", 0, true},
		{"f9", 8, true},
		{"f10", 0, false},
		{"f0", 0, false},
		{"enter", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := quickActionIndex(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
