// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/router"
)

func TestNewEntry_ParsesTable(t *testing.T) {
	msg := model.NewMessage(model.RoleAssistant, "Here:\nA | B\n--- | ---\n1 | 2")
	e := NewEntry(msg, router.Immediate)

	require.True(t, e.Doc.HasTable())
	assert.Equal(t, []string{"A", "B"}, e.Doc.Table.Header)
	assert.Equal(t, msg.ID, e.ID)
	assert.Equal(t, msg.FormattedTime(), e.Time())
	assert.Contains(t, e.HTML(), "<table>")
}

func TestPipeline_ImmediateAppendsWhole(t *testing.T) {
	buf := NewBuffer()
	p := NewPipeline(buf, reveal.NewScheduler(reveal.WithInterval(time.Hour)))

	h := p.Dispatch(NewEntry(model.NewMessage(model.RoleAssistant, "A | B\n--- | ---\n1 | 2"), router.Immediate))

	assert.Nil(t, h)
	assert.Equal(t, []string{"A | B\n--- | ---\n1 | 2"}, buf.Texts())
	assert.True(t, buf.Finished(0))
}

func TestPipeline_ProgressiveReveals(t *testing.T) {
	buf := NewBuffer()
	p := NewPipeline(buf, reveal.NewScheduler(reveal.WithInterval(time.Millisecond)))

	h := p.Dispatch(NewEntry(model.NewMessage(model.RoleAssistant, "Water early."), router.Progressive))
	require.NotNil(t, h)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx))

	assert.Equal(t, []string{"Water early."}, buf.Texts())
	assert.True(t, buf.Finished(0))
	// one scroll for opening plus one per character
	assert.Equal(t, 1+len("Water early."), buf.Scrolls())
}

func TestPipeline_NilRevealerIsInstant(t *testing.T) {
	buf := NewBuffer()
	p := NewPipeline(buf, nil)

	h := p.Dispatch(NewEntry(model.NewMessage(model.RoleAssistant, "hi"), router.Progressive))
	require.NotNil(t, h)
	assert.True(t, h.Completed())
	assert.Equal(t, []string{"hi"}, buf.Texts())
}

func TestPipeline_TypingIndicator(t *testing.T) {
	buf := NewBuffer()
	p := NewPipeline(buf, nil)

	p.ShowTyping()
	assert.True(t, buf.Typing())
	p.HideTyping()
	assert.False(t, buf.Typing())

	// sinks without an indicator are fine
	NewPipeline(Discard{}, nil).ShowTyping()
}
