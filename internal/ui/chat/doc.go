// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the terminal chat window.

The window is a Bubble Tea program: a scrolling transcript, a single-line
input and a status bar with the quick actions. Replies reach the window
through ProgramSink, a render.Sink that turns every pipeline event
(entry appended, entry opened, reveal chunk, typing on or off) into a
tea.Msg sent to the running program. Progressive replies therefore grow
inside the transcript one grapheme at a time while the input stays
disabled until the reply is complete.

# Key Types

  - Model: the Bubble Tea model for the window
  - ProgramSink: render.Sink, render.Indicator and reveal.Finisher backed by
    a running tea.Program
  - KeyMap: keyboard bindings, usable with bubbles/help

# Keys

	Enter      send the typed message
	F1..F9     send a quick action
	Esc        finish the current reveal at once
	PgUp/PgDn  scroll the transcript
	Ctrl+C     quit

# Usage

	sink := chat.NewProgramSink()
	pipeline := render.NewPipeline(sink, reveal.NewScheduler())
	sess := session.New(store, client, pipeline)

	m := chat.New(sess, theme)
	p := tea.NewProgram(m, tea.WithAltScreen())
	sink.Attach(p)
	_, err := p.Run()
*/
package chat
