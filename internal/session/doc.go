// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs one chat session from submission to rendered reply.
//
// A Session owns the conversation, reads reference data from a
// reference.Store, asks a Completer for replies, and hands every message to a
// render.Pipeline. All front ends (HTTP, TUI, REPL) submit through
// Session.Submit, and so do quick actions.
//
// # Key Types
//
//   - Session: The submission entry point and owner of conversation state
//   - Completer: Anything that turns a prompt into reply text
//   - Reply: What a submission produced and how it was rendered
//   - QuickAction: A canned message offered by the front end
//   - Messages: Fixed greeting, loading and apology texts
//
// # Usage
//
//	sess := session.New(store, client, pipeline,
//	    session.WithLogger(logger),
//	    session.WithMetrics(metrics),
//	)
//	sess.Start()
//	reply, err := sess.Submit(ctx, "Which controller fits a 6 zone yard?")
//
// # Failure Handling
//
// Missing reference data and completion failures never surface as errors
// from Submit. They become fixed assistant replies that are appended to the
// history like any other turn. Submit only returns an error for input it
// refuses: empty text (ErrEmptyMessage) or a submission while another one is
// in flight (ErrBusy).
//
// # Greeting
//
// The greeting names the company from the loaded company document, so Start
// shows it once the data arrives. A greeting set through WithMessages is
// shown at once. If the load fails, ReleaseGreeting shows the stock text.
// Whatever happens first, the greeting is always message 0 of the history.
package session
