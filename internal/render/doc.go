// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render connects finished replies to a front end.
//
// The core never assumes a particular screen. A Sink can insert a whole entry
// at once (Append) or open an empty entry that a reveal fills in (Open);
// Pipeline picks between the two from the entry's render mode.
//
// # Key Types
//
//   - Entry: One message ready for display, with its parsed table
//   - Sink: What every front end implements
//   - Pipeline: Dispatches entries to a Sink through a reveal.Revealer
//   - Buffer: In-memory Sink used by tests and the HTTP transcript
package render
