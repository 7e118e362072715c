// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal drives the "live typing" effect for prose replies.
//
// A Scheduler appends one character (grapheme cluster) of a reply to a Sink
// per tick and asks the sink to scroll after each one. Every call to Reveal
// gets a fresh ticker and a Handle that can cancel it. Starting a new reveal
// on the same Scheduler supersedes the unfinished one: the old reply is
// flushed to its full text before the new one emits its first character, so
// two replies never interleave.
//
// # Key Types
//
//   - Sink: Destination for revealed chunks
//   - Scheduler: Timed, one-at-a-time revealer
//   - Instant: Revealer that writes the whole text at once
//   - Handle: Cancellation and completion for one reveal
//
// # Usage
//
//	s := reveal.NewScheduler(reveal.WithInterval(15 * time.Millisecond))
//	h := s.Reveal(sink, reply)
//	<-h.Done()
package reveal
