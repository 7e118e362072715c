// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/session"
)

// =============================================================================
// PIPELINE MESSAGES
// =============================================================================

// entryAppendedMsg carries a complete entry.
type entryAppendedMsg struct {
	entry render.Entry
}

// entryOpenedMsg carries an empty entry that reveal chunks will fill.
type entryOpenedMsg struct {
	entry render.Entry
}

// revealChunkMsg is one grapheme cluster for an opened entry.
type revealChunkMsg struct {
	id    string
	chunk string
}

// scrollMsg asks the transcript to follow the newest content.
type scrollMsg struct{}

// revealFinishedMsg marks an opened entry as fully written.
type revealFinishedMsg struct {
	id string
}

// typingMsg turns the typing indicator on or off.
type typingMsg struct {
	on bool
}

// =============================================================================
// COMMAND RESULTS
// =============================================================================

// replyMsg is the result of a submission.
type replyMsg struct {
	reply session.Reply
	err   error
}
