// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultGreeting is the assistant message every conversation starts with.
const DefaultGreeting = "Hi! I'm your OtO smart sprinkler assistant. I can help you with setup, troubleshooting, product info, and more. How can I help you today?"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered message log for one chat session.
//
// It only grows: there is no API to delete or reorder messages, and
// Sequence hands out copies so callers cannot rewrite history.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates a conversation. A non-empty greeting is seeded as
// the assistant message at index 0.
func NewConversation(greeting string) *Conversation {
	c := &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
		messages:  make([]Message, 0, 8),
	}
	if greeting != "" {
		c.messages = append(c.messages, NewMessage(RoleAssistant, greeting))
	}
	return c
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds one message at the end of the log and returns it.
func (c *Conversation) Append(role Role, content string) Message {
	msg := NewMessage(role, content)
	c.Record(msg)
	return msg
}

// Record adds a message built earlier with NewMessage, e.g. one that was
// rendered before it was stored.
func (c *Conversation) Record(msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

// Sequence returns the full ordered history.
// The returned slice is a copy.
func (c *Conversation) Sequence() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// =============================================================================
// TOKEN ESTIMATION
// =============================================================================

// EstimateTokens returns a rough token count for the whole history
// (about 4 characters per token). The full history is replayed into every
// prompt, so this tracks how large prompts are getting.
func (c *Conversation) EstimateTokens() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, msg := range c.messages {
		total += len(msg.Content) / 4
	}
	return total
}
