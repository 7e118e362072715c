// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is the append-only log of role-tagged messages for one chat
// session. It is the single source of truth replayed into every prompt, so it
// never reorders or removes entries.
//
// # Key Types
//
//   - Conversation: Ordered, append-only message log seeded with a greeting
//   - Message: Immutable message with ID, role, content and timestamp
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
//	conv := model.NewConversation(model.DefaultGreeting)
//	conv.Append(model.RoleUser, "How do I pair my controller?")
//	for _, msg := range conv.Sequence() {
//	    fmt.Printf("%s: %s\n", msg.Role.DisplayName(), msg.Content)
//	}
package model
