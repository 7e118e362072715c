// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt composes the system prompt sent with every completion request.
//
// The prompt embeds the full reference data and the full conversation history
// as indented JSON, followed by fixed behavioural and formatting rules. Build
// is pure: it reads its inputs and never mutates them.
//
// # Usage
//
//	text, err := prompt.Build(store.Get(), conv.Sequence(), userMsg)
//	if errors.Is(err, prompt.ErrNoReference) {
//	    // still loading; do not call the model
//	}
package prompt
