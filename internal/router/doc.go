// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides how a reply is rendered.
//
// Tables must be inserted atomically because a progressive reveal would show
// half-built table markup. Prose is revealed progressively to simulate typing.
//
// # Key Types
//
//   - RenderMode: Immediate or Progressive
//
// # Usage
//
//	if router.IsComparisonRequest(userMsg) {
//	    // ask the model for a table
//	}
//	switch router.Classify(reply, userMsg) {
//	case router.Immediate:
//	    // insert the whole reply at once
//	case router.Progressive:
//	    // reveal one character per tick
//	}
package router
