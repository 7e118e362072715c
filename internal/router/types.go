// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
	"strings"
)

// ============================================================================
// RENDER MODE TYPE
// ============================================================================

// RenderMode is how a reply reaches the screen. It is derived per reply and
// never stored in the conversation.
type RenderMode int

const (
	// Progressive reveals the reply one character per tick.
	Progressive RenderMode = iota
	// Immediate inserts the reply in one step.
	Immediate
)

// String returns the lowercase name used in logs, metrics and JSON.
func (m RenderMode) String() string {
	switch m {
	case Progressive:
		return "progressive"
	case Immediate:
		return "immediate"
	default:
		return fmt.Sprintf("RenderMode(%d)", m)
	}
}

// IsImmediate returns true for Immediate.
func (m RenderMode) IsImmediate() bool {
	return m == Immediate
}

// MarshalText implements encoding.TextMarshaler.
func (m RenderMode) MarshalText() ([]byte, error) {
	switch m {
	case Progressive, Immediate:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown render mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RenderMode) UnmarshalText(text []byte) error {
	mode, err := ParseRenderMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseRenderMode converts a name back to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "progressive":
		return Progressive, nil
	case "immediate":
		return Immediate, nil
	default:
		return Progressive, fmt.Errorf("unknown render mode %q", s)
	}
}
