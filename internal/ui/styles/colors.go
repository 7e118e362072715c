// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Emerald - OtO brand color, user bubbles, focused input
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}

// EmeraldDeep - Darker emerald for the header bar
var EmeraldDeep = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#064E3B"}

// Teal - Secondary accent for quick actions
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Apology replies and errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Busy and loading states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header and status bars
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Border - Subtle separators and table borders
var Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main readable text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - Timestamps, hints, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9399B2"}

// TextInverse - Text on brand-colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// UserBubbleBg - Background for the visitor's own messages
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#064E3B"}

// AssistantBubbleBg - Background for assistant replies
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#313244"}
