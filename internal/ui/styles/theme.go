// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/shauraya-mohan/chatbot/internal/markup"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Bubbles never grow wider than this share of the window.
const bubbleWidthPercent = 80

// Theme holds all the styled components for the chat window.
type Theme struct {
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ApologyBubble   lipgloss.Style
	Timestamp       lipgloss.Style
	Typing          lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputDisabled  lipgloss.Style
	StatusBar      lipgloss.Style
	StatusBusy     lipgloss.Style
	StatusReady    lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	Error          lipgloss.Style

	Table markup.TableStyle
}

// NewTheme builds the theme named by name ("auto", "dark" or "light").
// noColor forces the ASCII color profile.
func NewTheme(name string, noColor bool) (*Theme, error) {
	t := &Theme{Name: strings.ToLower(strings.TrimSpace(name))}
	if t.Name == "" {
		t.Name = ThemeAuto
	}

	switch t.Name {
	case ThemeAuto:
		t.IsDark = lipgloss.HasDarkBackground()
	case ThemeDark:
		t.IsDark = true
	case ThemeLight:
		t.IsDark = false
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}

	t.ColorProfile = termenv.EnvColorProfile()
	if noColor {
		t.ColorProfile = termenv.Ascii
	}

	t.initStyles()
	return t, nil
}

func (t *Theme) initStyles() {
	lipgloss.SetHasDarkBackground(t.IsDark)
	lipgloss.SetColorProfile(t.ColorProfile)

	t.Header = lipgloss.NewStyle().
		Background(EmeraldDeep).
		Foreground(TextInverse).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(TextInverse)
	t.HeaderSubtitle = lipgloss.NewStyle().Foreground(TextInverse).Faint(true)

	bubble := lipgloss.NewStyle().Padding(0, 1).Foreground(TextPrimary)
	t.UserBubble = bubble.
		Background(UserBubbleBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Emerald)
	t.AssistantBubble = bubble.
		Background(AssistantBubbleBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	t.ApologyBubble = t.AssistantBubble.BorderForeground(Rose)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted).Faint(true)
	t.Typing = lipgloss.NewStyle().Foreground(Emerald).Italic(true)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(Border)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.InputDisabled = lipgloss.NewStyle().Foreground(TextMuted).Faint(true)

	t.StatusBar = lipgloss.NewStyle().Background(SurfaceDim).Foreground(TextMuted).Padding(0, 1)
	t.StatusBusy = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.StatusReady = lipgloss.NewStyle().Foreground(Emerald)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.Error = lipgloss.NewStyle().Foreground(Rose)

	t.Table = markup.TableStyle{
		Border: lipgloss.NewStyle().Foreground(Border),
		Header: lipgloss.NewStyle().Bold(true).Foreground(Emerald).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(TextPrimary).Padding(0, 1),
	}
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth returns the widest a message bubble may be for the current
// window width, frame included.
func (t *Theme) BubbleWidth() int {
	if t.Width <= 0 {
		return 60
	}
	w := t.Width * bubbleWidthPercent / 100
	return max(w, 20)
}
