// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauraya-mohan/chatbot/internal/markup"
)

func TestNewTheme_Names(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantDark bool
	}{
		{"dark", ThemeDark, true},
		{"LIGHT", ThemeLight, false},
		{" dark ", ThemeDark, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := NewTheme(tt.name, true)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, theme.Name)
			assert.Equal(t, tt.wantDark, theme.IsDark)
		})
	}
}

func TestNewTheme_EmptyIsAuto(t *testing.T) {
	theme, err := NewTheme("", true)
	require.NoError(t, err)
	assert.Equal(t, ThemeAuto, theme.Name)
}

func TestNewTheme_Unknown(t *testing.T) {
	_, err := NewTheme("neon", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon")
}

func TestNewTheme_NoColor(t *testing.T) {
	theme, err := NewTheme("dark", true)
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, theme.ColorProfile)

	out := theme.UserBubble.Render("hello")
	assert.Contains(t, out, "hello")
}

func TestBubbleWidth(t *testing.T) {
	theme, err := NewTheme("dark", true)
	require.NoError(t, err)

	assert.Equal(t, 60, theme.BubbleWidth(), "unknown width")

	theme.SetSize(100, 40)
	assert.Equal(t, 80, theme.BubbleWidth())

	theme.SetSize(10, 40)
	assert.Equal(t, 20, theme.BubbleWidth(), "floor")
}

func TestTableStyle(t *testing.T) {
	theme, err := NewTheme("light", true)
	require.NoError(t, err)

	doc := markup.ExtractTable("| Model | Zones |\n|---|---|\n| OtO Go | 4 |")
	out := markup.RenderTerminal(doc, 40, theme.Table)
	assert.Contains(t, out, "Model")
	assert.Contains(t, out, "OtO Go")
	assert.True(t, strings.Count(out, "\n") >= 3)
}
