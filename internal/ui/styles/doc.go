// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the terminal chat window.

All colors use Lip Gloss AdaptiveColor so the same palette works on light
and dark terminals. The brand color is emerald.

# Key Types

  - Theme: every style used by the chat window, plus the table style handed
    to markup.RenderTerminal

# Usage

	theme, err := styles.NewTheme(cfg.UI.Theme, cfg.UI.NoColor)
	if err != nil {
	    return err
	}
	theme.SetSize(width, height)
	bubble := theme.UserBubble.MaxWidth(theme.BubbleWidth()).Render(text)
*/
package styles
