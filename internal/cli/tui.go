// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shauraya-mohan/chatbot/internal/ui/chat"
	"github.com/shauraya-mohan/chatbot/internal/ui/styles"
)

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen chat window",
		Long: `Open the full-screen chat window.

Keys: Enter sends, F1-F9 send a quick action, Esc shows the rest of a reply,
PgUp/PgDn scroll, Ctrl+C quits. Logs go to ~/.chatbot/chatbot.log unless
log.file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() || !IsStdoutTTY() {
				return usageError{err: errors.New("tui needs a terminal; use 'chatbot chat' for piped input")}
			}
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	theme, err := styles.NewTheme(cfg.UI.Theme, cfg.UI.NoColor)
	if err != nil {
		return err
	}

	sink := chat.NewProgramSink()
	a, err := newApp(ctx, cfg, appOptions{sink: sink, logFallback: defaultLogFile()})
	if err != nil {
		return err
	}
	defer a.Close()

	m := chat.New(a.session, theme, chat.WithTimestamps(cfg.UI.ShowTimestamps))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(p)

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
