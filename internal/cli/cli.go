// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shauraya-mohan/chatbot/internal/config"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath   string
	logLevel     string
	companyPath  string
	productsPath string
}

// loadConfig loads the config file and applies flag overrides on top of it.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.companyPath != "" {
		cfg.Reference.CompanyPath = o.companyPath
	}
	if o.productsPath != "" {
		cfg.Reference.CatalogPath = o.productsPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// usageError marks errors caused by bad invocation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chatbot",
		Short: "OtO smart sprinkler assistant",
		Long: `chatbot answers questions about OtO smart sprinklers using the company
and product reference documents and a chat-completion service.

Run without a subcommand on a terminal to open the chat window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if IsTTY() && IsStdoutTTY() {
				return runTUI(cmd.Context(), opts)
			}
			return runREPL(cmd.Context(), opts, replOptions{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.chatbot/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.companyPath, "company", "", "company reference document")
	flags.StringVar(&opts.productsPath, "products", "", "product catalog document")

	root.AddCommand(
		newTUICommand(opts),
		newChatCommand(opts),
		newServeCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, "Run 'chatbot --help' for usage.")
			return ExitUsage
		}
		return ExitError
	}
	return ExitOK
}
