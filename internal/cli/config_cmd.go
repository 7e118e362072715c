// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/shauraya-mohan/chatbot/internal/config"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
	}
	cmd.AddCommand(
		newConfigShowCommand(opts),
		newConfigInitCommand(opts),
		newConfigPathCommand(opts),
		newConfigGetCommand(opts),
		newConfigSetCommand(opts),
		newConfigKeysCommand(),
	)
	return cmd
}

// targetPath is the file config init and config set write to.
func (o *rootOptions) targetPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPathTOML()
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			switch format {
			case "json":
				fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
			case "toml":
				safe := cfg.Clone()
				if safe.Completion.APIKey != "" {
					safe.Completion.APIKey = "[REDACTED]"
				}
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(safe)
			default:
				return usageError{err: fmt.Errorf("unknown format %q (want json or toml)", format)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or toml")
	return cmd
}

func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.targetPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if isJSONPath(path) {
				err = config.SaveJSON(config.Default(), path)
			} else {
				err = config.SaveTOML(config.Default(), path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.targetPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if args[0] == "completion.api_key" {
				return errors.New("completion.api_key is not printed; use 'config show' to see whether it is set")
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return usageError{err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newConfigSetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one configuration value and save the file",
		Long: `Change one configuration value and save the file.

Only the file's own values are written back; environment overrides such as
CHATBOT_API_KEY are never persisted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.targetPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				if isJSONPath(path) {
					err = config.LoadJSON(cfg, path)
				} else {
					err = config.LoadTOML(cfg, path)
				}
				if err != nil {
					return err
				}
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return usageError{err: err}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if isJSONPath(path) {
				err = config.SaveJSON(cfg, path)
			} else {
				err = config.SaveTOML(cfg, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	}
}

func newConfigKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every key accepted by get and set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range config.GetAllKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	}
}
