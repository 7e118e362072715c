// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatbot.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CompletionConfig: Completion endpoint, model and sampling settings
//   - ReferenceConfig: Where the company and product documents live
//   - ServerConfig: HTTP listener and rate limits
//   - AssistantConfig: Greeting, fallback texts and quick actions
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATBOT_*, OPENAI_API_KEY)
//   - ~/.chatbot/config.toml
//   - ~/.chatbot/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Access settings:
//
//	client := cloud.NewClient(cfg.Completion.APIKey).
//	    WithModel(cfg.Completion.Model).
//	    WithTimeout(cfg.Completion.Timeout())
package config
