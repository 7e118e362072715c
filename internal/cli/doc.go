// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the chatbot command line.

Every front end is built from the same parts: configuration, a zap logger,
the reference store (loaded in the background and optionally watched), the
completion client and a session. Only the sink and revealer differ.

# Commands

	chatbot              full-screen chat window on a terminal, line chat otherwise
	chatbot tui          full-screen chat window
	chatbot chat         line-oriented chat with history (/help for commands)
	chatbot serve        HTTP backend for the website widget
	chatbot config show  print the effective configuration (API key redacted)
	chatbot config init  write a default config file
	chatbot config path  print the config file location
	chatbot config get   print one key
	chatbot config set   change one key and save
	chatbot config keys  list every settable key
	chatbot version      print build information

# Global Flags

	--config PATH      config file (default ~/.chatbot/config.toml)
	--log-level LEVEL  debug, info, warn or error
	--company PATH     company reference document
	--products PATH    product catalog document

# Usage

	func main() {
	    os.Exit(cli.Execute())
	}
*/
package cli
