// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package export writes a conversation transcript as Markdown, HTML or JSON.

Transcripts are snapshots taken on request; nothing is read back, so a
conversation still ends with its process.

# Key Types

  - Transcript: the messages plus title, model and token totals
  - Exporter: one output format (MarkdownExporter, HTMLExporter, JSONExporter)
  - Options: metadata, timestamps and HTML theme

# Usage

	exp, err := export.ForFormat("html", export.DefaultOptions())
	if err != nil {
	    return err
	}
	path, err := export.WriteFile(transcript, exp, ".")
*/
package export
