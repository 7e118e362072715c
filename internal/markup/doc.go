// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup finds pipe-delimited tables inside model replies and renders them.
//
// Replies are plain text that may contain one markdown-style table. ExtractTable
// locates the first contiguous block of pipe lines, decomposes it into header
// and body cells, and returns the text before and after the block verbatim.
// The block is located by line position, never by searching for its text, so
// a repeated row cannot move the splice point.
//
// # Key Types
//
//   - Table: Header cells and ragged body rows
//   - Document: Prefix text, optional Table, suffix text
//
// # Usage
//
//	doc := markup.ExtractTable(reply)
//	if doc.HasTable() {
//	    fmt.Println(markup.RenderTerminal(doc, 80, markup.DefaultTableStyle()))
//	}
//	html := markup.RenderHTML(doc)
package markup
