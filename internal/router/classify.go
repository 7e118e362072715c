// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"

	"golang.org/x/text/cases"
)

// ============================================================================
// COMPARISON CLASSIFICATION
// ============================================================================

// comparisonKeywords trigger table formatting. Matching is by substring, so
// "vs" also matches inside longer words.
var comparisonKeywords = []string{
	"compare",
	"comparison",
	"vs",
	"versus",
	"difference",
	"differences",
	"which is better",
	"which one",
	"table",
	"chart",
	"specs",
	"specifications",
}

// ComparisonKeywords returns a copy of the keywords that mark a comparison request.
func ComparisonKeywords() []string {
	out := make([]string, len(comparisonKeywords))
	copy(out, comparisonKeywords)
	return out
}

// IsComparisonRequest reports whether a user message asks for a side-by-side
// comparison. Matching is case-insensitive.
func IsComparisonRequest(message string) bool {
	// A Caser keeps internal state, so each call gets its own.
	m := cases.Fold().String(message)
	for _, kw := range comparisonKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

// ============================================================================
// RENDER MODE
// ============================================================================

// Classify picks the render mode for a reply.
//
// A reply is Immediate when it contains an HTML table, when it contains a
// pipe together with a "---" separator, or when the user asked for a
// comparison. Everything else is Progressive.
func Classify(reply, userMessage string) RenderMode {
	if containsHTMLTable(reply) {
		return Immediate
	}
	if strings.Contains(reply, "|") && strings.Contains(reply, "---") {
		return Immediate
	}
	if IsComparisonRequest(userMessage) {
		return Immediate
	}
	return Progressive
}

func containsHTMLTable(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "<table")
}
