// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"
)

// TestIsComparisonRequest verifies keyword detection is case-insensitive and
// substring based.
func TestIsComparisonRequest(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{name: "vs_lower", message: "OtO One vs OtO Pro", expected: true},
		{name: "vs_upper", message: "OtO One VS OtO Pro", expected: true},
		{name: "vs_mixed", message: "one Vs the other", expected: true},
		{name: "vs_inside_word", message: "canvas hose", expected: true},
		{name: "compare", message: "Can you COMPARE the controllers?", expected: true},
		{name: "comparison", message: "I want a comparison", expected: true},
		{name: "versus", message: "drip versus spray", expected: true},
		{name: "difference", message: "What's the difference?", expected: true},
		{name: "which_is_better", message: "Which is better for a small yard?", expected: true},
		{name: "which_one", message: "which one should I buy", expected: true},
		{name: "table", message: "show me a table", expected: true},
		{name: "chart", message: "put it in a chart", expected: true},
		{name: "specs", message: "what are the Specs", expected: true},
		{name: "specifications", message: "full specifications please", expected: true},
		{name: "setup", message: "How do I set up my sprinkler?", expected: false},
		{name: "troubleshoot", message: "My controller is offline", expected: false},
		{name: "empty", message: "", expected: false},
		{name: "which_alone", message: "which zone waters first?", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComparisonRequest(tt.message); got != tt.expected {
				t.Errorf("IsComparisonRequest(%q) = %v, want %v", tt.message, got, tt.expected)
			}
		})
	}
}

func TestIsComparisonRequest_EveryKeyword(t *testing.T) {
	for _, kw := range ComparisonKeywords() {
		if !IsComparisonRequest("please " + kw + " now") {
			t.Errorf("keyword %q not detected", kw)
		}
	}
}

func TestComparisonKeywords_ReturnsCopy(t *testing.T) {
	kws := ComparisonKeywords()
	kws[0] = "mutated"
	if ComparisonKeywords()[0] != "compare" {
		t.Error("ComparisonKeywords exposed internal slice")
	}
}

// TestClassify verifies render mode selection for replies.
func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		message  string
		expected RenderMode
	}{
		{
			name:     "pipe_table",
			reply:    "Here: A | B | C\n--- | --- | ---\n1 | 2 | 3",
			message:  "tell me about models",
			expected: Immediate,
		},
		{
			name:     "prose",
			reply:    "Watering twice a week is ideal.",
			message:  "how often should I water",
			expected: Progressive,
		},
		{
			name:     "html_table",
			reply:    "<table><tr><td>x</td></tr></table>",
			message:  "hello",
			expected: Immediate,
		},
		{
			name:     "html_table_with_attributes",
			reply:    `<TABLE class="specs"><tr><td>x</td></tr></TABLE>`,
			message:  "hello",
			expected: Immediate,
		},
		{
			name:     "pipe_without_dashes",
			reply:    "Use zone 1 | zone 2 for the front yard.",
			message:  "which zones",
			expected: Progressive,
		},
		{
			name:     "dashes_without_pipe",
			reply:    "Step one --- open the app.",
			message:  "setup",
			expected: Progressive,
		},
		{
			name:     "comparison_request_forces_immediate",
			reply:    "The Pro has more zones.",
			message:  "OtO One vs Pro?",
			expected: Immediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.reply, tt.message); got != tt.expected {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.reply, tt.message, got, tt.expected)
			}
		})
	}
}
