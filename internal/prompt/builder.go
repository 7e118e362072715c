// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/reference"
	"github.com/shauraya-mohan/chatbot/internal/router"
)

// ErrNoReference is returned when the reference data has not been loaded.
var ErrNoReference = errors.New("reference data not loaded")

// ComparisonInstruction is appended when the user asks for a comparison.
const ComparisonInstruction = "SPECIAL INSTRUCTION: Since this appears to be a product comparison request, " +
	"format your response as a markdown table comparing the products mentioned. " +
	"Use | to separate columns and --- to separate header from data rows. " +
	"Do not include any introductory text or emojis - just provide the table directly."

// =============================================================================
// BUILDER
// =============================================================================

// Build returns the system prompt for userMessage.
//
// history must already contain userMessage as its last entry; the question is
// repeated at the end of the prompt so the model knows what to answer.
func Build(ref *reference.Data, history []model.Message, userMessage string) (string, error) {
	if ref == nil {
		return "", ErrNoReference
	}

	company, err := indentJSON(ref.Company)
	if err != nil {
		return "", fmt.Errorf("encode company data: %w", err)
	}
	catalog, err := indentJSON(ref.Catalog)
	if err != nil {
		return "", fmt.Errorf("encode product data: %w", err)
	}
	if history == nil {
		history = []model.Message{}
	}
	conversation, err := indentJSON(history)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	name := ref.Company.Name
	domain := ref.Company.Domain

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful customer support assistant for %s, %s.\n\n", name, describe(ref.Company))

	b.WriteString("Here is the complete company information:\n")
	b.WriteString(company)
	b.WriteString("\n\nHere is the detailed product information:\n")
	b.WriteString(catalog)
	b.WriteString("\n\n")

	b.WriteString("Your role:\n")
	fmt.Fprintf(&b, "- ONLY answer questions about %s\n", domain)
	fmt.Fprintf(&b, "- For ANY question not related to %s, respond with a playful joke that relates the question to plants, gardening, or %s products\n", domain, name)
	b.WriteString("- Be friendly, professional, and concise\n")
	fmt.Fprintf(&b, "- If you don't know something specific about %s, say so and offer to help with what you do know\n", name)
	fmt.Fprintf(&b, "- Always maintain the helpful, customer-focused tone of %s's brand\n", name)
	b.WriteString("- Use emojis sparingly but appropriately (🌱, 💧, 🔧, etc.)\n\n")

	fmt.Fprintf(&b, "IMPORTANT: Never give serious answers to non-%s related questions. Always turn them into plant/gardening/%s-themed jokes instead.\n\n", name, name)

	b.WriteString(formattingRules)

	if router.IsComparisonRequest(userMessage) {
		b.WriteString("\n")
		b.WriteString(ComparisonInstruction)
		b.WriteString("\n")
	}

	b.WriteString("\nCurrent conversation history: ")
	b.WriteString(conversation)
	b.WriteString("\n\n")
	b.WriteString("Respond to the user's question: \"")
	b.WriteString(userMessage)
	b.WriteString("\"")

	return b.String(), nil
}

const formattingRules = `IMPORTANT FORMATTING RULES:
- NEVER use markdown formatting like **bold**, *italic*, ### headers, or ## headers
- NEVER use asterisks (*) for bullet points or emphasis
- NEVER use double asterisks (**) for bold text
- NEVER use single asterisks (*) for italic text
- NEVER use hash symbols (#) for headers
- Use simple text formatting only
- For step-by-step instructions, use numbered format: 1. First step, 2. Second step, etc.
- For regular lists, use simple dashes (-) or numbers (1. 2. 3.)
- For product comparisons, ALWAYS format as HTML tables
- Keep responses clean and readable with plain text only
- NEVER mention that you're using HTML tables or any technical formatting details
- Write all text in normal, unformatted style
`

// describe returns the "a smart sprinkler system company" phrase.
func describe(c reference.Company) string {
	kind := strings.TrimSpace(c.Kind)
	if kind == "" {
		return "the company described below"
	}
	if strings.ContainsRune("aeiouAEIOU", rune(kind[0])) {
		return "an " + kind
	}
	return "a " + kind
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
