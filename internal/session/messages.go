// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"

	"github.com/shauraya-mohan/chatbot/internal/model"
)

const (
	// StillLoadingMessage is the reply given while reference data is not
	// yet available. No completion request is made.
	StillLoadingMessage = "I'm still loading the OtO information. Please try again in a moment."

	// ApologyMessage is the reply given when a completion request fails.
	ApologyMessage = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."
)

// greetingFormat takes the company persona, e.g. "OtO smart sprinkler".
const greetingFormat = "Hi! I'm your %s assistant. I can help you with setup, troubleshooting, product info, and more. How can I help you today?"

// GreetingFor returns the stock greeting for persona. An empty persona gives
// model.DefaultGreeting.
func GreetingFor(persona string) string {
	if persona == "" {
		return model.DefaultGreeting
	}
	return fmt.Sprintf(greetingFormat, persona)
}

// Messages are the fixed assistant texts.
type Messages struct {
	Greeting string
	Loading  string
	Apology  string
}

// DefaultMessages returns the stock OtO texts. The greeting is what a
// session uses before the company document is loaded.
func DefaultMessages() Messages {
	return Messages{
		Greeting: model.DefaultGreeting,
		Loading:  StillLoadingMessage,
		Apology:  ApologyMessage,
	}
}

func (m Messages) merge(other Messages) Messages {
	if other.Greeting != "" {
		m.Greeting = other.Greeting
	}
	if other.Loading != "" {
		m.Loading = other.Loading
	}
	if other.Apology != "" {
		m.Apology = other.Apology
	}
	return m
}

// =============================================================================
// QUICK ACTIONS
// =============================================================================

// QuickAction is a canned message a front end can offer as a shortcut.
type QuickAction struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// DefaultQuickActions returns the stock shortcuts.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Setup help", Message: "How do I set up my OtO sprinkler controller?"},
		{Label: "Compare products", Message: "Compare the OtO products for me"},
		{Label: "Troubleshooting", Message: "My OtO won't connect to Wi-Fi. What should I do?"},
		{Label: "Watering tips", Message: "How often should I water my lawn in summer?"},
	}
}
