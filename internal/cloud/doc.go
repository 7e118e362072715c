// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud provides the client for the hosted chat completion endpoint.
//
// The endpoint speaks the OpenAI chat completions format. Each request carries
// a single system message holding the full prompt, a token ceiling and a
// sampling temperature; the reply is the content of the first choice.
//
// Requests are never retried. A non-2xx status becomes a *StatusError so the
// caller can decide what to show the user.
//
// # Key Types
//
//   - Client: HTTP client with builder-style options
//   - ChatRequest: Request body for chat completions
//   - ChatResponse: Parsed response with GetContent helper
//   - StatusError: Typed failure for non-success responses
//
// # Usage
//
//	client := cloud.NewClient(apiKey).
//	    WithModel("gpt-4o").
//	    WithLogger(logger)
//	reply, err := client.Complete(ctx, systemPrompt)
//
// # Security
//
// API keys are never logged. Request logs contain only method, path, status
// and duration.
package cloud
