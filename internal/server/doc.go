// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP backend for the embeddable chat widget.
//
// The widget posts messages here and gets back either ready-to-insert table
// markup (immediate replies) or plain text plus a reveal interval that the
// browser uses to type the reply out (progressive replies).
//
// # Endpoints
//
//   - POST /api/messages: Submit a message, returns the reply
//   - GET  /api/history: The conversation so far
//   - GET  /api/transcript?format=markdown|html|json: The conversation as a download
//   - GET  /api/greeting: The seeded greeting, rendered
//   - GET  /api/quick-actions: Canned messages the widget can offer
//   - POST /api/quick-actions/{index}: Submit a canned message
//   - GET  /healthz: 200 once reference data is loaded, 503 before
//   - GET  /metrics: Prometheus exposition
//
// # Middleware
//
//   - Request IDs and structured request logging (zap)
//   - Panic recovery
//   - Security headers and CORS for the embedding site
//   - Request body size limit
//   - Per-client token bucket rate limiting on /api
//
// # Usage
//
//	srv := server.New(sess, server.Options{Listen: "127.0.0.1:8080"},
//	    server.WithLogger(logger),
//	    server.WithGatherer(registry),
//	)
//	err := srv.ListenAndServe(ctx)
package server
