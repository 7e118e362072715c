// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"sync"
	"time"

	"github.com/shauraya-mohan/chatbot/internal/cloud"
)

// =============================================================================
// USAGE TRACKER
// =============================================================================

// TokenCount tracks input/output tokens.
type TokenCount struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Total returns input plus output.
func (t TokenCount) Total() int {
	return t.Input + t.Output
}

// UsageSummary is a snapshot of a UsageTracker.
type UsageSummary struct {
	Since    time.Time  `json:"since"`
	Requests int        `json:"requests"`
	Tokens   TokenCount `json:"tokens"`
	Last     time.Time  `json:"last,omitempty"`
}

// UsageTracker keeps running token totals.
type UsageTracker struct {
	mu      sync.Mutex
	summary UsageSummary
	metrics *Metrics
}

// NewUsageTracker creates a tracker that also feeds metrics, which may be nil.
func NewUsageTracker(metrics *Metrics) *UsageTracker {
	return &UsageTracker{
		summary: UsageSummary{Since: time.Now()},
		metrics: metrics,
	}
}

// Record adds one completion's usage. Its signature matches
// cloud.Client.WithUsageHook.
func (u *UsageTracker) Record(usage cloud.Usage) {
	u.mu.Lock()
	u.summary.Requests++
	u.summary.Tokens.Input += usage.PromptTokens
	u.summary.Tokens.Output += usage.CompletionTokens
	u.summary.Last = time.Now()
	u.mu.Unlock()

	u.metrics.Usage(usage)
}

// Summary returns the current totals.
func (u *UsageTracker) Summary() UsageSummary {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.summary
}
