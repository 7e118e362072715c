// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides metrics and token accounting for the assistant.
//
// Metrics are Prometheus collectors registered on a caller-supplied
// registry, so tests and embedders never touch the global default. Every
// method is safe on a nil *Metrics.
//
// # Key Types
//
//   - Metrics: Counters and histograms for submissions, replies and failures
//   - UsageTracker: Running token totals for the current process
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	metrics := telemetry.NewMetrics(reg)
//	metrics.Reply(router.Immediate)
//
// # Privacy
//
// Message content is never recorded. Only counts, durations and token
// totals leave this package.
package telemetry
