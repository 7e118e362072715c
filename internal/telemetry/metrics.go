// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shauraya-mohan/chatbot/internal/cloud"
	"github.com/shauraya-mohan/chatbot/internal/router"
)

const namespace = "chatbot"

// Failure kinds reported on chatbot_completion_failures_total.
const (
	FailureNotConfigured = "not_configured"
	FailureAuth          = "auth"
	FailureRateLimited   = "rate_limited"
	FailureStatus        = "status"
	FailureEmpty         = "empty_response"
	FailureTimeout       = "timeout"
	FailureCanceled      = "canceled"
	FailureTransport     = "transport"
)

// =============================================================================
// METRICS
// =============================================================================

// Metrics holds the assistant's Prometheus collectors.
type Metrics struct {
	submissions *prometheus.CounterVec
	replies     *prometheus.CounterVec
	failures    *prometheus.CounterVec
	latency     prometheus.Histogram
	reloads     *prometheus.CounterVec
	tokens      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Messages submitted, by outcome.",
		}, []string{"outcome"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Assistant replies rendered, by render mode.",
		}, []string{"mode"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_failures_total",
			Help:      "Completion requests that failed, by kind.",
		}, []string{"kind"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Completion request latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_loads_total",
			Help:      "Reference data loads, by result.",
		}, []string{"result"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_tokens_total",
			Help:      "Tokens reported by the completion endpoint.",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(m.submissions, m.replies, m.failures, m.latency, m.reloads, m.tokens)
	}
	return m
}

// Submission counts a submission with the given outcome, e.g. "accepted",
// "empty" or "busy".
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// Reply counts a rendered assistant reply.
func (m *Metrics) Reply(mode router.RenderMode) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(mode.String()).Inc()
}

// ObserveCompletion records the latency of one completion request and, when
// err is non-nil, counts the failure by kind.
func (m *Metrics) ObserveCompletion(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.latency.Observe(d.Seconds())
	if err != nil {
		m.failures.WithLabelValues(FailureKind(err)).Inc()
	}
}

// ReferenceLoad counts a reference data load.
func (m *Metrics) ReferenceLoad(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Usage adds the token counts of one completion.
func (m *Metrics) Usage(u cloud.Usage) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues("prompt").Add(float64(u.PromptTokens))
	m.tokens.WithLabelValues("completion").Add(float64(u.CompletionTokens))
}

// FailureKind maps a completion error to a low-cardinality label.
func FailureKind(err error) string {
	var statusErr *cloud.StatusError
	switch {
	case errors.Is(err, cloud.ErrNotConfigured):
		return FailureNotConfigured
	case errors.Is(err, cloud.ErrAuthFailed):
		return FailureAuth
	case errors.Is(err, cloud.ErrRateLimited):
		return FailureRateLimited
	case errors.As(err, &statusErr):
		return FailureStatus
	case errors.Is(err, cloud.ErrEmptyResponse):
		return FailureEmpty
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, context.Canceled):
		return FailureCanceled
	default:
		return FailureTransport
	}
}
