// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauraya-mohan/chatbot/internal/cloud"
	"github.com/shauraya-mohan/chatbot/internal/router"
)

func TestFailureKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not configured", cloud.ErrNotConfigured, FailureNotConfigured},
		{"auth", &cloud.StatusError{Status: 401}, FailureAuth},
		{"rate limited", &cloud.StatusError{Status: 429}, FailureRateLimited},
		{"server error", &cloud.StatusError{Status: 500}, FailureStatus},
		{"empty", cloud.ErrEmptyResponse, FailureEmpty},
		{"timeout", fmt.Errorf("request failed: %w", context.DeadlineExceeded), FailureTimeout},
		{"canceled", fmt.Errorf("request failed: %w", context.Canceled), FailureCanceled},
		{"other", errors.New("connection refused"), FailureTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureKind(tt.err); got != tt.want {
				t.Errorf("FailureKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Submission("accepted")
	m.Submission("accepted")
	m.Submission("busy")
	m.Reply(router.Immediate)
	m.Reply(router.Progressive)
	m.Reply(router.Progressive)
	m.ObserveCompletion(120*time.Millisecond, nil)
	m.ObserveCompletion(2*time.Second, cloud.ErrEmptyResponse)
	m.ReferenceLoad(nil)
	m.ReferenceLoad(errors.New("bad"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.replies.WithLabelValues("immediate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.replies.WithLabelValues("progressive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues(FailureEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))

	count, err := testutil.GatherAndCount(reg, "chatbot_completion_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Reply(router.Immediate)

	expected := `
# HELP chatbot_replies_total Assistant replies rendered, by render mode.
# TYPE chatbot_replies_total counter
chatbot_replies_total{mode="immediate"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "chatbot_replies_total"))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.Submission("accepted")
	m.Reply(router.Immediate)
	m.ObserveCompletion(time.Second, errors.New("x"))
	m.ReferenceLoad(nil)
	m.Usage(cloud.Usage{PromptTokens: 1})
}

func TestUsageTracker_Record(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	u := NewUsageTracker(m)

	u.Record(cloud.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120})
	u.Record(cloud.Usage{PromptTokens: 50, CompletionTokens: 5, TotalTokens: 55})

	s := u.Summary()
	assert.Equal(t, 2, s.Requests)
	assert.Equal(t, TokenCount{Input: 150, Output: 25}, s.Tokens)
	assert.Equal(t, 175, s.Tokens.Total())
	assert.False(t, s.Last.IsZero())

	assert.Equal(t, 150.0, testutil.ToFloat64(m.tokens.WithLabelValues("prompt")))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.tokens.WithLabelValues("completion")))
}
