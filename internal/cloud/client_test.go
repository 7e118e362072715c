// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

const testKey = "sk-test-abcdefghijklmnopqrstuvwxyz0123456789"

const okBody = `{
	"id": "chatcmpl-1",
	"model": "gpt-4o",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "Water early in the morning."},
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 6, "total_tokens": 16}
}`

// =============================================================================
// REQUEST SHAPE TESTS
// =============================================================================

// TestComplete_RequestShape verifies the body and headers sent to the endpoint.
func TestComplete_RequestShape(t *testing.T) {
	var got ChatRequest
	var auth, contentType, method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody))
	}))
	defer server.Close()

	client := NewClient(testKey).WithEndpoint(server.URL)
	reply, err := client.Complete(context.Background(), "SYSTEM PROMPT")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if reply != "Water early in the morning." {
		t.Errorf("reply = %q", reply)
	}
	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
	if auth != "Bearer "+testKey {
		t.Errorf("Authorization = %q", auth)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if got.Model != "gpt-4o" || got.MaxTokens != 1500 || got.Temperature != 0.7 {
		t.Errorf("request = %+v, want gpt-4o/1500/0.7", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "system" || got.Messages[0].Content != "SYSTEM PROMPT" {
		t.Errorf("messages = %+v, want one system message", got.Messages)
	}
}

// TestComplete_RawBodyKeys checks the JSON key names on the wire.
func TestComplete_RawBodyKeys(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(okBody))
	}))
	defer server.Close()

	client := NewClient(testKey).WithEndpoint(server.URL).WithModel("gpt-4o-mini").WithMaxTokens(200).WithTemperature(0)
	if _, err := client.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	for _, key := range []string{"model", "messages", "max_tokens", "temperature"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("request body missing %q: %v", key, raw)
		}
	}
	if raw["temperature"] != float64(0) {
		t.Errorf("temperature = %v, want 0 to be sent explicitly", raw["temperature"])
	}
	if raw["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", raw["model"])
	}
}

// =============================================================================
// ERROR HANDLING TESTS
// =============================================================================

func TestComplete_UsageHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okBody))
	}))
	defer server.Close()

	var got Usage
	client := NewClient(testKey).WithEndpoint(server.URL).WithUsageHook(func(u Usage) { got = u })
	if _, err := client.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := Usage{PromptTokens: 10, CompletionTokens: 6, TotalTokens: 16}
	if got != want {
		t.Errorf("usage = %+v, want %+v", got, want)
	}
}

func TestComplete_NotConfigured(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := NewClient("  ").WithEndpoint(server.URL).Complete(context.Background(), "p")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server called %d times, want 0", calls.Load())
	}
}

// TestComplete_StatusErrors verifies that non-2xx responses are typed and not retried.
func TestComplete_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		code     string
		message  string
		sentinel error
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			code:     "invalid_api_key",
			message:  "Incorrect API key provided",
			sentinel: ErrAuthFailed,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"Rate limit reached","type":"requests"}}`,
			code:     "requests",
			message:  "Rate limit reached",
			sentinel: ErrRateLimited,
		},
		{
			name:    "server error plain body",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			message: "upstream down",
		},
		{
			name:    "empty body",
			status:  http.StatusServiceUnavailable,
			message: "Service Unavailable",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(testKey).WithEndpoint(server.URL).Complete(context.Background(), "p")

			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if se.Status != tc.status || se.Code != tc.code || se.Message != tc.message {
				t.Errorf("StatusError = %+v", se)
			}
			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tc.sentinel)
			}
			if calls.Load() != 1 {
				t.Errorf("server called %d times, want exactly 1 (no retries)", calls.Load())
			}
		})
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	_, err := NewClient(testKey).WithEndpoint(server.URL).Complete(context.Background(), "p")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestComplete_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":`))
	}))
	defer server.Close()

	_, err := NewClient(testKey).WithEndpoint(server.URL).Complete(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "failed to parse response") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(testKey).WithEndpoint(url).Complete(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "request failed") {
		t.Errorf("error = %v, want transport failure", err)
	}
}

func TestComplete_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(testKey).WithEndpoint(server.URL).Complete(ctx, "p")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestStatusError_Error(t *testing.T) {
	withCode := &StatusError{Status: 401, Code: "invalid_api_key", Message: "bad key"}
	if got := withCode.Error(); got != "completion error [invalid_api_key] (HTTP 401): bad key" {
		t.Errorf("Error() = %q", got)
	}
	noCode := &StatusError{Status: 500, Message: "oops"}
	if got := noCode.Error(); got != "completion error (HTTP 500): oops" {
		t.Errorf("Error() = %q", got)
	}
	if errors.Unwrap(noCode) != nil {
		t.Error("500 should not map to a sentinel")
	}
}

// =============================================================================
// CLIENT TESTS
// =============================================================================

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(testKey)
	if !client.IsConfigured() {
		t.Error("client with key should be configured")
	}
	if client.Model() != DefaultModel {
		t.Errorf("Model() = %q", client.Model())
	}
	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q", client.Endpoint())
	}
	if NewClient("").IsConfigured() {
		t.Error("client without key should not be configured")
	}
}

// TestAPIKeyMasked verifies no fragment of the key is exposed.
func TestAPIKeyMasked(t *testing.T) {
	if got := NewClient("").APIKeyMasked(); got != "[not set]" {
		t.Errorf("APIKeyMasked() = %q", got)
	}
	masked := NewClient(testKey).APIKeyMasked()
	if strings.Contains(masked, testKey[:6]) {
		t.Errorf("masked key leaks prefix: %q", masked)
	}
	if !strings.HasPrefix(masked, "[REDACTED, length=44, fingerprint=") {
		t.Errorf("APIKeyMasked() = %q", masked)
	}
}

// TestLogging_NoSecrets ensures request logs never carry the key or prompt.
func TestLogging_NoSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okBody))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(testKey).WithEndpoint(server.URL).WithLogger(zap.New(core))
	if _, err := client.Complete(context.Background(), "TOP SECRET PROMPT"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if logs.Len() == 0 {
		t.Fatal("expected at least one log entry")
	}
	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			s, _ := v.(string)
			if strings.Contains(s, testKey) || strings.Contains(s, "TOP SECRET") {
				t.Errorf("log field %s leaks sensitive data: %q", k, s)
			}
		}
	}
}
