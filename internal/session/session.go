// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/markup"
	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/prompt"
	"github.com/shauraya-mohan/chatbot/internal/reference"
	"github.com/shauraya-mohan/chatbot/internal/render"
	"github.com/shauraya-mohan/chatbot/internal/reveal"
	"github.com/shauraya-mohan/chatbot/internal/router"
	"github.com/shauraya-mohan/chatbot/internal/telemetry"
)

var (
	// ErrEmptyMessage is returned when the submitted text is blank.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a submission arrives while a reply is still
	// being fetched.
	ErrBusy = errors.New("a reply is already in progress")

	// ErrUnknownQuickAction is returned for an out-of-range quick action.
	ErrUnknownQuickAction = errors.New("unknown quick action")
)

// Completer turns a prompt into reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// =============================================================================
// REPLY
// =============================================================================

// Reply describes the assistant turn produced by a submission.
type Reply struct {
	// Message is the assistant message as appended to the history.
	Message model.Message

	// Mode is how the reply was rendered.
	Mode router.RenderMode

	// Doc is the reply with its table, if any, split out.
	Doc markup.Document

	// Handle controls the reveal of a progressive reply. It is nil for
	// immediate replies.
	Handle *reveal.Handle

	// Fallback is set when the reply is one of the fixed messages rather
	// than model output.
	Fallback bool

	// Cause is the completion error behind an apology reply.
	Cause error
}

// =============================================================================
// SESSION
// =============================================================================

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger.Named("session")
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithMessages replaces the fixed greeting, loading and apology texts.
// Empty fields keep their defaults. A greeting set here is used as is instead
// of the one built from the company document.
func WithMessages(m Messages) Option {
	return func(s *Session) {
		s.messages = s.messages.merge(m)
		if m.Greeting != "" {
			s.fixedGreeting = true
		}
	}
}

// WithQuickActions sets the quick actions offered to front ends.
func WithQuickActions(actions []QuickAction) Option {
	return func(s *Session) {
		s.actions = append([]QuickAction(nil), actions...)
	}
}

// WithOnError registers a hook that receives every completion failure.
func WithOnError(fn func(error)) Option {
	return func(s *Session) {
		s.onError = fn
	}
}

// WithCompletionTimeout bounds each completion request. Zero means no bound
// beyond the caller's context.
func WithCompletionTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// Session is one chat session.
type Session struct {
	conv      *model.Conversation
	store     *reference.Store
	completer Completer
	pipeline  *render.Pipeline

	logger   *zap.Logger
	metrics  *telemetry.Metrics
	messages Messages
	actions  []QuickAction
	onError  func(error)
	timeout  time.Duration

	inFlight atomic.Bool

	// greetMu guards the greeting state below.
	greetMu       sync.Mutex
	fixedGreeting bool
	seeded        bool
	started       bool
	released      bool
	greeted       bool
}

// New creates a session. The greeting is seeded into the conversation on
// first use, so it can name the company once reference data has loaded.
func New(store *reference.Store, completer Completer, pipeline *render.Pipeline, opts ...Option) *Session {
	s := &Session{
		store:     store,
		completer: completer,
		pipeline:  pipeline,
		logger:    zap.NewNop(),
		messages:  DefaultMessages(),
		actions:   DefaultQuickActions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.conv = model.NewConversation("")
	store.OnChange(func(*reference.Data) { s.greet() })
	return s
}

// =============================================================================
// GREETING
// =============================================================================

// Start renders the greeting once reference data is available, or right
// away when a fixed greeting is configured or the data is already loaded.
// Later calls do nothing.
func (s *Session) Start() {
	s.greetMu.Lock()
	s.started = true
	now := s.fixedGreeting || s.released || s.store.Ready()
	s.greetMu.Unlock()

	if now {
		s.greet()
	}
}

// ReleaseGreeting lets a started session greet without waiting for
// reference data. Call it when the load has failed.
func (s *Session) ReleaseGreeting() {
	s.greetMu.Lock()
	s.released = true
	s.greetMu.Unlock()
	s.greet()
}

// greet seeds the greeting and renders it if Start has been called.
func (s *Session) greet() {
	s.greetMu.Lock()
	defer s.greetMu.Unlock()

	msg := s.seedLocked()
	if !s.started || s.greeted {
		return
	}
	s.greeted = true
	s.pipeline.Dispatch(render.NewEntry(msg, router.Immediate))
}

func (s *Session) seed() {
	s.greetMu.Lock()
	s.seedLocked()
	s.greetMu.Unlock()
}

// seedLocked puts the greeting at index 0 the first time it runs.
func (s *Session) seedLocked() model.Message {
	if !s.seeded {
		s.seeded = true
		s.conv.Append(model.RoleAssistant, s.greetingText())
	}
	seq := s.conv.Sequence()
	return seq[0]
}

func (s *Session) greetingText() string {
	if s.fixedGreeting {
		return s.messages.Greeting
	}
	if d := s.store.Get(); d != nil {
		return GreetingFor(d.Company.PersonaName())
	}
	return s.messages.Greeting
}

// Greeting returns the greeting message, seeding it if needed.
func (s *Session) Greeting() (model.Message, bool) {
	s.seed()
	seq := s.conv.Sequence()
	if len(seq) == 0 || !seq[0].IsAssistant() {
		return model.Message{}, false
	}
	return seq[0], true
}

// History returns the conversation so far, oldest first.
func (s *Session) History() []model.Message {
	s.seed()
	return s.conv.Sequence()
}

// Conversation returns the underlying conversation.
func (s *Session) Conversation() *model.Conversation {
	s.seed()
	return s.conv
}

// Busy reports whether a submission is in flight.
func (s *Session) Busy() bool {
	return s.inFlight.Load()
}

// Ready reports whether reference data is loaded.
func (s *Session) Ready() bool {
	return s.store.Ready()
}

// Messages returns the fixed texts in use. Greeting is the seeded greeting
// once there is one.
func (s *Session) Messages() Messages {
	m := s.messages
	s.greetMu.Lock()
	if s.seeded {
		m.Greeting = s.conv.Sequence()[0].Content
	}
	s.greetMu.Unlock()
	return m
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit handles one user message: it appends and renders the message, gets
// a reply, renders the reply, then appends it.
func (s *Session) Submit(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.Submission("empty")
		return Reply{}, ErrEmptyMessage
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.Submission("busy")
		return Reply{}, ErrBusy
	}
	defer s.inFlight.Store(false)
	s.metrics.Submission("accepted")

	s.greet()
	userMsg := s.conv.Append(model.RoleUser, text)
	s.pipeline.Dispatch(render.NewEntry(userMsg, router.Immediate))

	ref := s.store.Get()
	if ref == nil {
		s.logger.Info("reference data not loaded, sending loading reply")
		return s.respond(s.messages.Loading, router.Classify(s.messages.Loading, text), true, nil), nil
	}

	replyText, err := s.complete(ctx, ref, text)
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err))
		if s.onError != nil {
			s.onError(err)
		}
		return s.respond(s.messages.Apology, router.Immediate, true, err), nil
	}

	return s.respond(replyText, router.Classify(replyText, text), false, nil), nil
}

// complete builds the prompt from the history, which already holds the
// user's message, and asks the completer for a reply.
func (s *Session) complete(ctx context.Context, ref *reference.Data, text string) (string, error) {
	history := s.conv.Sequence()
	p, err := prompt.Build(ref, history, text)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}
	s.logger.Debug("prompt built",
		zap.Int("history", len(history)),
		zap.Int("estimated_tokens", s.conv.EstimateTokens()),
		zap.Bool("comparison", router.IsComparisonRequest(text)),
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.pipeline.ShowTyping()
	start := time.Now()
	reply, err := s.completer.Complete(ctx, p)
	s.metrics.ObserveCompletion(time.Since(start), err)
	s.pipeline.HideTyping()

	return reply, err
}

// respond renders text in mode and then appends it to the history.
func (s *Session) respond(text string, mode router.RenderMode, fallback bool, cause error) Reply {
	msg := model.NewMessage(model.RoleAssistant, text)
	entry := render.NewEntry(msg, mode)
	handle := s.pipeline.Dispatch(entry)
	s.conv.Record(msg)

	s.metrics.Reply(mode)
	return Reply{
		Message:  msg,
		Mode:     mode,
		Doc:      entry.Doc,
		Handle:   handle,
		Fallback: fallback,
		Cause:    cause,
	}
}

// =============================================================================
// QUICK ACTIONS
// =============================================================================

// QuickActions returns the configured quick actions.
func (s *Session) QuickActions() []QuickAction {
	return append([]QuickAction(nil), s.actions...)
}

// SubmitQuickAction submits the message of quick action i.
func (s *Session) SubmitQuickAction(ctx context.Context, i int) (Reply, error) {
	if i < 0 || i >= len(s.actions) {
		return Reply{}, fmt.Errorf("%w: %d", ErrUnknownQuickAction, i)
	}
	return s.Submit(ctx, s.actions[i].Message)
}
