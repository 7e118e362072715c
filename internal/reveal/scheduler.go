// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rivo/uniseg"
)

// DefaultInterval is the delay between revealed characters.
const DefaultInterval = 15 * time.Millisecond

// =============================================================================
// INTERFACES
// =============================================================================

// Sink receives revealed text.
type Sink interface {
	// Append adds chunk after everything appended so far.
	Append(chunk string)
	// ScrollToLatest brings the newest content into view.
	ScrollToLatest()
}

// Finisher is implemented by sinks that want to know when a reveal has
// written its full text, e.g. to drop a "typing" style.
type Finisher interface {
	Finish()
}

// Revealer starts a reveal of text into sink.
type Revealer interface {
	Reveal(sink Sink, text string) *Handle
}

// =============================================================================
// HANDLE
// =============================================================================

// Handle controls one reveal.
type Handle struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	flush     atomic.Bool
	completed atomic.Bool
	emitted   atomic.Int64
}

func newHandle() *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handle{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// Cancel stops the reveal where it is. Text not yet emitted is dropped.
func (h *Handle) Cancel() {
	h.cancel()
}

// Skip stops the timer and writes the remaining text in one append.
func (h *Handle) Skip() {
	h.flush.Store(true)
	h.cancel()
}

// Done is closed once the reveal goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the reveal has exited or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Completed reports whether the full text reached the sink.
func (h *Handle) Completed() bool {
	return h.completed.Load()
}

// Emitted returns the number of graphemes written so far.
func (h *Handle) Emitted() int {
	return int(h.emitted.Load())
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the per-character delay.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Scheduler reveals one reply at a time.
type Scheduler struct {
	interval time.Duration

	mu      sync.Mutex
	current *Handle
}

// NewScheduler creates a scheduler with DefaultInterval unless overridden.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{interval: DefaultInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the per-character delay.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Reveal starts revealing text into sink and returns its handle. An
// unfinished earlier reveal is flushed first.
func (s *Scheduler) Reveal(sink Sink, text string) *Handle {
	h := newHandle()

	s.mu.Lock()
	prev := s.current
	s.current = h
	s.mu.Unlock()

	if prev != nil {
		prev.Skip()
	}

	go s.run(h, prev, sink, text)
	return h
}

// Stop cancels the active reveal, if any, and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	h := s.current
	s.current = nil
	s.mu.Unlock()

	if h != nil {
		h.Cancel()
		<-h.done
	}
}

func (s *Scheduler) run(h, prev *Handle, sink Sink, text string) {
	defer close(h.done)
	defer h.cancel()

	// The previous reveal must be fully flushed before this one writes.
	if prev != nil {
		<-prev.done
	}

	graphemes := Graphemes(text)
	if len(graphemes) == 0 {
		finish(h, sink)
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; i < len(graphemes); {
		select {
		case <-h.ctx.Done():
			if h.flush.Load() {
				sink.Append(strings.Join(graphemes[i:], ""))
				sink.ScrollToLatest()
				h.emitted.Store(int64(len(graphemes)))
				finish(h, sink)
			}
			return
		case <-ticker.C:
			sink.Append(graphemes[i])
			sink.ScrollToLatest()
			i++
			h.emitted.Store(int64(i))
		}
	}
	finish(h, sink)
}

func finish(h *Handle, sink Sink) {
	h.completed.Store(true)
	if f, ok := sink.(Finisher); ok {
		f.Finish()
	}
}

// =============================================================================
// INSTANT
// =============================================================================

// Instant writes the whole text in one append. It is used where the client
// does its own animation, such as the HTTP API.
type Instant struct{}

// Reveal appends text and returns an already finished handle.
func (Instant) Reveal(sink Sink, text string) *Handle {
	h := newHandle()
	if text != "" {
		sink.Append(text)
		sink.ScrollToLatest()
	}
	h.emitted.Store(int64(uniseg.GraphemeClusterCount(text)))
	finish(h, sink)
	h.cancel()
	close(h.done)
	return h
}

// =============================================================================
// HELPERS
// =============================================================================

// Graphemes splits text into user-perceived characters, so an emoji with a
// skin tone modifier or a letter with a combining accent is one step.
func Graphemes(text string) []string {
	out := make([]string, 0, len(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}
