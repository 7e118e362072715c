// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// event is one call made on a recordingSink.
type event struct {
	sink string
	op   string
	text string
}

// journal records calls from several sinks in one global order.
type journal struct {
	mu     sync.Mutex
	events []event
}

func (j *journal) add(e event) {
	j.mu.Lock()
	j.events = append(j.events, e)
	j.mu.Unlock()
}

func (j *journal) snapshot() []event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]event(nil), j.events...)
}

type recordingSink struct {
	name string
	j    *journal
}

func (s *recordingSink) Append(chunk string) { s.j.add(event{s.name, "append", chunk}) }
func (s *recordingSink) ScrollToLatest()     { s.j.add(event{s.name, "scroll", ""}) }
func (s *recordingSink) Finish()             { s.j.add(event{s.name, "finish", ""}) }

func (s *recordingSink) text() string {
	var b strings.Builder
	for _, e := range s.j.snapshot() {
		if e.sink == s.name && e.op == "append" {
			b.WriteString(e.text)
		}
	}
	return b.String()
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx), "reveal did not finish")
}

// =============================================================================
// SCHEDULER TESTS
// =============================================================================

func TestScheduler_DefaultInterval(t *testing.T) {
	assert.Equal(t, 15*time.Millisecond, NewScheduler().Interval())
	assert.Equal(t, DefaultInterval, NewScheduler(WithInterval(0)).Interval())
}

func TestScheduler_OneCharacterPerTickWithScroll(t *testing.T) {
	j := &journal{}
	sink := &recordingSink{name: "a", j: j}
	s := NewScheduler(WithInterval(time.Millisecond))

	h := s.Reveal(sink, "Hi!")
	waitDone(t, h)

	want := []event{
		{"a", "append", "H"}, {"a", "scroll", ""},
		{"a", "append", "i"}, {"a", "scroll", ""},
		{"a", "append", "!"}, {"a", "scroll", ""},
		{"a", "finish", ""},
	}
	if diff := cmp.Diff(want, j.snapshot(), cmp.AllowUnexported(event{})); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, h.Completed())
	assert.Equal(t, 3, h.Emitted())
}

func TestScheduler_GraphemeClusters(t *testing.T) {
	j := &journal{}
	sink := &recordingSink{name: "a", j: j}
	s := NewScheduler(WithInterval(time.Millisecond))

	text := "👍🏽é💧"
	waitDone(t, s.Reveal(sink, text))

	var chunks []string
	for _, e := range j.snapshot() {
		if e.op == "append" {
			chunks = append(chunks, e.text)
		}
	}
	assert.Equal(t, []string{"👍🏽", "é", "💧"}, chunks)
	assert.Equal(t, text, sink.text())
}

func TestScheduler_WaitsBetweenTicks(t *testing.T) {
	sink := &recordingSink{name: "a", j: &journal{}}
	s := NewScheduler(WithInterval(10 * time.Millisecond))

	start := time.Now()
	waitDone(t, s.Reveal(sink, "abcde"))

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestScheduler_EmptyText(t *testing.T) {
	j := &journal{}
	sink := &recordingSink{name: "a", j: j}

	h := NewScheduler().Reveal(sink, "")
	waitDone(t, h)

	assert.True(t, h.Completed())
	assert.Equal(t, []event{{"a", "finish", ""}}, j.snapshot())
}

func TestScheduler_Cancel(t *testing.T) {
	sink := &recordingSink{name: "a", j: &journal{}}
	s := NewScheduler(WithInterval(5 * time.Millisecond))

	text := strings.Repeat("x", 200)
	h := s.Reveal(sink, text)
	time.Sleep(20 * time.Millisecond)
	h.Cancel()
	waitDone(t, h)

	assert.False(t, h.Completed())
	assert.Less(t, h.Emitted(), 200)
	assert.Equal(t, h.Emitted(), len(sink.text()))
}

func TestScheduler_Skip(t *testing.T) {
	sink := &recordingSink{name: "a", j: &journal{}}
	s := NewScheduler(WithInterval(time.Hour))

	h := s.Reveal(sink, "Watering twice a week is ideal.")
	h.Skip()
	waitDone(t, h)

	assert.True(t, h.Completed())
	assert.Equal(t, "Watering twice a week is ideal.", sink.text())
}

// TestScheduler_SupersedeFlushesPrevious verifies a new reveal never
// interleaves with an unfinished one.
func TestScheduler_SupersedeFlushesPrevious(t *testing.T) {
	j := &journal{}
	first := &recordingSink{name: "first", j: j}
	second := &recordingSink{name: "second", j: j}
	s := NewScheduler(WithInterval(2 * time.Millisecond))

	long := strings.Repeat("a", 500)
	h1 := s.Reveal(first, long)
	time.Sleep(10 * time.Millisecond)
	h2 := s.Reveal(second, "bb")

	waitDone(t, h1)
	waitDone(t, h2)

	assert.True(t, h1.Completed(), "superseded reveal should be flushed")
	assert.Equal(t, long, first.text())
	assert.Equal(t, "bb", second.text())

	seenSecond := false
	for _, e := range j.snapshot() {
		if e.sink == "second" {
			seenSecond = true
		} else if seenSecond {
			t.Fatalf("first sink received %q after second sink started", e.op)
		}
	}
}

func TestScheduler_SupersedeChain(t *testing.T) {
	j := &journal{}
	s := NewScheduler(WithInterval(time.Millisecond))

	var handles []*Handle
	var sinks []*recordingSink
	for i := 0; i < 5; i++ {
		sink := &recordingSink{name: string(rune('a' + i)), j: j}
		sinks = append(sinks, sink)
		handles = append(handles, s.Reveal(sink, strings.Repeat("z", 50)))
	}
	for _, h := range handles {
		waitDone(t, h)
	}
	for i, sink := range sinks {
		assert.Equal(t, strings.Repeat("z", 50), sink.text(), "sink %d", i)
	}
}

func TestScheduler_Stop(t *testing.T) {
	sink := &recordingSink{name: "a", j: &journal{}}
	s := NewScheduler(WithInterval(time.Hour))

	h := s.Reveal(sink, "never shown")
	s.Stop()

	select {
	case <-h.Done():
	default:
		t.Fatal("Stop should wait for the reveal to exit")
	}
	assert.False(t, h.Completed())
	assert.Empty(t, sink.text())

	s.Stop()
}

// =============================================================================
// INSTANT TESTS
// =============================================================================

func TestInstant(t *testing.T) {
	j := &journal{}
	sink := &recordingSink{name: "a", j: j}

	h := Instant{}.Reveal(sink, "A | B\n--- | ---")

	select {
	case <-h.Done():
	default:
		t.Fatal("Instant handle should already be done")
	}
	assert.True(t, h.Completed())
	want := []event{{"a", "append", "A | B\n--- | ---"}, {"a", "scroll", ""}, {"a", "finish", ""}}
	assert.Equal(t, want, j.snapshot())
}

func TestGraphemes(t *testing.T) {
	assert.Empty(t, Graphemes(""))
	assert.Equal(t, []string{"a", "b"}, Graphemes("ab"))
	assert.Len(t, Graphemes("🇺🇸🌱"), 2)
}
