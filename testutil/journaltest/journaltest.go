// Package journaltest provides fixtures for journal tests: a recording
// dump visitor, bulk-raise helpers, and capturing observability fakes.
package journaltest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ray820328/errorstate-journal-go/journal"
	"github.com/ray820328/errorstate-journal-go/journal/ringengine"
)

// FixtureCode is a domain code for tests, safely above the reserved range.
const FixtureCode = journal.CodeDomainBase + 77

// Visit is one recorded visitor invocation.
type Visit struct {
	Self  journal.Position
	First journal.Position
	Last  journal.Position
}

// RecordingVisitor records every (self, first, last) call a Dump makes.
type RecordingVisitor struct {
	Visits []Visit
}

// Visit is the ringengine.VisitFunc to pass to Dump.
func (rv *RecordingVisitor) Visit(self, first, last journal.Position) {
	rv.Visits = append(rv.Visits, Visit{Self: self, First: first, Last: last})
}

// Selves returns just the visited positions, in visit order.
func (rv *RecordingVisitor) Selves() []journal.Position {
	selves := make([]journal.Position, 0, len(rv.Visits))
	for _, v := range rv.Visits {
		selves = append(selves, v.Self)
	}

	return selves
}

// RaiseN raises n fixture errors on the journal and returns the raised
// records in order.
func RaiseN(ctx context.Context, j *ringengine.Journal, n int) []journal.Record {
	records := make([]journal.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, j.Raise(ctx, FixtureCode, journal.Origin{}, fmt.Sprintf("fixture error %d", i+1)))
	}

	return records
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// CapturingLogger implements journal.Logger and journal.ContextualLogger,
// recording every call for assertions. Safe for concurrent use.
type CapturingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func (l *CapturingLogger) append(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *CapturingLogger) Debug(msg string, args ...any) { l.append("debug", msg, args...) }
func (l *CapturingLogger) Info(msg string, args ...any)  { l.append("info", msg, args...) }
func (l *CapturingLogger) Warn(msg string, args ...any)  { l.append("warn", msg, args...) }
func (l *CapturingLogger) Error(msg string, args ...any) { l.append("error", msg, args...) }

func (l *CapturingLogger) DebugContext(_ context.Context, msg string, args ...any) {
	l.append("debug", msg, args...)
}

func (l *CapturingLogger) InfoContext(_ context.Context, msg string, args ...any) {
	l.append("info", msg, args...)
}

func (l *CapturingLogger) WarnContext(_ context.Context, msg string, args ...any) {
	l.append("warn", msg, args...)
}

func (l *CapturingLogger) ErrorContext(_ context.Context, msg string, args ...any) {
	l.append("error", msg, args...)
}

// MessagesAtLevel returns the captured messages logged at the given level,
// in order.
func (l *CapturingLogger) MessagesAtLevel(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs := make([]string, 0)
	for _, e := range l.Entries {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}

	return msgs
}

// CapturingMetrics implements journal.MetricsCollector, counting calls per
// metric name. Safe for concurrent use.
type CapturingMetrics struct {
	mu        sync.Mutex
	Durations map[string]int
	Counters  map[string]int
	Values    map[string][]float64
}

// NewCapturingMetrics creates an empty CapturingMetrics.
func NewCapturingMetrics() *CapturingMetrics {
	return &CapturingMetrics{
		Durations: make(map[string]int),
		Counters:  make(map[string]int),
		Values:    make(map[string][]float64),
	}
}

func (m *CapturingMetrics) RecordDuration(metric string, _ time.Duration, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations[metric]++
}

func (m *CapturingMetrics) IncrementCounter(metric string, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[metric]++
}

func (m *CapturingMetrics) RecordValue(metric string, value float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Values[metric] = append(m.Values[metric], value)
}

// CounterCount returns how often the counter was incremented.
func (m *CapturingMetrics) CounterCount(metric string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Counters[metric]
}

// Span is one captured tracing span.
type Span struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
}

// SetStatus implements journal.SpanContext.
func (s *Span) SetStatus(status string) { s.Status = status }

// AddAttribute implements journal.SpanContext.
func (s *Span) AddAttribute(key, value string) { s.Attributes[key] = value }

// CapturingTracing implements journal.TracingCollector, recording every
// span it starts.
type CapturingTracing struct {
	mu    sync.Mutex
	Spans []*Span
}

func (t *CapturingTracing) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, journal.SpanContext) {
	span := &Span{Name: name, Attributes: make(map[string]string)}
	for key, value := range attrs {
		span.Attributes[key] = value
	}

	t.mu.Lock()
	t.Spans = append(t.Spans, span)
	t.mu.Unlock()

	return ctx, span
}

func (t *CapturingTracing) FinishSpan(spanCtx journal.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*Span)
	if !ok {
		return
	}

	for key, value := range attrs {
		span.Attributes[key] = value
	}

	span.Status = status
	span.Finished = true
}

// SpansNamed returns the captured spans with the given name, in start
// order.
func (t *CapturingTracing) SpansNamed(name string) []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := make([]*Span, 0)
	for _, s := range t.Spans {
		if s.Name == name {
			spans = append(spans, s)
		}
	}

	return spans
}
