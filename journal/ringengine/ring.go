package ringengine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// Capacity is the fixed size of the history ring: the number of most recent
// records whose detail is retained. Ring-index arithmetic depends on it
// being compile-time fixed, so it is a constant rather than an option.
const Capacity = 32

const (
	logMsgRaiseRejected     = "raise rejected, journal state unchanged"
	logMsgRecordRaised      = "record raised"
	logMsgRecordEvicted     = "oldest record detail evicted"
	logMsgRestoreIgnored    = "restore ignored, snapshot is ahead of current view"
	logMsgViewRestored      = "view restored to snapshot"
	logMsgViewReset         = "view reset to none"
	logMsgDumpCompleted     = "dump completed"
	logMsgOperation         = "journal operation: "
	logAttrError            = "error"
	logAttrJournalID        = "journal_id"
	logAttrCode             = "code"
	logAttrPosition         = "position"
	logAttrTotal            = "total"
	logAttrView             = "view"
	logAttrSnapshotPosition = "snapshot_position"
	logAttrRangeFirst       = "range_first"
	logAttrRangeLast        = "range_last"
	logAttrVisitCount       = "visit_count"
	logAttrReverse          = "reverse"
	logAttrDurationMS       = "duration_ms"
)

// Journal is an append-only record of error conditions with a bounded
// history ring, snapshot capture/restore semantics, and a read-only dump
// protocol.
//
// The zero value is not usable; construct a Journal with NewJournal. A new
// Journal starts empty: total and view are 0 and Current reports the
// CodeNone sentinel.
type Journal struct {
	mu    sync.Mutex
	ring  [Capacity]journal.Record
	total journal.Position
	view  journal.Position

	id               string
	logger           journal.Logger
	metricsCollector journal.MetricsCollector
	tracingCollector journal.TracingCollector
	contextualLogger journal.ContextualLogger
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
// The logger will receive messages at different levels based on the
// logger's configured level:
//
// Debug level: per-operation state transitions (development use)
// Info level: raise and dump completions with durations (production-safe)
// Warn level: misuse such as raising a reserved code
// Error level: unused by the journal itself, reserved for adapters.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
// The collector will receive operation durations, raise and eviction
// counters, and dump range sizes.
func WithMetrics(collector journal.MetricsCollector) Option {
	return func(j *Journal) error {
		j.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Journal.
// The collector will receive span creation for raise and dump operations,
// context propagation, and misuse tracking.
func WithTracing(collector journal.TracingCollector) Option {
	return func(j *Journal) error {
		j.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Journal.
// The contextual logger will receive log messages with context information
// including automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger journal.ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

// NewJournal creates an empty Journal with optional configuration.
func NewJournal(options ...Option) (*Journal, error) {
	j := &Journal{
		id: uuid.NewString(),
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// ID returns the instance identifier used as a label on this journal's
// logs, metrics, and spans.
func (j *Journal) ID() string {
	return j.id
}

// Raise appends a new record for the given code at position total+1 and
// makes it the current error. Both the position counter and the view
// position advance together.
//
// If the ring already holds Capacity records, the physically oldest slot is
// overwritten and its prior content becomes permanently unrecoverable; the
// eviction is silent, not a failure.
//
// Raise never fails. Raising a journal-reserved code (CodeNone or
// CodeHistoryLost) is misuse: the journal state is left unchanged, a
// warning is logged, and the zero Record is returned.
//
// The context carries observability correlation only.
func (j *Journal) Raise(ctx context.Context, code journal.Code, origin journal.Origin, message string) journal.Record {
	start := time.Now()
	ctx, span := j.startRaiseSpan(ctx, code)

	j.mu.Lock()
	record, buildErr := journal.BuildRecord(j.total+1, code, origin, message)
	if buildErr != nil {
		j.mu.Unlock()

		j.logWarn(ctx, logMsgRaiseRejected, logAttrError, buildErr.Error(), logAttrCode, code.String())
		j.recordRaiseRejected(ctx)
		j.finishSpanError(span, errorTypeReservedCode)

		return journal.Record{}
	}

	evicted := record.Position > Capacity
	j.ring[record.Position%Capacity] = record
	j.total = record.Position
	j.view = record.Position
	j.mu.Unlock()

	duration := time.Since(start)

	j.logOperation(ctx, logMsgRecordRaised,
		logAttrCode, code.String(),
		logAttrPosition, record.Position,
		logAttrDurationMS, j.toMilliseconds(duration))

	if evicted {
		j.logDebug(ctx, logMsgRecordEvicted, logAttrPosition, record.Position-Capacity)
	}

	j.recordRaiseSuccess(ctx, duration, evicted)
	j.finishRaiseSpanSuccess(span, record, duration)

	return record
}

// Current returns the record the journal presents as "the current error".
//
// With a view position of 0 (empty journal or freshly reset) it returns the
// CodeNone sentinel. With a view position whose detail has been evicted
// (only reachable after a Restore into an overwritten region) it returns
// the CodeHistoryLost sentinel carrying that position.
func (j *Journal) Current() journal.Record {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.lookupLocked(j.view)
}

// At returns the record for an arbitrary position.
//
// It resolves to the retained record when the position is within the ring,
// the CodeHistoryLost sentinel when the position was raised but its detail
// is gone, and the CodeNone sentinel when the position is 0 or was never
// raised. Dump visitors and diagnostic layers use it to fetch detail for a
// visited position.
func (j *Journal) At(position journal.Position) journal.Record {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.lookupLocked(position)
}

// Capture returns a snapshot of the current view position. It always
// succeeds.
func (j *Journal) Capture() journal.Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	return journal.Snapshot{CapturedPosition: j.view}
}

// Restore rolls the view position back to the snapshot.
//
// Backward-only rule: a snapshot ahead of the current view is ignored and
// the journal state is left unchanged - Restore can move the view strictly
// backward or leave it where it is, never forward. The position counter and
// the ring contents are unaffected either way; Restore changes only what is
// currently visible, not the log of what was raised.
func (j *Journal) Restore(s journal.Snapshot) {
	j.mu.Lock()

	if s.CapturedPosition > j.view {
		view := j.view
		j.mu.Unlock()

		j.logDebug(context.Background(), logMsgRestoreIgnored,
			logAttrSnapshotPosition, s.CapturedPosition,
			logAttrView, view)
		j.incrementCounter(metricRestoresIgnored, map[string]string{labelJournalID: j.id})

		return
	}

	j.view = s.CapturedPosition
	j.mu.Unlock()

	j.logDebug(context.Background(), logMsgViewRestored, logAttrView, s.CapturedPosition)
	j.incrementCounter(metricRestores, map[string]string{labelJournalID: j.id})
}

// IsEqual reports whether the snapshot observes the same journal state as
// the current view. Position equality is both necessary and sufficient:
// when detail behind a position has been evicted, both sides read back as
// the CodeHistoryLost sentinel.
func (j *Journal) IsEqual(s journal.Snapshot) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return s.CapturedPosition == j.view
}

// Reset unconditionally sets the view position to 0, clearing the current
// error to the CodeNone sentinel. The position counter and the ring
// contents are untouched, so a later Restore to a pre-reset snapshot is
// still meaningful.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.view = 0
	j.mu.Unlock()

	j.logDebug(context.Background(), logMsgViewReset)
	j.incrementCounter(metricResets, map[string]string{labelJournalID: j.id})
}

// Total returns the count of all raises since construction. It is
// non-decreasing; only Raise advances it.
func (j *Journal) Total() journal.Position {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.total
}

// lookupLocked resolves a position to its record. Callers must hold j.mu.
//
// A record for position p is retained iff the slot p mod Capacity still
// holds a record whose position is exactly p; a mismatch means the slot was
// reused by a newer raise (eviction, or an orphaned-future slot overwritten
// after a backward restore).
func (j *Journal) lookupLocked(position journal.Position) journal.Record {
	if position == 0 || position > j.total {
		return journal.NoneRecord()
	}

	record := j.ring[position%Capacity]
	if record.Position != position {
		return journal.HistoryLostRecord(position)
	}

	return record
}
