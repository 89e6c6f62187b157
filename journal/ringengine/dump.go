package ringengine

import (
	"context"
	"time"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// VisitFunc is invoked once per visited position during a Dump.
//
// self is the position being visited; first and last are the fixed
// endpoints of the whole traversal, in traversal order: for an ascending
// dump first < last, for a descending dump first > last, so a visitor can
// detect direction and bounds from any single call. Consecutive calls'
// self values differ by exactly one in the traversal direction.
//
// The empty range is signalled by exactly one call with (0, 0, 0).
type VisitFunc func(self, first, last journal.Position)

// journalState is the immutable copy of all mutable journal fields taken
// before a dump traversal and written back verbatim afterwards.
type journalState struct {
	ring  [Capacity]journal.Record
	total journal.Position
	view  journal.Position
}

// Dump replays the positions strictly greater than the snapshot's captured
// position up to the current view position, driving the visitor once per
// position - ascending when reverse is false, descending when true. An
// empty range (including a snapshot ahead of the view) produces exactly one
// sentinel call with (0, 0, 0).
//
// Positions whose detail has been evicted are still visited; fetching their
// detail through At resolves to the CodeHistoryLost sentinel.
//
// Isolation guarantee: the traversal bounds and the journal's mutable state
// are copied before the first visit and written back verbatim after the
// last one. A visitor may call Raise, Restore, or Reset on the live
// journal; those calls take effect during the traversal but are undone
// before Dump returns, so Dump is observably read-only from the caller's
// perspective.
//
// Dump is synchronous and not cancellable; the context carries
// observability correlation only. A visitor that never returns hangs Dump
// - that is a caller contract violation, not a journal failure mode.
func (j *Journal) Dump(ctx context.Context, from journal.Snapshot, reverse bool, visit VisitFunc) {
	start := time.Now()
	ctx, span := j.startDumpSpan(ctx, from, reverse)

	j.mu.Lock()
	saved := journalState{
		ring:  j.ring,
		total: j.total,
		view:  j.view,
	}
	j.mu.Unlock()

	lo := from.CapturedPosition + 1
	hi := saved.view

	var first, last journal.Position
	visitCount := 0

	switch {
	case lo > hi:
		visit(0, 0, 0)
		visitCount = 1

	case reverse:
		first, last = hi, lo
		for self := hi; self >= lo; self-- {
			visit(self, first, last)
			visitCount++
		}

	default:
		first, last = lo, hi
		for self := lo; self <= hi; self++ {
			visit(self, first, last)
			visitCount++
		}
	}

	// Undo any visitor mutation: the live journal must read back exactly
	// as it did before the first visit.
	j.mu.Lock()
	j.ring = saved.ring
	j.total = saved.total
	j.view = saved.view
	j.mu.Unlock()

	duration := time.Since(start)

	j.logOperation(ctx, logMsgDumpCompleted,
		logAttrRangeFirst, first,
		logAttrRangeLast, last,
		logAttrVisitCount, visitCount,
		logAttrReverse, reverse,
		logAttrDurationMS, j.toMilliseconds(duration))

	j.recordDumpCompleted(ctx, visitCount, duration)
	j.finishDumpSpanSuccess(span, first, last, visitCount, duration)
}
