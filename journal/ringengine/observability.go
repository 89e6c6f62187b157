package ringengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ray820328/errorstate-journal-go/journal"
)

const (
	metricRaiseDuration   = "journal.raise.duration"
	metricRaisesTotal     = "journal.raises.total"
	metricRaisesRejected  = "journal.raises.rejected"
	metricEvictions       = "journal.evictions.total"
	metricDumpDuration    = "journal.dump.duration"
	metricDumpVisits      = "journal.dump.visits"
	metricRestores        = "journal.restores.total"
	metricRestoresIgnored = "journal.restores.ignored"
	metricResets          = "journal.resets.total"

	spanNameRaise      = "journal.raise"
	spanNameDump       = "journal.dump"
	spanAttrOperation  = "operation"
	spanAttrCode       = "code"
	spanAttrPosition   = "position"
	spanAttrRangeFirst = "range_first"
	spanAttrRangeLast  = "range_last"
	spanAttrVisitCount = "visit_count"
	spanAttrReverse    = "reverse"
	spanAttrErrorType  = "error_type"
	spanAttrDurationMS = "duration_ms"

	operationRaise = "raise"
	operationDump  = "dump"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeReservedCode = "reserved_code"

	labelJournalID = "journal_id"
	labelStatus    = "status"
	labelOperation = "operation"
)

// logOperation logs operational information at info level on whichever
// loggers are configured.
func (j *Journal) logOperation(ctx context.Context, action string, args ...any) {
	if j.logger != nil {
		j.logger.Info(logMsgOperation+action, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logDebug logs state transitions at debug level on whichever loggers are
// configured.
func (j *Journal) logDebug(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, msg, args...)
	}
}

// logWarn logs misuse at warn level on whichever loggers are configured.
func (j *Journal) logWarn(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Warn(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (j *Journal) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// incrementCounter increments a counter if the metrics collector is configured.
func (j *Journal) incrementCounter(metric string, labels map[string]string) {
	if j.metricsCollector != nil {
		j.metricsCollector.IncrementCounter(metric, labels)
	}
}

// recordDurationContext records a duration metric with context if the
// collector supports it.
func (j *Journal) recordDurationContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelJournalID: j.id,
		labelOperation: operation,
		labelStatus:    status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := j.metricsCollector.(journal.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		j.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// incrementCounterContext increments a counter with context if the
// collector supports it.
func (j *Journal) incrementCounterContext(ctx context.Context, metricName, operation, status string) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelJournalID: j.id,
		labelOperation: operation,
		labelStatus:    status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := j.metricsCollector.(journal.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
	} else {
		j.metricsCollector.IncrementCounter(metricName, labels)
	}
}

// recordValueContext records a value metric with context if the collector
// supports it.
func (j *Journal) recordValueContext(ctx context.Context, metricName string, value float64, operation string) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelJournalID: j.id,
		labelOperation: operation,
	}

	// Use context-aware method if available
	if contextualCollector, ok := j.metricsCollector.(journal.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
	} else {
		j.metricsCollector.RecordValue(metricName, value, labels)
	}
}

// recordRaiseSuccess records all metrics for a completed raise.
func (j *Journal) recordRaiseSuccess(ctx context.Context, duration time.Duration, evicted bool) {
	j.recordDurationContext(ctx, metricRaiseDuration, duration, operationRaise, statusSuccess)
	j.incrementCounterContext(ctx, metricRaisesTotal, operationRaise, statusSuccess)

	if evicted {
		j.incrementCounterContext(ctx, metricEvictions, operationRaise, statusSuccess)
	}
}

// recordRaiseRejected records metrics for a raise rejected as misuse.
func (j *Journal) recordRaiseRejected(ctx context.Context) {
	j.incrementCounterContext(ctx, metricRaisesRejected, operationRaise, statusError)
}

// recordDumpCompleted records all metrics for a completed dump.
func (j *Journal) recordDumpCompleted(ctx context.Context, visitCount int, duration time.Duration) {
	j.recordDurationContext(ctx, metricDumpDuration, duration, operationDump, statusSuccess)
	j.recordValueContext(ctx, metricDumpVisits, float64(visitCount), operationDump)
}

// startRaiseSpan starts a tracing span for a raise operation.
func (j *Journal) startRaiseSpan(ctx context.Context, code journal.Code) (context.Context, journal.SpanContext) {
	if j.tracingCollector == nil {
		return ctx, nil
	}

	return j.tracingCollector.StartSpan(ctx, spanNameRaise, map[string]string{
		spanAttrOperation: operationRaise,
		spanAttrCode:      code.String(),
		labelJournalID:    j.id,
	})
}

// startDumpSpan starts a tracing span for a dump operation.
func (j *Journal) startDumpSpan(ctx context.Context, from journal.Snapshot, reverse bool) (context.Context, journal.SpanContext) {
	if j.tracingCollector == nil {
		return ctx, nil
	}

	return j.tracingCollector.StartSpan(ctx, spanNameDump, map[string]string{
		spanAttrOperation: operationDump,
		spanAttrReverse:   fmt.Sprintf("%t", reverse),
		labelJournalID:    j.id,
	})
}

// finishRaiseSpanSuccess finishes a successful raise span with results.
func (j *Journal) finishRaiseSpanSuccess(span journal.SpanContext, record journal.Record, duration time.Duration) {
	if j.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(statusSuccess)
	span.AddAttribute(spanAttrPosition, fmt.Sprintf("%d", record.Position))
	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", j.toMilliseconds(duration)))

	j.tracingCollector.FinishSpan(span, statusSuccess, map[string]string{
		spanAttrPosition: fmt.Sprintf("%d", record.Position),
	})
}

// finishDumpSpanSuccess finishes a successful dump span with range details.
func (j *Journal) finishDumpSpanSuccess(
	span journal.SpanContext,
	first, last journal.Position,
	visitCount int,
	duration time.Duration,
) {
	if j.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(statusSuccess)
	span.AddAttribute(spanAttrRangeFirst, fmt.Sprintf("%d", first))
	span.AddAttribute(spanAttrRangeLast, fmt.Sprintf("%d", last))
	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", j.toMilliseconds(duration)))

	j.tracingCollector.FinishSpan(span, statusSuccess, map[string]string{
		spanAttrVisitCount: fmt.Sprintf("%d", visitCount),
	})
}

// finishSpanError finishes a span with error details.
func (j *Journal) finishSpanError(span journal.SpanContext, errorType string) {
	if j.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(statusError)
	span.AddAttribute(spanAttrErrorType, errorType)

	j.tracingCollector.FinishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}
