// Package report renders journal dump ranges for operators: structured log
// output for humans and JSON export for machine-readable diagnostics.
//
// A position whose detail was evicted renders as HISTORY_LOST, clearly
// separated from real domain errors, so capacity pressure is never mistaken
// for a reoccurring failure.
package report

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/ray820328/errorstate-journal-go/journal"
	"github.com/ray820328/errorstate-journal-go/journal/ringengine"
)

var ErrEncodingReportFailed = errors.New("encoding journal report failed")

const (
	logMsgNothingToReport = "no errors since snapshot"
	logMsgHistoryLost     = "error detail evicted by capacity pressure (HISTORY_LOST)"
	logMsgErrorRaised     = "error raised"
	logAttrPosition       = "position"
	logAttrRangeFirst     = "range_first"
	logAttrRangeLast      = "range_last"
	logAttrCode           = "code"
	logAttrOrigin         = "origin"
	logAttrMessage        = "message"
)

// Source is the journal surface a report needs: range replay plus
// per-position detail lookup. *ringengine.Journal satisfies it.
type Source interface {
	Dump(ctx context.Context, from journal.Snapshot, reverse bool, visit ringengine.VisitFunc)
	At(position journal.Position) journal.Record
}

// Printer writes a human-readable rendering of a dump range to a
// contextual logger.
type Printer struct {
	logger journal.ContextualLogger
}

// NewPrinter creates a Printer writing to the given contextual logger.
func NewPrinter(logger journal.ContextualLogger) *Printer {
	return &Printer{logger: logger}
}

// Print replays everything raised since the snapshot in ascending order
// and logs one line per position. Evicted positions log at warn level as
// HISTORY_LOST; retained records log at error level with their full
// detail; an empty range logs a single info line.
func (p *Printer) Print(ctx context.Context, source Source, from journal.Snapshot) {
	source.Dump(ctx, from, false, func(self, first, last journal.Position) {
		if self == 0 {
			p.logger.InfoContext(ctx, logMsgNothingToReport)
			return
		}

		record := source.At(self)
		if record.IsHistoryLost() {
			p.logger.WarnContext(ctx, logMsgHistoryLost,
				logAttrPosition, self,
				logAttrRangeFirst, first,
				logAttrRangeLast, last)
			return
		}

		p.logger.ErrorContext(ctx, logMsgErrorRaised,
			logAttrPosition, self,
			logAttrCode, record.Code.String(),
			logAttrOrigin, record.Origin.String(),
			logAttrMessage, record.Message)
	})
}

// Entry is one position of an exported dump range.
type Entry struct {
	Position    journal.Position `json:"position"`
	Code        uint32           `json:"code"`
	CodeName    string           `json:"code_name"`
	HistoryLost bool             `json:"history_lost"`
	Origin      string           `json:"origin,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Export replays everything raised since the snapshot in ascending order
// and returns it as a JSON array. An empty range exports as an empty
// array, not the (0,0,0) sentinel.
func Export(ctx context.Context, source Source, from journal.Snapshot) ([]byte, error) {
	entries := make([]Entry, 0)

	source.Dump(ctx, from, false, func(self, _, _ journal.Position) {
		if self == 0 {
			return
		}

		record := source.At(self)
		entries = append(entries, Entry{
			Position:    self,
			Code:        uint32(record.Code),
			CodeName:    record.Code.String(),
			HistoryLost: record.IsHistoryLost(),
			Origin:      record.Origin.String(),
			Message:     record.Message,
		})
	})

	data, marshalErr := jsoniter.ConfigFastest.Marshal(entries)
	if marshalErr != nil {
		return nil, errors.Join(ErrEncodingReportFailed, marshalErr)
	}

	return data, nil
}
