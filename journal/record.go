package journal

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrZeroRecordPosition = errors.New("record position must not be zero")
var ErrReservedCodeRaised = errors.New("reserved code must not be raised")

// MaxMessageLen is the byte bound for a record's formatted message.
// Oversized input is truncated deterministically, never rejected.
const MaxMessageLen = 256

// Origin is the textual triple describing where an error was raised.
// All fields may be empty.
type Origin struct {
	File     string
	Line     int
	Function string
}

// Here captures the caller's file, line, and function as an Origin.
// skip follows the runtime.Caller convention: 0 means the direct caller
// of Here.
func Here(skip int) Origin {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Origin{}
	}

	origin := Origin{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		origin.Function = fn.Name()
	}

	return origin
}

// IsZero reports whether the origin carries no location at all.
func (o Origin) IsZero() bool {
	return o.File == "" && o.Line == 0 && o.Function == ""
}

// String renders the origin as "file:line (function)", omitting empty parts.
func (o Origin) String() string {
	if o.IsZero() {
		return ""
	}

	location := fmt.Sprintf("%s:%d", o.File, o.Line)
	if o.Function == "" {
		return location
	}

	return fmt.Sprintf("%s (%s)", location, o.Function)
}

// Record is an immutable description of one raised error.
//
// It is created exactly once by a raise operation and destroyed only
// implicitly, when a newer record overwrites its history-ring slot.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildRecord
//   - NoneRecord
//   - HistoryLostRecord
type Record struct {
	Position Position
	Code     Code
	Origin   Origin
	Message  string
}

// BuildRecord is a factory method for Record.
//
// The message is truncated to MaxMessageLen bytes; truncation is never an
// error. Returns an error for the two misuse cases a raise operation must
// reject: a zero position and a journal-reserved code.
func BuildRecord(position Position, code Code, origin Origin, message string) (Record, error) {
	if position == 0 {
		return Record{}, ErrZeroRecordPosition
	}

	if code.IsReserved() {
		return Record{}, ErrReservedCodeRaised
	}

	if len(message) > MaxMessageLen {
		message = message[:MaxMessageLen]
	}

	return Record{
		Position: position,
		Code:     code,
		Origin:   origin,
		Message:  message,
	}, nil
}

// NoneRecord returns the sentinel record reported when no error is current.
func NoneRecord() Record {
	return Record{Code: CodeNone}
}

// HistoryLostRecord returns the sentinel record for a position whose detail
// has been evicted. The position itself is still conceptually meaningful and
// is carried through.
func HistoryLostRecord(position Position) Record {
	return Record{Position: position, Code: CodeHistoryLost}
}

// IsNone reports whether the record is the "no error" sentinel.
func (r Record) IsNone() bool {
	return r.Code == CodeNone
}

// IsHistoryLost reports whether the record is the evicted-detail sentinel.
func (r Record) IsHistoryLost() bool {
	return r.Code == CodeHistoryLost
}
