// Package journal provides core types for the append-only error-state
// journal.
//
// This package defines the value types shared by journal engines and their
// consumers (error codes, records, origins, snapshots) as well as
// dependency-free observability interfaces that engines accept via options.
//
// The journal records every error a library operation raises, addressed by
// a 1-based, monotonically increasing position. Only the detail of the most
// recent positions is retained; older detail is evicted under capacity
// pressure while the position account stays consistent.
//
// Key types:
//   - Code: enumerated error kind, with the reserved values CodeNone and
//     CodeHistoryLost
//   - Record: immutable description of one raised error
//   - Snapshot: a saved view position usable for equality checks and
//     backward restore
//
// Common usage pattern:
//
//	j, err := ringengine.NewJournal()
//	if err != nil {
//		// handle error
//	}
//
//	before := j.Capture()
//	if opErr := riskyOperation(j); opErr != nil {
//		// inspect what went wrong
//		rec := j.Current()
//		_ = rec
//	} else {
//		// discard any errors the attempt produced
//		j.Restore(before)
//	}
package journal
