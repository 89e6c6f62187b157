// Package ringengine implements the error-state journal on a fixed-capacity
// in-memory history ring.
//
// A Journal owns the ring, the position counter, and the current view
// position. Producers call Raise; recovery-oriented callers pair Capture
// with Restore to discard the errors of a failed attempt; diagnostic layers
// use Dump to replay everything raised since a snapshot.
//
// Records are physically indexed by position modulo Capacity. Once more
// than Capacity errors have been raised past a position, that position's
// detail is gone for good and lookups synthesize the CodeHistoryLost
// sentinel. The position counter itself never forgets how far it advanced.
//
// All operations take full exclusion on the journal, are synchronous, and
// complete their side effects before returning. The context parameters
// carry observability correlation only; no operation is cancellable.
package ringengine
