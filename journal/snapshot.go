package journal

// Snapshot captures a journal's current view position at a point in time.
//
// It is a plain value: copy it freely, it holds no back-reference to the
// journal and outlives it safely. Two snapshots observe the same journal
// state iff their captured positions are equal; when detail behind a
// position has been evicted both read back as the CodeHistoryLost sentinel,
// so position equality suffices for equality of observable state.
//
// While its property is exported, it should only be constructed by
// Journal.Capture (or BuildSnapshot in test code).
type Snapshot struct {
	CapturedPosition Position
}

// BuildSnapshot is a factory method for Snapshot, intended for tests and
// diagnostic tooling that need a snapshot at an arbitrary position.
func BuildSnapshot(position Position) Snapshot {
	return Snapshot{CapturedPosition: position}
}
