package journal

import (
	"fmt"
)

// Position is a type alias for uint, the 1-based monotonically increasing
// index of a raised error. Position 0 means "nothing raised / no error".
type Position = uint

// Code is an enumerated error kind. The journal stores and returns codes
// without interpreting them; only the reserved values below have meaning to
// the journal itself.
type Code uint32

const (
	// CodeNone denotes "no error is current". It is never stored in a
	// record raised by a producer.
	CodeNone Code = 0

	// CodeHistoryLost marks a position whose record logically exists but
	// whose detail has been evicted from the history ring. It is only
	// synthesized by lookups, never raised by producers.
	CodeHistoryLost Code = 1

	// CodeDomainBase is the first value available to producer packages.
	// Values below it are reserved for the journal.
	CodeDomainBase Code = 100
)

// IsReserved reports whether the code belongs to the journal-reserved range
// and therefore must not be raised by producers.
func (c Code) IsReserved() bool {
	return c < CodeDomainBase
}

// String returns a readable representation of the code. Domain codes are
// opaque to the journal and render with their numeric value.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "NONE"
	case CodeHistoryLost:
		return "HISTORY_LOST"
	default:
		return fmt.Sprintf("CODE(%d)", uint32(c))
	}
}
