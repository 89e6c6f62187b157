package pixelops

import (
	"context"
	"errors"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// Error codes raised by pixel operations. They start at
// journal.CodeDomainBase so they can never collide with the
// journal-reserved values.
const (
	CodeEmptyPixels      = journal.CodeDomainBase + iota // operation on an empty pixel slice
	CodeRegionOutOfBounds                                // fill region outside the pixel slice
	CodeMaskSizeMismatch                                 // mask length differs from pixel length
	CodeAllPixelsMasked                                  // statistics requested with every pixel flagged
)

var ErrEmptyPixels = errors.New("pixel slice is empty")
var ErrRegionOutOfBounds = errors.New("region is out of bounds")
var ErrMaskSizeMismatch = errors.New("mask length does not match pixel length")
var ErrAllPixelsMasked = errors.New("all pixels are masked")

// Raiser is the journal surface pixel operations need: raise an error and
// move on. *ringengine.Journal satisfies it.
type Raiser interface {
	Raise(ctx context.Context, code journal.Code, origin journal.Origin, message string) journal.Record
}

// Number constrains pixel element types to the numeric kinds the
// operations support.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
