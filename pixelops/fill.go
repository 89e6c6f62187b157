package pixelops

import (
	"context"
	"fmt"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// Fill sets every pixel in the half-open index range [lo, hi) to value.
//
// An empty slice or a range outside the slice raises the matching code on
// the journal and returns the corresponding sentinel error; the pixels are
// left untouched in that case.
func Fill[T Number](ctx context.Context, r Raiser, pixels []T, lo, hi int, value T) error {
	if len(pixels) == 0 {
		r.Raise(ctx, CodeEmptyPixels, journal.Here(1), "fill on empty pixel slice")
		return ErrEmptyPixels
	}

	if lo < 0 || hi > len(pixels) || lo > hi {
		r.Raise(ctx, CodeRegionOutOfBounds, journal.Here(1),
			fmt.Sprintf("fill region [%d, %d) outside pixel slice of length %d", lo, hi, len(pixels)))
		return ErrRegionOutOfBounds
	}

	for i := lo; i < hi; i++ {
		pixels[i] = value
	}

	return nil
}
