package pixelops

import (
	"context"
	"fmt"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// FlagRange marks every mask entry in the half-open index range [lo, hi)
// as flagged (bad) or unflagged.
//
// An empty mask or a range outside the mask raises the matching code and
// returns the corresponding sentinel error, leaving the mask untouched.
func FlagRange(ctx context.Context, r Raiser, mask []bool, lo, hi int, flagged bool) error {
	if len(mask) == 0 {
		r.Raise(ctx, CodeEmptyPixels, journal.Here(1), "flag on empty mask")
		return ErrEmptyPixels
	}

	if lo < 0 || hi > len(mask) || lo > hi {
		r.Raise(ctx, CodeRegionOutOfBounds, journal.Here(1),
			fmt.Sprintf("flag region [%d, %d) outside mask of length %d", lo, hi, len(mask)))
		return ErrRegionOutOfBounds
	}

	for i := lo; i < hi; i++ {
		mask[i] = flagged
	}

	return nil
}

// ReplaceFlagged overwrites every pixel whose mask entry is flagged with
// value and reports how many pixels were replaced.
//
// A mask whose length differs from the pixel slice raises
// CodeMaskSizeMismatch and returns ErrMaskSizeMismatch without touching
// any pixel.
func ReplaceFlagged[T Number](ctx context.Context, r Raiser, pixels []T, mask []bool, value T) (int, error) {
	if len(mask) != len(pixels) {
		r.Raise(ctx, CodeMaskSizeMismatch, journal.Here(1),
			fmt.Sprintf("mask length %d does not match pixel length %d", len(mask), len(pixels)))
		return 0, ErrMaskSizeMismatch
	}

	replaced := 0
	for i, bad := range mask {
		if bad {
			pixels[i] = value
			replaced++
		}
	}

	return replaced, nil
}
