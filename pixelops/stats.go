package pixelops

import (
	"context"
	"fmt"
	"math"

	"github.com/ray820328/errorstate-journal-go/journal"
)

// Summary holds the statistics of the unmasked pixels of a slice.
type Summary struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Stats computes count, mean, min, max, and standard deviation over the
// pixels whose mask entry is not flagged. A nil mask means every pixel is
// good.
//
// Failure conditions raise through the journal and return the sentinel
// error with a zero Summary: an empty slice, a mask length mismatch, or a
// mask that flags every pixel.
func Stats[T Number](ctx context.Context, r Raiser, pixels []T, mask []bool) (Summary, error) {
	if len(pixels) == 0 {
		r.Raise(ctx, CodeEmptyPixels, journal.Here(1), "statistics on empty pixel slice")
		return Summary{}, ErrEmptyPixels
	}

	if mask != nil && len(mask) != len(pixels) {
		r.Raise(ctx, CodeMaskSizeMismatch, journal.Here(1),
			fmt.Sprintf("mask length %d does not match pixel length %d", len(mask), len(pixels)))
		return Summary{}, ErrMaskSizeMismatch
	}

	var sum, sumSquares float64
	summary := Summary{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}

	for i, pixel := range pixels {
		if mask != nil && mask[i] {
			continue
		}

		v := float64(pixel)
		sum += v
		sumSquares += v * v
		summary.Min = math.Min(summary.Min, v)
		summary.Max = math.Max(summary.Max, v)
		summary.Count++
	}

	if summary.Count == 0 {
		r.Raise(ctx, CodeAllPixelsMasked, journal.Here(1),
			fmt.Sprintf("all %d pixels are masked", len(pixels)))
		return Summary{}, ErrAllPixelsMasked
	}

	n := float64(summary.Count)
	summary.Mean = sum / n

	// Population variance; clamp tiny negative values from floating point
	// cancellation.
	variance := sumSquares/n - summary.Mean*summary.Mean
	if variance < 0 {
		variance = 0
	}
	summary.StdDev = math.Sqrt(variance)

	return summary, nil
}
