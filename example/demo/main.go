// Demo wires a journal with full observability and walks through the
// error-recovery workflow: capture a snapshot, run pixel operations that
// raise errors, report everything since the snapshot, then restore.
//
// Run with:
//
//	go run ./example/demo
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/ray820328/errorstate-journal-go/journal"
	"github.com/ray820328/errorstate-journal-go/journal/oteladapters"
	"github.com/ray820328/errorstate-journal-go/journal/ringengine"
	"github.com/ray820328/errorstate-journal-go/pixelops"
	"github.com/ray820328/errorstate-journal-go/report"
)

func main() {
	ctx := context.Background()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	j, err := ringengine.NewJournal(ringengine.WithContextualLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create journal: %v", err)
	}

	log.Printf("journal %s ready, capacity %d", j.ID(), ringengine.Capacity)

	// Snapshot the clean state so everything below can be replayed or
	// discarded relative to it.
	before := j.Capture()

	pixels := []float64{12.5, 13.1, 980.0, 12.9, 13.4, 12.7}
	mask := make([]bool, len(pixels))

	// Flag the cosmic-ray hit and patch it.
	if err = pixelops.FlagRange(ctx, j, mask, 2, 3, true); err != nil {
		log.Fatalf("flagging failed: %v", err)
	}
	if _, err = pixelops.ReplaceFlagged(ctx, j, pixels, mask, 13.0); err != nil {
		log.Fatalf("patching failed: %v", err)
	}

	// Two deliberate mistakes so the journal has something to say.
	_ = pixelops.Fill(ctx, j, pixels, 4, 99, 0)
	_, _ = pixelops.Stats(ctx, j, pixels, mask[:2])

	summary, err := pixelops.Stats(ctx, j, pixels, mask)
	if err != nil {
		log.Fatalf("statistics failed: %v", err)
	}
	log.Printf("pixel summary: count=%d mean=%.2f stddev=%.2f", summary.Count, summary.Mean, summary.StdDev)

	// Everything raised since the snapshot, human-readable and as JSON.
	printer := report.NewPrinter(logger)
	printer.Print(ctx, j, before)

	exported, err := report.Export(ctx, j, before)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported dump: %s", exported)

	// The workflow handled its errors; roll the view back to the clean
	// state. The history itself stays for later dumps.
	j.Restore(before)

	if current := j.Current(); current.IsNone() {
		log.Printf("journal restored, %d records still in history", j.Total())
	}

	demoHistoryPressure(ctx, j)
}

// demoHistoryPressure raises more errors than the ring retains and shows
// how evicted positions surface as HISTORY_LOST.
func demoHistoryPressure(ctx context.Context, j *ringengine.Journal) {
	first := j.Raise(ctx, pixelops.CodeRegionOutOfBounds, journal.Here(0), "the one that will be evicted")

	for i := 0; i < ringengine.Capacity; i++ {
		j.Raise(ctx, pixelops.CodeRegionOutOfBounds, journal.Origin{}, "filler error")
	}

	lost := j.At(first.Position)
	log.Printf("position %d after capacity pressure: %s", first.Position, lost.Code)
}
