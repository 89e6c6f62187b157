// Package pixelops provides the numeric pixel routines that produce errors
// for the journal: region fill, bad-pixel-mask editing, and statistics.
//
// Each routine is a single generic function over the Number constraint, so
// one implementation serves every pixel element type. Every failure
// condition is raised through the supplied Raiser before the error is
// returned to the caller; the journal is how failures are reported, the
// returned error is how control flow unwinds.
package pixelops
