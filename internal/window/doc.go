// Package window implements the two windowing strategies the burst monitor
// folds layout-shift events into.
//
// Session accumulates magnitudes into a running session score and starts a
// new session when the idle gap between consecutive events, or the total
// session duration, exceeds its configured bounds.
//
// Sliding keeps a time-ordered queue of the most recent events and reports
// the sum of magnitudes inside a fixed trailing duration.
//
// Both windowers work on millisecond float64 timestamps as produced by the
// browser performance timeline, not time.Time — the collector never converts
// page-relative timestamps to wall-clock time.
//
// Neither type is safe for concurrent use; callers serialize access
// (see internal/session).
package window
