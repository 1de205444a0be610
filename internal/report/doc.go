// Package report implements the delivery side of the burst monitor.
//
// Reporter satisfies burst.Delivery. It owns the emit policy: unchanged
// values are never re-emitted, non-final deliveries only emit when the
// reporter was built with reportAllChanges, and a final (hidden-flush)
// delivery always emits the last word if anything changed since the
// previous emit. Re-arming against a fresh metric set resets the baseline.
package report
