package report

import "github.com/shiftscope/shiftscope/internal/burst"

// OnReport receives an emitted metric set. final is true for the one forced
// delivery after a hidden-page flush. The slice is the live metric set —
// receivers must copy what they keep.
type OnReport func(metrics []*burst.Metric, final bool)

// Reporter is the change-detecting burst.Delivery implementation.
//
// Not safe for concurrent use; it is driven by the same goroutine that
// drives the monitor.
type Reporter struct {
	onReport  OnReport
	reportAll bool

	metrics  []*burst.Metric
	lastSent []float64
	sentOnce bool
}

// New returns a Reporter that forwards emissions to onReport.
//
// With reportAll false only the final delivery emits; with reportAll true
// every delivery that changed at least one value emits.
func New(onReport OnReport, reportAll bool) *Reporter {
	return &Reporter{onReport: onReport, reportAll: reportAll}
}

// Arm binds the reporter to a metric set and resets the change baseline.
func (r *Reporter) Arm(metrics []*burst.Metric) {
	r.metrics = metrics
	r.lastSent = make([]float64, len(metrics))
	r.sentOnce = false
}

// Deliver emits the current values if the policy allows it.
func (r *Reporter) Deliver(final bool) {
	if r.metrics == nil || r.onReport == nil {
		return
	}
	if !final && !r.reportAll {
		return
	}

	changed := !r.sentOnce
	for i, m := range r.metrics {
		if m.Value != r.lastSent[i] {
			changed = true
			break
		}
	}
	if !changed {
		return
	}

	for i, m := range r.metrics {
		r.lastSent[i] = m.Value
	}
	r.sentOnce = true
	r.onReport(r.metrics, final)
}
