package burst

import "github.com/shiftscope/shiftscope/pkg/types"

// Metric names, one per windowing strategy. The max-session-gap1s-limit5s
// window is the standard layout-shift score definition; the others are the
// alternative windowings reported alongside it.
const (
	MetricAvgSessionGap5s        = "layout-shift-avg-session-gap5s"
	MetricMaxSessionGap1s        = "layout-shift-max-session-gap1s"
	MetricMaxSessionGap1sLimit5s = "layout-shift-max-session-gap1s-limit5s"
	MetricMaxSliding1s           = "layout-shift-max-sliding-1s"
	MetricMaxSliding300ms        = "layout-shift-max-sliding-300ms"
)

// Metric is one windowed burstiness score.
//
// Entries holds every qualifying event that contributed to the value since
// the metric was created, in arrival order. The list grows for the life of
// the page session.
type Metric struct {
	Name    string
	Value   float64
	Entries []types.ShiftEvent
}

// Delivery is the external reporting collaborator. The Monitor calls
// Deliver after every qualifying event and once, forced, after a
// hidden-page flush; the implementation owns change detection and decides
// whether anything is actually emitted.
type Delivery interface {
	// Arm binds the delivery mechanism to a metric set. Called once at
	// start and again with a fresh set on every bfcache restore.
	Arm(metrics []*Metric)

	// Deliver reports the current values. final marks the hidden-page
	// flush, after which no further events are expected for this page
	// unless it resumes.
	Deliver(final bool)
}
