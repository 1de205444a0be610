package types

// ShiftEvent is one layout-shift occurrence reported by a page.
//
// StartTime is a monotonic timestamp in milliseconds relative to the page's
// time origin. Value is the non-negative shift magnitude. Events within a
// beacon batch arrive in non-decreasing StartTime order; the collector does
// not reorder them.
type ShiftEvent struct {
	// StartTime is milliseconds since the page's time origin.
	StartTime float64 `json:"startTime"`

	// Value is the layout-shift score contribution of this event.
	Value float64 `json:"value"`

	// HadRecentInput marks shifts caused by recent user interaction.
	// Such events are excluded from every windowed metric.
	HadRecentInput bool `json:"hadRecentInput"`
}

// MetricValue is one reported windowed metric within a PageSnapshot.
type MetricValue struct {
	// Name identifies the windowing strategy, e.g.
	// "layout-shift-max-session-gap1s-limit5s".
	Name string `json:"name"`

	// Value is the current score for this window strategy.
	Value float64 `json:"value"`

	// Entries is the number of qualifying shift events that contributed.
	Entries int `json:"entries"`
}

// Rating buckets for the standard layout-shift score, per the Core Web
// Vitals thresholds.
const (
	RatingGood             = "good"
	RatingNeedsImprovement = "needs-improvement"
	RatingPoor             = "poor"
)

// CLS rating thresholds.
const (
	ThresholdGood = 0.1
	ThresholdPoor = 0.25
)

// PageSnapshot is the latest reported metric set for one page session.
type PageSnapshot struct {
	SessionID string `json:"session_id"`

	// Page is the URL (or logical name) the session reported for itself.
	Page string `json:"page,omitempty"`

	// Metrics holds all five windowed burstiness scores.
	Metrics []MetricValue `json:"metrics"`

	// Score is the standard layout-shift score: the value of the
	// max-session-gap1s-limit5s window.
	Score float64 `json:"score"`

	// Rating is "good", "needs-improvement" or "poor", derived from Score.
	Rating string `json:"rating"`

	// Final is true when this snapshot was produced by a hidden-page flush,
	// i.e. it is the last word for this session unless the page resumes.
	Final bool `json:"final"`
}

// RatingFor maps a layout-shift score to its rating bucket.
func RatingFor(score float64) string {
	switch {
	case score <= ThresholdGood:
		return RatingGood
	case score <= ThresholdPoor:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}
