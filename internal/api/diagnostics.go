package api

import (
	"fmt"

	"github.com/shiftscope/shiftscope/internal/burst"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// DiagnosticHint is one human-readable insight about a session's layout
// stability. A dashboard displays these as chips on the session card;
// Detail is the full explanation shown on click/hover.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives diagnostic hints from a snapshot.
// Hints are ordered: critical first, then warnings, then info.
func computeDiagnostics(snap *types.PageSnapshot) []DiagnosticHint {
	var hints []DiagnosticHint

	byName := make(map[string]types.MetricValue, len(snap.Metrics))
	for _, m := range snap.Metrics {
		byName[m.Name] = m
	}

	if byName[burst.MetricMaxSessionGap1sLimit5s].Entries == 0 {
		hints = append(hints, DiagnosticHint{
			Key:   "no_shifts",
			Level: "ok",
			Title: "No shifts observed",
			Detail: "This session has not reported any unexpected layout shifts yet. " +
				"Shifts caused by recent user interaction are excluded, so an " +
				"interactive page can legitimately stay at zero.",
		})
		return hints
	}

	switch snap.Rating {
	case types.RatingPoor:
		v := snap.Score
		hints = append(hints, DiagnosticHint{
			Key:   "poor_stability",
			Level: "critical",
			Title: "Poor layout stability",
			Detail: fmt.Sprintf(
				"The worst 5-second burst of layout shifts scored %.3f, above the %.2f "+
					"threshold for a poor experience. Content is visibly jumping around. "+
					"Common causes: images or embeds without reserved dimensions, late-loading "+
					"fonts, and banners injected above existing content.",
				v, types.ThresholdPoor),
			Value: &v,
		})
	case types.RatingNeedsImprovement:
		v := snap.Score
		hints = append(hints, DiagnosticHint{
			Key:   "needs_improvement",
			Level: "warning",
			Title: "Layout stability could improve",
			Detail: fmt.Sprintf(
				"The worst shift burst scored %.3f — between the good (≤ %.2f) and poor "+
					"(> %.2f) thresholds. Users will notice occasional movement.",
				v, types.ThresholdGood, types.ThresholdPoor),
			Value: &v,
		})
	}

	// Most of the burst score inside a 300 ms window points at one big
	// jump rather than an accumulation of small shifts.
	if s300 := byName[burst.MetricMaxSliding300ms]; snap.Score > 0 && s300.Value >= 0.8*snap.Score {
		v := s300.Value
		hints = append(hints, DiagnosticHint{
			Key:   "single_large_shift",
			Level: "info",
			Title: "Single large shift",
			Detail: fmt.Sprintf(
				"%.0f%% of the worst burst happened inside one 300 ms window, so this is "+
					"one big jump rather than many small ones. Look for a single late-arriving "+
					"element pushing content down.",
				100*v/snap.Score),
			Value: &v,
		})
	}

	// A typical session far calmer than the worst one means the damage is
	// concentrated in a few moments, not spread across the visit.
	avg := byName[burst.MetricAvgSessionGap5s]
	if maxG := byName[burst.MetricMaxSessionGap1s]; maxG.Value > 0 && avg.Value <= maxG.Value/3 {
		v := avg.Value
		hints = append(hints, DiagnosticHint{
			Key:   "isolated_bursts",
			Level: "info",
			Title: "Isolated bursts",
			Detail: fmt.Sprintf(
				"The average shift session scored %.3f while the worst scored %.3f. Most of "+
					"the visit is stable; the instability is concentrated in short bursts, "+
					"often navigation or content-refresh moments.",
				avg.Value, maxG.Value),
			Value: &v,
		})
	}

	return hints
}
