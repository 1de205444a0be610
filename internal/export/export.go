package export

import (
	"net/http"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/shiftscope/shiftscope/internal/store"
)

// Handler serves the store contents as a Prometheus text exposition.
type Handler struct {
	store *store.Store
}

// New creates a /metrics handler backed by st.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// ServeHTTP writes all metric families in Prometheus text format.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	w.Header().Set("Content-Type", string(format))

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range h.families() {
		if err := enc.Encode(mf); err != nil {
			// Client went away mid-write. Nothing useful to do.
			return
		}
	}
}

// families builds the metric families from the current store contents.
// Family order and per-family sample order are deterministic so the
// exposition is stable across scrapes.
func (h *Handler) families() []*dto.MetricFamily {
	entries := h.store.List()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Snapshot.SessionID < entries[j].Snapshot.SessionID
	})

	shift := &dto.MetricFamily{
		Name: strPtr("shiftscope_layout_shift"),
		Help: strPtr("Layout shift score per aggregation window, labelled by session and page."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	score := &dto.MetricFamily{
		Name: strPtr("shiftscope_score"),
		Help: strPtr("Headline cumulative layout shift score per session."),
		Type: dto.MetricType_GAUGE.Enum(),
	}

	var total float64
	for _, e := range entries {
		snap := e.Snapshot
		for _, mv := range snap.Metrics {
			shift.Metric = append(shift.Metric, &dto.Metric{
				Label: []*dto.LabelPair{
					labelPair("window", mv.Name),
					labelPair("session", snap.SessionID),
					labelPair("page", snap.Page),
				},
				Gauge: &dto.Gauge{Value: floatPtr(mv.Value)},
			})
		}
		score.Metric = append(score.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				labelPair("session", snap.SessionID),
				labelPair("page", snap.Page),
				labelPair("rating", snap.Rating),
			},
			Gauge: &dto.Gauge{Value: floatPtr(snap.Score)},
		})
		total += snap.Score
	}

	sessions := &dto.MetricFamily{
		Name: strPtr("shiftscope_sessions"),
		Help: strPtr("Number of active sessions in the store."),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: floatPtr(float64(len(entries)))}},
		},
	}

	avg := 0.0
	if len(entries) > 0 {
		avg = total / float64(len(entries))
	}
	avgScore := &dto.MetricFamily{
		Name: strPtr("shiftscope_score_avg"),
		Help: strPtr("Average headline score across active sessions."),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: floatPtr(avg)}},
		},
	}

	out := []*dto.MetricFamily{sessions, avgScore}
	if len(score.Metric) > 0 {
		out = append(out, score)
	}
	if len(shift.Metric) > 0 {
		out = append(out, shift)
	}
	return out
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: strPtr(name), Value: strPtr(value)}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
