package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiftscope/shiftscope/internal/alerts"
	"github.com/shiftscope/shiftscope/internal/burst"
	"github.com/shiftscope/shiftscope/internal/config"
	"github.com/shiftscope/shiftscope/internal/store"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// pageSnap builds a snapshot whose five metrics are derived from the given
// headline score, with entries qualifying events behind each.
func pageSnap(id string, score float64, entries int) *types.PageSnapshot {
	mv := func(name string, v float64) types.MetricValue {
		return types.MetricValue{Name: name, Value: v, Entries: entries}
	}
	return &types.PageSnapshot{
		SessionID: id,
		Page:      "/p",
		Score:     score,
		Rating:    types.RatingFor(score),
		Metrics: []types.MetricValue{
			mv(burst.MetricAvgSessionGap5s, score/2),
			mv(burst.MetricMaxSessionGap1s, score),
			mv(burst.MetricMaxSessionGap1sLimit5s, score),
			mv(burst.MetricMaxSliding1s, score),
			mv(burst.MetricMaxSliding300ms, score/2),
		},
	}
}

func newHandler(st *store.Store) http.Handler {
	return New(st, alerts.New(config.AlertsConfig{}))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealth_Empty(t *testing.T) {
	h := newHandler(store.New(5 * time.Minute))

	w := get(t, h, "/api/v1/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	decode(t, w, &resp)
	if resp.SessionCount != 0 || resp.Rating != types.RatingGood {
		t.Errorf("empty health = %+v", resp)
	}
}

func TestHealth_Distribution(t *testing.T) {
	st := store.New(5 * time.Minute)
	st.Put(pageSnap("a", 0.05, 3)) // good
	st.Put(pageSnap("b", 0.2, 3))  // needs-improvement
	st.Put(pageSnap("c", 0.4, 3))  // poor

	var resp HealthResponse
	decode(t, get(t, newHandler(st), "/api/v1/health"), &resp)

	if resp.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", resp.SessionCount)
	}
	if resp.GoodCount != 1 || resp.NeedsImprovementCount != 1 || resp.PoorCount != 1 {
		t.Errorf("distribution = %d/%d/%d, want 1/1/1",
			resp.GoodCount, resp.NeedsImprovementCount, resp.PoorCount)
	}
	want := (0.05 + 0.2 + 0.4) / 3
	if resp.AverageScore < want-1e-9 || resp.AverageScore > want+1e-9 {
		t.Errorf("AverageScore = %v, want %v", resp.AverageScore, want)
	}
}

func TestListSessions(t *testing.T) {
	st := store.New(5 * time.Minute)
	st.Put(pageSnap("a", 0.1, 1))
	st.Put(pageSnap("b", 0.3, 2))

	var resp []SessionResponse
	decode(t, get(t, newHandler(st), "/api/v1/sessions"), &resp)
	if len(resp) != 2 {
		t.Fatalf("sessions = %d, want 2", len(resp))
	}
}

func TestGetSession(t *testing.T) {
	st := store.New(5 * time.Minute)
	st.Put(pageSnap("sess-9", 0.3, 4))
	h := newHandler(st)

	var resp SessionResponse
	decode(t, get(t, h, "/api/v1/sessions/sess-9"), &resp)
	if resp.SessionID != "sess-9" || resp.Rating != types.RatingPoor {
		t.Errorf("got %+v", resp)
	}
	if len(resp.Metrics) != 5 {
		t.Errorf("metrics = %d, want 5", len(resp.Metrics))
	}

	if w := get(t, h, "/api/v1/sessions/unknown"); w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", w.Code)
	}
}

func TestSnapshot(t *testing.T) {
	st := store.New(5 * time.Minute)
	st.Put(pageSnap("a", 0.1, 1))

	var resp SnapshotResponse
	decode(t, get(t, newHandler(st), "/api/v1/snapshot"), &resp)
	if len(resp.Sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(resp.Sessions))
	}
	if resp.GeneratedAt == "" {
		t.Error("GeneratedAt empty")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHandler(store.New(5 * time.Minute))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

// --- diagnostics ------------------------------------------------------------

func hintKeys(hints []DiagnosticHint) []string {
	keys := make([]string, 0, len(hints))
	for _, h := range hints {
		keys = append(keys, h.Key)
	}
	return keys
}

func hasHint(hints []DiagnosticHint, key string) bool {
	for _, h := range hints {
		if h.Key == key {
			return true
		}
	}
	return false
}

func TestDiagnostics_NoShifts(t *testing.T) {
	hints := computeDiagnostics(pageSnap("a", 0, 0))
	if len(hints) != 1 || hints[0].Key != "no_shifts" {
		t.Errorf("hints = %v", hintKeys(hints))
	}
}

func TestDiagnostics_PoorStability(t *testing.T) {
	hints := computeDiagnostics(pageSnap("a", 0.4, 5))
	if !hasHint(hints, "poor_stability") {
		t.Errorf("missing poor_stability: %v", hintKeys(hints))
	}
	if hints[0].Level != "critical" {
		t.Errorf("first hint level = %q, want critical", hints[0].Level)
	}
}

func TestDiagnostics_SingleLargeShift(t *testing.T) {
	snap := pageSnap("a", 0.3, 1)
	// All of the score inside one 300 ms window.
	for i := range snap.Metrics {
		if snap.Metrics[i].Name == burst.MetricMaxSliding300ms {
			snap.Metrics[i].Value = 0.3
		}
	}
	hints := computeDiagnostics(snap)
	if !hasHint(hints, "single_large_shift") {
		t.Errorf("missing single_large_shift: %v", hintKeys(hints))
	}
}

func TestDiagnostics_IsolatedBursts(t *testing.T) {
	snap := pageSnap("a", 0.2, 10)
	// Average far below the worst session.
	for i := range snap.Metrics {
		if snap.Metrics[i].Name == burst.MetricAvgSessionGap5s {
			snap.Metrics[i].Value = 0.02
		}
	}
	hints := computeDiagnostics(snap)
	if !hasHint(hints, "isolated_bursts") {
		t.Errorf("missing isolated_bursts: %v", hintKeys(hints))
	}
}

func TestAlerts_EmptyEngine(t *testing.T) {
	h := newHandler(store.New(5 * time.Minute))

	w := get(t, h, "/api/v1/alerts")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp []alerts.Alert
	decode(t, w, &resp)
	if len(resp) != 0 {
		t.Errorf("alerts = %d, want 0", len(resp))
	}
}

func TestAlerts_FiringAlertExposed(t *testing.T) {
	engine := alerts.New(config.AlertsConfig{
		Rules: []config.AlertRule{
			{Name: "high-cls", Condition: "cls > 0.25", Severity: "critical"},
		},
	})
	engine.Evaluate(pageSnap("s1", 0.4, 3))

	h := New(store.New(5*time.Minute), engine)
	w := get(t, h, "/api/v1/alerts")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp []alerts.Alert
	decode(t, w, &resp)
	if len(resp) != 1 {
		t.Fatalf("alerts = %d, want 1", len(resp))
	}
	if resp[0].RuleName != "high-cls" || resp[0].State != "firing" {
		t.Errorf("unexpected alert: %+v", resp[0])
	}
}
