package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shiftscope/shiftscope/internal/alerts"
	"github.com/shiftscope/shiftscope/internal/store"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// Handler is the HTTP handler for all /api/v1/* read endpoints.
// It reads session state from the snapshot store and returns JSON responses.
type Handler struct {
	store  *store.Store
	engine *alerts.Engine
	mux    *http.ServeMux
}

// New creates a Handler wired to the given snapshot store and alert engine,
// and registers all routes.
func New(st *store.Store, engine *alerts.Engine) http.Handler {
	h := &Handler{store: st, engine: engine, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/sessions", h.listSessions)
	h.mux.HandleFunc("/api/v1/sessions/", h.getSession) // subtree, extracts {id}
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)
	h.mux.HandleFunc("/api/v1/alerts", h.alerts)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — rating distribution across live sessions.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := HealthResponse{SessionCount: len(entries)}

	if len(entries) == 0 {
		resp.Rating = types.RatingGood
		jsonResp(w, http.StatusOK, resp)
		return
	}

	var total float64
	for _, e := range entries {
		total += e.Snapshot.Score
		switch e.Snapshot.Rating {
		case types.RatingGood:
			resp.GoodCount++
		case types.RatingNeedsImprovement:
			resp.NeedsImprovementCount++
		case types.RatingPoor:
			resp.PoorCount++
		}
	}
	resp.AverageScore = total / float64(len(entries))
	resp.Rating = types.RatingFor(resp.AverageScore)
	jsonResp(w, http.StatusOK, resp)
}

// listSessions returns GET /api/v1/sessions — all live sessions.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	out := make([]SessionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSessionResponse(e))
	}
	jsonResp(w, http.StatusOK, out)
}

// getSession returns GET /api/v1/sessions/{id} — a single live session.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/sessions/")
	if id == "" {
		// Redirect bare /api/v1/sessions/ to list handler.
		h.listSessions(w, r)
		return
	}

	e, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "session not found")
		return
	}
	// Exclude stale entries — treat them as not found.
	if time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "session not found")
		return
	}

	jsonResp(w, http.StatusOK, toSessionResponse(e))
}

// snapshot returns GET /api/v1/snapshot — full JSON dump of all live sessions.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildSnapshot(h.store))
}

// alerts returns GET /api/v1/alerts — firing alerts plus recently resolved ones.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.engine.Active())
}

// BuildSnapshot assembles the full snapshot response. Shared with the
// WebSocket hub so both surfaces stream the same schema.
func BuildSnapshot(st *store.Store) SnapshotResponse {
	entries := st.List()
	sessions := make([]SessionResponse, 0, len(entries))
	for _, e := range entries {
		sessions = append(sessions, toSessionResponse(e))
	}
	return SnapshotResponse{
		Sessions:    sessions,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// toSessionResponse maps a store.Entry to its JSON representation.
func toSessionResponse(e *store.Entry) SessionResponse {
	snap := e.Snapshot
	return SessionResponse{
		SessionID:   snap.SessionID,
		Page:        snap.Page,
		Score:       snap.Score,
		Rating:      snap.Rating,
		Final:       snap.Final,
		Metrics:     snap.Metrics,
		Diagnostics: computeDiagnostics(snap),
		LastSeen:    e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
