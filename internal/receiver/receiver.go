package receiver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/shiftscope/shiftscope/internal/session"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// Beacon is the JSON body of one POST /api/v1/beacon request.
type Beacon struct {
	SessionID string             `json:"session_id"`
	Page      string             `json:"page,omitempty"`
	Events    []types.ShiftEvent `json:"events"`

	// Hidden marks a pagehide/visibility-hidden flush; the batch in this
	// beacon is the final word for the session unless it resumes.
	Hidden bool `json:"hidden,omitempty"`

	// Restored marks a back/forward-cache restore that happened before
	// this batch's events.
	Restored bool `json:"restored,omitempty"`
}

// Receiver is the HTTP handler for beacon intake.
type Receiver struct {
	reg     *session.Registry
	maxBody int64
	now     func() time.Time // injectable for deterministic tests
}

// New creates a Receiver routing accepted beacons into reg. Bodies larger
// than maxBody are rejected.
func New(reg *session.Registry, maxBody int64) *Receiver {
	return &Receiver{reg: reg, maxBody: maxBody, now: time.Now}
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var b Beacon
	body := http.MaxBytesReader(w, r.Body, rc.maxBody)
	if err := json.NewDecoder(body).Decode(&b); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid beacon body")
		return
	}
	if b.SessionID == "" {
		jsonErr(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if err := validateEvents(b.Events); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	rc.reg.Get(b.SessionID).HandleBeacon(b.Page, b.Events, b.Restored, b.Hidden, rc.now())

	slog.Debug("receiver: beacon accepted",
		"session", b.SessionID,
		"events", len(b.Events),
		"hidden", b.Hidden,
		"restored", b.Restored,
	)
	jsonResp(w, http.StatusAccepted, map[string]bool{"ok": true})
}

// validateEvents rejects batches the windowing core is not defined over:
// non-finite or negative magnitudes, and timestamps that go backwards
// within the batch.
func validateEvents(events []types.ShiftEvent) error {
	prev := math.Inf(-1)
	for i, e := range events {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) || e.Value < 0 {
			return fmt.Errorf("events[%d]: value must be finite and non-negative", i)
		}
		if math.IsNaN(e.StartTime) || math.IsInf(e.StartTime, 0) || e.StartTime < 0 {
			return fmt.Errorf("events[%d]: startTime must be finite and non-negative", i)
		}
		if e.StartTime < prev {
			return fmt.Errorf("events[%d]: startTime moves backwards", i)
		}
		prev = e.StartTime
	}
	return nil
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, map[string]string{"error": msg})
}
