package api

import "github.com/shiftscope/shiftscope/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	SessionCount          int     `json:"session_count"`
	GoodCount             int     `json:"good_count"`
	NeedsImprovementCount int     `json:"needs_improvement_count"`
	PoorCount             int     `json:"poor_count"`
	AverageScore          float64 `json:"average_score"`
	Rating                string  `json:"rating"`
}

// SessionResponse is one session entry in GET /api/v1/sessions or
// GET /api/v1/sessions/{id}.
type SessionResponse struct {
	SessionID   string              `json:"session_id"`
	Page        string              `json:"page,omitempty"`
	Score       float64             `json:"score"`
	Rating      string              `json:"rating"`
	Final       bool                `json:"final"`
	Metrics     []types.MetricValue `json:"metrics"`
	Diagnostics []DiagnosticHint    `json:"diagnostics"`
	LastSeen    string              `json:"last_seen"` // RFC3339
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the body of
// each WebSocket broadcast.
type SnapshotResponse struct {
	Sessions    []SessionResponse `json:"sessions"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
