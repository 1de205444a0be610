// Package api implements the collector's REST surface under /api/v1/.
//
// Endpoints:
//
//	GET /api/v1/health        — session counts, rating distribution, avg score
//	GET /api/v1/sessions      — latest snapshot per live session
//	GET /api/v1/sessions/{id} — one session's latest snapshot
//	GET /api/v1/snapshot      — full dump, same schema the WebSocket hub streams
//	GET /api/v1/alerts        — firing alerts plus recently resolved ones
//
// Each session response carries diagnostics: short plain-language hints
// derived from the five windowed metrics, for rendering as chips in a
// dashboard.
package api
