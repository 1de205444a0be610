package session

import (
	"sync"
	"time"

	"github.com/shiftscope/shiftscope/internal/burst"
	"github.com/shiftscope/shiftscope/internal/ingest"
	"github.com/shiftscope/shiftscope/internal/report"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// SnapshotSink receives every snapshot a session's reporter emits.
// Implementations must be safe for concurrent use — different sessions
// report from different goroutines.
type SnapshotSink func(*types.PageSnapshot)

// Session is one observed page session: a monitor, its event buffer and
// its reporter, all driven under one mutex.
type Session struct {
	id string

	mu       sync.Mutex
	page     string
	buf      *ingest.Buffer
	mon      *burst.Monitor
	lastSeen time.Time
}

// newSession wires buffer → monitor → reporter → sink for one session ID.
func newSession(id string, reportAll bool, sink SnapshotSink) *Session {
	s := &Session{id: id, buf: ingest.NewBuffer()}

	rep := report.New(func(metrics []*burst.Metric, final bool) {
		sink(s.snapshot(metrics, final))
	}, reportAll)
	s.mon = burst.New(s.buf, rep)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// HandleBeacon applies one decoded beacon: restore first (a bfcache
// restore precedes any shifts the resumed page produced), then the event
// batch, then the hidden flush (a pagehide beacon carries its events
// alongside the signal).
func (s *Session) HandleBeacon(page string, events []types.ShiftEvent, restored, hidden bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page != "" {
		s.page = page
	}
	s.lastSeen = now

	if restored {
		s.mon.OnRestore()
	}
	for _, e := range events {
		s.buf.Push(e)
	}
	s.buf.Dispatch()
	if hidden {
		s.mon.OnHidden()
	}
}

// snapshot converts the live metric set into a PageSnapshot. Called from
// the reporter while s.mu is held by the event-processing path, so the
// metric values are consistent.
func (s *Session) snapshot(metrics []*burst.Metric, final bool) *types.PageSnapshot {
	snap := &types.PageSnapshot{
		SessionID: s.id,
		Page:      s.page,
		Metrics:   make([]types.MetricValue, 0, len(metrics)),
		Final:     final,
	}
	for _, m := range metrics {
		snap.Metrics = append(snap.Metrics, types.MetricValue{
			Name:    m.Name,
			Value:   m.Value,
			Entries: len(m.Entries),
		})
		if m.Name == burst.MetricMaxSessionGap1sLimit5s {
			snap.Score = m.Value
		}
	}
	snap.Rating = types.RatingFor(snap.Score)
	return snap
}

// seenBefore reports whether the session's last beacon predates cutoff.
func (s *Session) seenBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastSeen.After(cutoff)
}
