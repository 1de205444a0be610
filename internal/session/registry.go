package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry holds all live sessions, keyed by session ID.
// A background goroutine (Run) evicts sessions whose last beacon is older
// than the configured TTL.
type Registry struct {
	ttl       time.Duration
	reportAll bool
	sink      SnapshotSink
	now       func() time.Time // injectable for deterministic tests

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a Registry. Every snapshot emitted by any session's
// reporter is forwarded to sink.
func NewRegistry(ttl time.Duration, reportAll bool, sink SnapshotSink) *Registry {
	return &Registry{
		ttl:       ttl,
		reportAll: reportAll,
		sink:      sink,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first sight.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s = newSession(id, r.reportAll, r.sink)
	r.sessions[id] = s
	slog.Debug("session: created", "session", id)
	return s
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict removes sessions whose last beacon is older than now minus TTL.
// It returns the number of sessions removed.
func (r *Registry) Evict(now time.Time) int {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.seenBefore(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop, ticking at half the TTL
// interval (minimum 1 second). Blocks until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := r.Evict(now); n > 0 {
				slog.Debug("session: evicted idle sessions", "count", n)
			}
		}
	}
}
