package window

import (
	"math"

	"github.com/shiftscope/shiftscope/pkg/types"
)

// NoLimit is the session duration bound for an unbounded session window.
func NoLimit() float64 { return math.Inf(1) }

// Session groups consecutive shift events into gap-separated sessions and
// tracks the score of the current, still-open session.
//
// A session ends when the idle gap since the previous event exceeds Gap, or
// when the elapsed time since the session's first event exceeds Limit. The
// bounds are evaluated against the existing session state before the new
// event is incorporated.
type Session struct {
	gap   float64 // max idle ms between consecutive events
	limit float64 // max total session duration ms; +Inf if unbounded

	firstTimestamp    float64
	previousTimestamp float64
	currentScore      float64
}

// NewSession returns a Session windower with the given gap and total
// duration bounds, both in milliseconds. Use NoLimit() for an unbounded
// duration.
func NewSession(gap, limit float64) *Session {
	return &Session{gap: gap, limit: limit}
}

// AddShift folds one event into the window.
//
// closed is the score of the session that ended on this call, or 0 when no
// session closed. A genuinely zero-scoring session is indistinguishable
// from "no close"; callers treat 0 as nothing-to-fold, which is harmless
// because the fold operations ignore zero contributions.
//
// current is the updated score of the (possibly fresh) open session.
func (s *Session) AddShift(e types.ShiftEvent) (closed, current float64) {
	idleGap := e.StartTime - s.previousTimestamp
	sessionAge := e.StartTime - s.firstTimestamp

	if idleGap > s.gap || sessionAge > s.limit {
		closed = s.currentScore
		s.firstTimestamp = e.StartTime
		s.currentScore = 0
	}

	s.previousTimestamp = e.StartTime
	s.currentScore += e.Value
	return closed, s.currentScore
}

// CurrentScore returns the score of the open session without mutating state.
func (s *Session) CurrentScore() float64 { return s.currentScore }
