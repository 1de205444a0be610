package window

import "github.com/shiftscope/shiftscope/pkg/types"

// Sliding reports the total shift magnitude inside a fixed trailing time
// window, anchored at the newest event.
//
// Events are kept in arrival order, which is non-decreasing StartTime order
// for well-formed input. Eviction only ever removes from the front, so the
// amortized cost per AddShift is O(1). The window total is maintained
// incrementally rather than re-summed.
type Sliding struct {
	limit  float64 // window duration in ms
	events []types.ShiftEvent
	total  float64
}

// NewSliding returns a Sliding windower covering the trailing limit
// milliseconds.
func NewSliding(limit float64) *Sliding {
	return &Sliding{limit: limit}
}

// AddShift evicts events older than limit relative to e, appends e, and
// returns the sum of magnitudes remaining in the window. An event exactly
// limit ms older than e is retained.
func (s *Sliding) AddShift(e types.ShiftEvent) float64 {
	for len(s.events) > 0 && e.StartTime-s.events[0].StartTime > s.limit {
		s.total -= s.events[0].Value
		s.events = s.events[1:]
	}
	s.events = append(s.events, e)
	s.total += e.Value
	return s.total
}

// Len returns the number of events currently inside the window.
func (s *Sliding) Len() int { return len(s.events) }
