package window

import (
	"testing"

	"github.com/shiftscope/shiftscope/pkg/types"
)

func TestSliding_EvictsOldEvents(t *testing.T) {
	s := NewSliding(300)

	steps := []struct {
		ev   types.ShiftEvent
		want float64
	}{
		{shift(0, 1), 1},
		{shift(200, 1), 2},    // 200-0 = 200 <= 300, both retained
		{shift(2000, 1), 1},   // both earlier events evicted
	}
	for i, st := range steps {
		got := s.AddShift(st.ev)
		if got != st.want {
			t.Errorf("step %d: AddShift = %.2f, want %.2f", i, got, st.want)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSliding_BoundaryInclusive(t *testing.T) {
	s := NewSliding(1000)
	s.AddShift(shift(0, 0.5))

	// Exactly limit ms apart — the old event stays in the window.
	got := s.AddShift(shift(1000, 0.25))
	if !almostEqual(got, 0.75, 1e-9) {
		t.Errorf("score at boundary = %.4f, want 0.75", got)
	}

	// One ms past the limit relative to the newest event evicts it.
	got = s.AddShift(shift(1001, 0.25))
	if !almostEqual(got, 0.5, 1e-9) {
		t.Errorf("score past boundary = %.4f, want 0.5", got)
	}
}

// The returned score must always equal the exact sum of values within limit
// ms of the newest event, inclusive.
func TestSliding_ScoreMatchesDirectSum(t *testing.T) {
	const limit = 1000
	s := NewSliding(limit)

	events := []types.ShiftEvent{
		shift(0, 0.1), shift(150, 0.2), shift(700, 0.05),
		shift(1100, 0.3), shift(1150, 0.01), shift(3000, 0.4),
		shift(3999, 0.02), shift(4001, 0.08),
	}

	for i, e := range events {
		got := s.AddShift(e)

		var want float64
		for _, prev := range events[:i+1] {
			if e.StartTime-prev.StartTime <= limit {
				want += prev.Value
			}
		}
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("event %d (t=%.0f): score = %.4f, want %.4f", i, e.StartTime, got, want)
		}
	}
}

func TestSliding_SingleEvent(t *testing.T) {
	s := NewSliding(300)
	if got := s.AddShift(shift(50, 0.12)); !almostEqual(got, 0.12, 1e-9) {
		t.Errorf("score = %.4f, want 0.12", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}
