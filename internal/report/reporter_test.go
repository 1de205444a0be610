package report

import (
	"testing"

	"github.com/shiftscope/shiftscope/internal/burst"
)

type emit struct {
	values []float64
	final  bool
}

func recorder() (*[]emit, OnReport) {
	var emits []emit
	return &emits, func(metrics []*burst.Metric, final bool) {
		vals := make([]float64, len(metrics))
		for i, m := range metrics {
			vals[i] = m.Value
		}
		emits = append(emits, emit{values: vals, final: final})
	}
}

func testMetrics() []*burst.Metric {
	return []*burst.Metric{
		{Name: burst.MetricAvgSessionGap5s},
		{Name: burst.MetricMaxSessionGap1s},
	}
}

func TestReporter_FinalOnlyByDefault(t *testing.T) {
	emits, on := recorder()
	r := New(on, false)
	metrics := testMetrics()
	r.Arm(metrics)

	metrics[0].Value = 0.1
	r.Deliver(false)
	r.Deliver(false)
	if len(*emits) != 0 {
		t.Fatalf("non-final deliveries emitted %d times with reportAll=false", len(*emits))
	}

	r.Deliver(true)
	if len(*emits) != 1 {
		t.Fatalf("final delivery emitted %d times, want 1", len(*emits))
	}
	if !(*emits)[0].final {
		t.Error("emitted report not marked final")
	}
}

func TestReporter_ReportAllEmitsOnChange(t *testing.T) {
	emits, on := recorder()
	r := New(on, true)
	metrics := testMetrics()
	r.Arm(metrics)

	metrics[1].Value = 0.2
	r.Deliver(false)
	r.Deliver(false) // unchanged — deduplicated
	metrics[1].Value = 0.3
	r.Deliver(false)

	if len(*emits) != 2 {
		t.Fatalf("emits = %d, want 2 (one per value change)", len(*emits))
	}
	if (*emits)[1].values[1] != 0.3 {
		t.Errorf("second emit value = %.2f, want 0.3", (*emits)[1].values[1])
	}
}

func TestReporter_FinalUnchangedAfterEmitIsSuppressed(t *testing.T) {
	emits, on := recorder()
	r := New(on, true)
	metrics := testMetrics()
	r.Arm(metrics)

	metrics[0].Value = 0.5
	r.Deliver(false)
	r.Deliver(true) // nothing changed since the last emit
	if len(*emits) != 1 {
		t.Fatalf("emits = %d, want 1", len(*emits))
	}
}

func TestReporter_FirstFinalEmitsEvenAtZero(t *testing.T) {
	// A page with no qualifying shifts still reports its zeros once when
	// it goes hidden.
	emits, on := recorder()
	r := New(on, false)
	r.Arm(testMetrics())

	r.Deliver(true)
	if len(*emits) != 1 {
		t.Fatalf("emits = %d, want 1", len(*emits))
	}
}

func TestReporter_ReArmResetsBaseline(t *testing.T) {
	emits, on := recorder()
	r := New(on, false)

	metrics := testMetrics()
	r.Arm(metrics)
	metrics[0].Value = 0.4
	r.Deliver(true)

	// Fresh metric set after a bfcache restore; its zeros are news again.
	fresh := testMetrics()
	r.Arm(fresh)
	r.Deliver(true)

	if len(*emits) != 2 {
		t.Fatalf("emits = %d, want 2", len(*emits))
	}
	if (*emits)[1].values[0] != 0 {
		t.Errorf("post-restore emit value = %.2f, want 0", (*emits)[1].values[0])
	}
}

func TestReporter_UnarmedDeliverIsNoop(t *testing.T) {
	emits, on := recorder()
	r := New(on, true)
	r.Deliver(true)
	if len(*emits) != 0 {
		t.Fatalf("unarmed reporter emitted %d times", len(*emits))
	}
}
