package burst

import (
	"github.com/shiftscope/shiftscope/internal/ingest"
	"github.com/shiftscope/shiftscope/internal/window"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// Fixed windower configurations, in milliseconds.
const (
	sessionGap5s      = 5000
	sessionGap1s      = 1000
	sessionLimit5s    = 5000
	slidingLimit1s    = 1000
	slidingLimit300ms = 300
)

// Monitor is the aggregation driver: five windowers, five output metrics.
//
// Windower state lives for the whole observation session. The output side
// (metrics and the average accumulators) lives in a replaceable bundle —
// a bfcache restore swaps the bundle, windowers deliberately carry over.
type Monitor struct {
	avgSession      *window.Session
	maxGap1s        *window.Session
	maxGap1sLimit5s *window.Session
	sliding1s       *window.Sliding
	sliding300ms    *window.Sliding

	out      *bundle
	delivery Delivery
	src      ingest.Source
	armed    bool
}

// bundle is the replaceable output side of a Monitor: the five metrics plus
// the running accumulators behind the average metric.
type bundle struct {
	avg             *Metric
	maxGap1s        *Metric
	maxGap1sLimit5s *Metric
	maxSliding1s    *Metric
	maxSliding300ms *Metric

	sessionTotal float64
	sessionCount int
}

func newBundle() *bundle {
	return &bundle{
		avg:             &Metric{Name: MetricAvgSessionGap5s},
		maxGap1s:        &Metric{Name: MetricMaxSessionGap1s},
		maxGap1sLimit5s: &Metric{Name: MetricMaxSessionGap1sLimit5s},
		maxSliding1s:    &Metric{Name: MetricMaxSliding1s},
		maxSliding300ms: &Metric{Name: MetricMaxSliding300ms},
	}
}

// metrics returns the bundle's metrics in reporting order.
func (b *bundle) metrics() []*Metric {
	return []*Metric{b.avg, b.maxGap1s, b.maxGap1sLimit5s, b.maxSliding1s, b.maxSliding300ms}
}

// New creates a Monitor observing src and reporting through delivery.
//
// If src cannot be observed the Monitor is inert: no metrics are created,
// delivery is never armed or invoked, and every method is a no-op.
func New(src ingest.Source, delivery Delivery) *Monitor {
	m := &Monitor{
		avgSession:      window.NewSession(sessionGap5s, window.NoLimit()),
		maxGap1s:        window.NewSession(sessionGap1s, window.NoLimit()),
		maxGap1sLimit5s: window.NewSession(sessionGap1s, sessionLimit5s),
		sliding1s:       window.NewSliding(slidingLimit1s),
		sliding300ms:    window.NewSliding(slidingLimit300ms),
		delivery:        delivery,
		src:             src,
	}

	if !src.Observe(m.handleShift) {
		return m
	}

	m.out = newBundle()
	m.armed = true
	delivery.Arm(m.out.metrics())
	return m
}

// Supported reports whether the event stream could be observed.
func (m *Monitor) Supported() bool { return m.armed }

// Metrics returns the current metric set, nil for an inert Monitor.
func (m *Monitor) Metrics() []*Metric {
	if !m.armed {
		return nil
	}
	return m.out.metrics()
}

// handleShift processes one event: entries first, then the average fold,
// then the four max folds, then delivery. Input-caused shifts are dropped
// before touching any state.
func (m *Monitor) handleShift(e types.ShiftEvent) {
	if !m.armed || e.HadRecentInput {
		return
	}
	o := m.out

	for _, mt := range o.metrics() {
		mt.Entries = append(mt.Entries, e)
	}

	// Average of session scores, counting the still-open session as one
	// provisional sample so the value is defined from the first event and
	// tracks the live session. A closed score of 0 means "no session
	// closed" and folds to nothing either way.
	closed, current := m.avgSession.AddShift(e)
	if closed != 0 {
		o.sessionTotal += closed
		o.sessionCount++
	}
	o.avg.Value = (o.sessionTotal + current) / float64(o.sessionCount+1)

	// Running maxima over the open-session / sliding-window scores.
	if _, cur := m.maxGap1s.AddShift(e); cur > o.maxGap1s.Value {
		o.maxGap1s.Value = cur
	}
	if _, cur := m.maxGap1sLimit5s.AddShift(e); cur > o.maxGap1sLimit5s.Value {
		o.maxGap1sLimit5s.Value = cur
	}
	if v := m.sliding1s.AddShift(e); v > o.maxSliding1s.Value {
		o.maxSliding1s.Value = v
	}
	if v := m.sliding300ms.AddShift(e); v > o.maxSliding300ms.Value {
		o.maxSliding300ms.Value = v
	}

	m.delivery.Deliver(false)
}

// OnHidden handles the page-becoming-hidden signal: pending records that
// have not yet been dispatched are replayed through the normal per-event
// path, then one forced delivery reports the final values.
func (m *Monitor) OnHidden() {
	if !m.armed {
		return
	}
	for _, e := range m.src.TakeRecords() {
		m.handleShift(e)
	}
	m.delivery.Deliver(true)
}

// OnRestore handles a back/forward-cache restore: the output bundle is
// replaced with zeroed metrics and accumulators and delivery is re-armed
// against the new set. Windower state is intentionally NOT reset — an
// in-flight session or sliding queue continues across the restore.
func (m *Monitor) OnRestore() {
	if !m.armed {
		return
	}
	m.out = newBundle()
	m.delivery.Arm(m.out.metrics())
}
