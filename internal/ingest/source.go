package ingest

import "github.com/shiftscope/shiftscope/pkg/types"

// Source delivers shift events to a single observer.
//
// Implementations decide when queued events are dispatched; observers must
// tolerate dispatch happening at any point after Observe returns. A Source
// is owned by exactly one observer and is not safe for concurrent use —
// serialization is the owner's responsibility.
type Source interface {
	// Observe registers handler to receive events. It returns false when
	// the underlying event stream cannot be observed at all, in which case
	// the observer must stay inert and no events will ever be delivered.
	Observe(handler func(types.ShiftEvent)) bool

	// TakeRecords removes and returns events that have been queued but not
	// yet dispatched to the handler, in arrival order.
	TakeRecords() []types.ShiftEvent
}

// Buffer is a Source backed by an in-memory pending queue. The receiver
// pushes decoded beacon events into it; the owning session drains the queue
// with Dispatch, or with TakeRecords on a hidden-page flush.
type Buffer struct {
	handler func(types.ShiftEvent)
	pending []types.ShiftEvent
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Observe registers the handler. A Buffer always supports observation.
func (b *Buffer) Observe(handler func(types.ShiftEvent)) bool {
	b.handler = handler
	return true
}

// Push queues one event for later dispatch.
func (b *Buffer) Push(e types.ShiftEvent) {
	b.pending = append(b.pending, e)
}

// Dispatch drains the pending queue through the registered handler.
// Events pushed by the handler itself are dispatched in the same call.
func (b *Buffer) Dispatch() {
	for len(b.pending) > 0 {
		e := b.pending[0]
		b.pending = b.pending[1:]
		if b.handler != nil {
			b.handler(e)
		}
	}
}

// TakeRecords removes and returns all pending events without dispatching.
func (b *Buffer) TakeRecords() []types.ShiftEvent {
	out := b.pending
	b.pending = nil
	return out
}

// Unsupported is a Source whose event stream is unavailable. Observing it
// fails, leaving the observer inert. It stands in for platforms that do not
// expose layout-shift timing at all.
type Unsupported struct{}

func (Unsupported) Observe(func(types.ShiftEvent)) bool { return false }

func (Unsupported) TakeRecords() []types.ShiftEvent { return nil }
