// Package ingest models the event subscription the burst monitor observes.
//
// Source is the subscription primitive: Observe registers the per-event
// handler (and reports whether the event stream is available at all), and
// TakeRecords flushes pending, not-yet-dispatched events so a hidden-page
// flush can replay them synchronously.
//
// Buffer is the production Source, fed by the HTTP beacon receiver.
package ingest
