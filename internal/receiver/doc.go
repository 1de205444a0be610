// Package receiver implements the HTTP beacon intake for the collector.
//
// Pages POST JSON beacons to /api/v1/beacon: a session ID, an optional page
// URL, a batch of layout-shift events, and the lifecycle flags (hidden,
// restored). The receiver validates the batch and routes it into the
// session registry; the windowing core itself never sees malformed input.
package receiver
