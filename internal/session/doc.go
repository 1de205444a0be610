// Package session ties one burst monitor to one page session and serializes
// all input for it.
//
// Each Session owns a Monitor, its event Buffer and its Reporter. Beacon
// batches, hidden signals and bfcache-restore signals for a session are
// processed under one per-session mutex in arrival order, so the monitor
// always sees a strictly sequential event stream even though the HTTP
// receiver handles requests concurrently. In particular a restore is fully
// applied before any later event is processed.
//
// Registry maps session IDs to Sessions with lazy creation and TTL
// eviction of sessions that have stopped sending beacons.
package session
