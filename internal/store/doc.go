// Package store manages the in-memory latest-snapshot state of the
// collector. It provides a thread-safe store of the most recent
// PageSnapshot per page session, with TTL eviction of sessions that have
// stopped reporting.
package store
