// Package types defines shared Go types used by the burst core and the
// collector's HTTP surfaces. These are the canonical in-memory
// representations of layout-shift data and double as the JSON wire format
// for beacons and snapshots.
package types
