// Package burst derives windowed burstiness metrics from a stream of
// layout-shift events.
//
// A Monitor fans every qualifying (non-input-caused) event out to five
// windowers — three session windows and two sliding windows — and folds
// their per-event scores into five named metrics: a running average of
// session scores for the 5s-gap session window, and running maxima for the
// other four. A cumulative sum over a page's whole lifetime grows without
// bound as the session gets longer; the windowed scores stay comparable
// across sessions of any length.
//
// The Monitor's output side (metrics plus the average accumulators) lives
// in a single replaceable bundle so a back/forward-cache restore can swap
// in a fresh metric set atomically while the windower state carries over.
//
// A Monitor must be driven from one goroutine at a time; internal/session
// provides the serialization.
package burst
