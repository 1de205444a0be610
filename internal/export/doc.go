// Package export serves the collected layout-shift metrics in Prometheus
// text exposition format on /metrics.
//
// Each session contributes one sample per metric window to the
// shiftscope_layout_shift gauge family, labelled with the window name,
// session id and page. Two summary families, shiftscope_sessions and
// shiftscope_score, describe the store as a whole.
package export
