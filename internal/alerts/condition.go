package alerts

import (
	"strconv"
	"strings"

	"github.com/shiftscope/shiftscope/internal/burst"
	"github.com/shiftscope/shiftscope/pkg/types"
)

// evalCondition evaluates a rule condition string against a page snapshot.
//
// Supported expressions (field operator value):
//
//	cls > 0.25
//	avg_session_gap5s > 0.1
//	max_session_gap1s > 0.25
//	max_session_gap1s_limit5s > 0.25
//	max_sliding_1s > 0.2
//	max_sliding_300ms > 0.15
//	rating == poor
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, snap *types.PageSnapshot) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "rating" {
		if op == "==" {
			return snap.Rating == rhs, snap.Score
		}
		return false, 0
	}

	v, ok := numericField(field, snap)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a condition field name to its value in the snapshot.
func numericField(field string, snap *types.PageSnapshot) (float64, bool) {
	if field == "cls" {
		return snap.Score, true
	}

	name, ok := fieldMetric[field]
	if !ok {
		return 0, false
	}
	for _, mv := range snap.Metrics {
		if mv.Name == name {
			return mv.Value, true
		}
	}
	return 0, true
}

// fieldMetric maps condition field names to metric names.
var fieldMetric = map[string]string{
	"avg_session_gap5s":         burst.MetricAvgSessionGap5s,
	"max_session_gap1s":         burst.MetricMaxSessionGap1s,
	"max_session_gap1s_limit5s": burst.MetricMaxSessionGap1sLimit5s,
	"max_sliding_1s":            burst.MetricMaxSliding1s,
	"max_sliding_300ms":         burst.MetricMaxSliding300ms,
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
