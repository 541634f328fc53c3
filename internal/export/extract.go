package export

import (
	"math"
	"strconv"
)

// Record is a loosely-typed activity as returned by the Intervals.icu
// API. The schema is not fixed: fields may be absent, null, or stored
// under several alternate names, so values are resolved through ordered
// candidate key lists rather than struct tags.
type Record map[string]any

// Candidate key lists, in resolution order. Keeping them as named
// constants makes the fallback precedence auditable in one place.
var (
	startDateKeys    = []string{"start_date_local", "start_date"}
	distanceKeys     = []string{"distance", "distance_km", "dist"}
	durationKeys     = []string{"moving_time", "duration", "elapsed_time"}
	avgHRKeys        = []string{"avg_hr", "average_hr", "average_heartrate"}
	maxHRKeys        = []string{"max_hr", "max_heartrate"}
	trainingLoadKeys = []string{"icu_training_load", "training_load"}
	avgPowerKeys     = []string{"avg_power", "average_power", "avg_watts"}
	normPowerKeys    = []string{"norm_power", "normalized_power"}
)

// extraPassthroughKeys are copied verbatim into a record's extra map
// when present, preserving source-specific metrics the canonical shape
// has no column for.
var extraPassthroughKeys = []string{
	"id", "name", "calories", "elevation_gain", "avg_cadence",
	"avg_speed", "max_speed", "work", "icu_intensity",
	"icu_training_load", "training_load", "ctl", "atl", "tsb",
}

// First returns the value of the first candidate key that is present
// and non-null, or nil when none match.
func (r Record) First(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// String returns the named field as a string, or "" when absent or of
// another type.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the named field as a bool, false when absent.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// AsInt coerces a loosely-typed value to the nearest integer. It
// returns nil for null or non-numeric input and never panics. Numeric
// strings are accepted, matching the upstream services' habit of
// stringifying numbers.
func AsInt(v any) *int {
	f, ok := AsFloat(v)
	if !ok {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

// AsFloat coerces a loosely-typed value to a float64.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// extraFields builds the pass-through map for an Intervals.icu record.
func extraFields(r Record) map[string]any {
	extra := make(map[string]any)
	for _, k := range extraPassthroughKeys {
		if v, ok := r[k]; ok && v != nil {
			extra[k] = v
		}
	}
	return extra
}
