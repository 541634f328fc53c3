package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// PlannedWorkout is one authored future session. Its step tree is
// either a flat Trainings list or a sequence of named Sections, never
// both; the validator enforces the shape.
type PlannedWorkout struct {
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	Time      *string   `json:"time,omitempty"`
	AllDay    bool      `json:"all_day,omitempty"`
	Trainings []Step    `json:"trainings,omitempty"`
	Sections  []Section `json:"sections,omitempty"`
}

// Section is a named group of steps within a sectioned workout.
type Section struct {
	Name      string `json:"name,omitempty"`
	Title     string `json:"title,omitempty"` // accepted alias for name
	Trainings []Step `json:"trainings"`
}

// heading returns the section's display title, preferring name.
func (s Section) heading() string {
	if s.Name != "" {
		return strings.TrimSpace(s.Name)
	}
	return strings.TrimSpace(s.Title)
}

// Step is one node of the workout tree: a repeat block when Repeat is
// set, otherwise a leaf with a duration and a pace. Numeric fields stay
// loose here; the validator owns well-formedness so that it can report
// path-qualified errors instead of bare decode failures.
type Step struct {
	Repeat      *Repeat      `json:"repeat,omitempty"`
	Duration    *Duration    `json:"duration,omitempty"`
	Pace        *json.Number `json:"pace,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Repeat is a block of Count repetitions of a nested step sequence.
// Blocks nest to arbitrary depth.
type Repeat struct {
	Count     float64 `json:"count"`
	Trainings []Step  `json:"trainings"`
}

// Duration is a leaf duration: either an integer number of seconds or a
// string like "40m", "90s", "5km". The raw JSON is retained verbatim so
// that archived plans round-trip and so error messages can quote the
// offending value.
type Duration struct {
	raw json.RawMessage
}

// UnmarshalJSON never fails; interpretation is deferred to formatting.
func (d *Duration) UnmarshalJSON(b []byte) error {
	d.raw = append(d.raw[:0], b...)
	return nil
}

// MarshalJSON re-emits the original value.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.raw == nil {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// Seconds returns the duration as whole seconds when the value is a
// JSON integer literal. A float with an integral value, like 600.0, is
// not an integer.
func (d Duration) Seconds() (int, bool) {
	var n int
	if err := json.Unmarshal(d.raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// Text returns the duration as a string when the value is a JSON
// string.
func (d Duration) Text() (string, bool) {
	var s string
	if err := json.Unmarshal(d.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// String returns the raw JSON for error messages.
func (d Duration) String() string {
	if d.raw == nil {
		return "null"
	}
	return string(d.raw)
}

// plannedDocument is the wrapped input-file shape.
type plannedDocument struct {
	Workouts []PlannedWorkout `json:"workouts"`
}

// LoadPlanned reads a planned-workout document: either a JSON array of
// workouts or an object with a "workouts" array.
func LoadPlanned(path string) ([]PlannedWorkout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading planned workouts: %w", err)
	}
	return ParsePlanned(data)
}

// ParsePlanned decodes a planned-workout document from raw JSON.
func ParsePlanned(data []byte) ([]PlannedWorkout, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	switch {
	case strings.HasPrefix(trimmed, "["):
		var workouts []PlannedWorkout
		if err := json.Unmarshal(data, &workouts); err != nil {
			return nil, fmt.Errorf("parsing planned workouts: %w", err)
		}
		return workouts, nil
	case strings.HasPrefix(trimmed, "{"):
		var doc plannedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing planned workouts: %w", err)
		}
		if doc.Workouts == nil {
			return nil, fmt.Errorf(`planned workouts JSON must be a list or {"workouts": [...]} object`)
		}
		return doc.Workouts, nil
	default:
		return nil, fmt.Errorf(`planned workouts JSON must be a list or {"workouts": [...]} object`)
	}
}
