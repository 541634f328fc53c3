package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Formatting is also validation: the validator calls the same Format*
// functions, so a value that cannot be rendered is by definition
// malformed.

// durationPattern accepts "<number><unit>" with unit s, m, or km.
var durationPattern = regexp.MustCompile(`(?i)^\s*\d+(\.\d+)?\s*(s|m|km)\s*$`)

// Pace percentage bounds, inclusive.
const (
	minPacePercent = 1
	maxPacePercent = 150
)

// FormatDurationSeconds renders whole seconds in canonical form: "Ns"
// under a minute, "Nm" on exact minutes, otherwise total seconds.
func FormatDurationSeconds(seconds int) (string, error) {
	if seconds <= 0 {
		return "", fmt.Errorf("duration seconds must be > 0, got %d", seconds)
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds), nil
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60), nil
	}
	return fmt.Sprintf("%ds", seconds), nil
}

// FormatDuration renders a leaf duration. Integer values go through
// FormatDurationSeconds; string values must match durationPattern and
// pass through trimmed.
func FormatDuration(d *Duration) (string, error) {
	if d == nil {
		return "", fmt.Errorf("missing duration")
	}
	if seconds, ok := d.Seconds(); ok {
		return FormatDurationSeconds(seconds)
	}
	if text, ok := d.Text(); ok {
		if !durationPattern.MatchString(text) {
			return "", fmt.Errorf("invalid duration string: %q", text)
		}
		return strings.TrimSpace(text), nil
	}
	return "", fmt.Errorf("invalid duration value: %s", d)
}

// FormatPacePercent renders a pace as "N% Pace". The value must be a
// JSON integer literal in [1, 150]; 80.0 is a float, not an integer.
func FormatPacePercent(pace json.Number) (string, error) {
	n64, err := pace.Int64()
	if err != nil {
		return "", fmt.Errorf("invalid pace value: %v", pace)
	}
	n := int(n64)
	if n < minPacePercent || n > maxPacePercent {
		return "", fmt.Errorf("invalid pace percentage: %d", n)
	}
	return fmt.Sprintf("%d%% Pace", n), nil
}

// Render lowers a validated workout to its canonical text lines. Repeat
// blocks expand to an "Nx" header followed by their nested lines; no
// indentation is added. Sections are separated by a blank line, each
// preceded by its title when one is set. Callers must validate first;
// Render does not re-report errors.
func Render(w *PlannedWorkout) []string {
	if len(w.Sections) > 0 {
		var lines []string
		for i, section := range w.Sections {
			if i > 0 {
				lines = append(lines, "")
			}
			if title := section.heading(); title != "" {
				lines = append(lines, title)
			}
			lines = append(lines, renderSteps(section.Trainings)...)
		}
		return lines
	}
	return renderSteps(w.Trainings)
}

// RenderText renders the workout as a single newline-joined string, the
// form uploaded as a calendar event description.
func RenderText(w *PlannedWorkout) string {
	return strings.Join(Render(w), "\n")
}

func renderSteps(steps []Step) []string {
	var lines []string
	for _, step := range steps {
		if step.Repeat != nil {
			lines = append(lines, fmt.Sprintf("%dx", int(step.Repeat.Count)))
			lines = append(lines, renderSteps(step.Repeat.Trainings)...)
			continue
		}
		// The workout was validated, so formatting cannot fail here.
		duration, _ := FormatDuration(step.Duration)
		pace, _ := FormatPacePercent(deref(step.Pace))
		if description := strings.TrimSpace(step.Description); description != "" {
			lines = append(lines, fmt.Sprintf("- %s %s %s", duration, pace, description))
		} else {
			lines = append(lines, fmt.Sprintf("- %s %s", duration, pace))
		}
	}
	return lines
}

func deref(n *json.Number) json.Number {
	if n == nil {
		return "0"
	}
	return *n
}
