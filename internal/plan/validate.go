package plan

import (
	"fmt"
	"strings"
	"time"
)

// ValidateSteps checks the structural and field-level well-formedness
// of a workout's step tree: a non-empty sections list (each section
// holding a non-empty, valid trainings list), or failing that a
// non-empty, valid flat trainings list. The first failure is returned
// with the path to the offending step.
func ValidateSteps(w *PlannedWorkout) error {
	if len(w.Sections) > 0 {
		for si, section := range w.Sections {
			if len(section.Trainings) == 0 {
				return fmt.Errorf("sections[%d].trainings must be a non-empty list", si)
			}
			for i, step := range section.Trainings {
				if err := validateStep(step, fmt.Sprintf("sections[%d].trainings[%d]", si, i)); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if len(w.Trainings) == 0 {
		return fmt.Errorf("planned workout must include 'trainings' or non-empty 'sections'")
	}
	for i, step := range w.Trainings {
		if err := validateStep(step, fmt.Sprintf("trainings[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// validateStep recursively checks one step. A repeat node needs only a
// valid count and non-empty nested steps; duration and pace are leaf
// concerns and are not checked on repeats.
func validateStep(step Step, path string) error {
	if step.Repeat != nil {
		count := step.Repeat.Count
		if count != float64(int(count)) || count < 1 {
			return fmt.Errorf("%s.repeat.count must be an integer >= 1", path)
		}
		if len(step.Repeat.Trainings) == 0 {
			return fmt.Errorf("%s.repeat.trainings must be a non-empty list", path)
		}
		for i, sub := range step.Repeat.Trainings {
			if err := validateStep(sub, fmt.Sprintf("%s.repeat.trainings[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}

	if step.Duration == nil {
		return fmt.Errorf("%s missing duration", path)
	}
	if step.Pace == nil {
		return fmt.Errorf("%s missing pace", path)
	}
	if _, err := FormatDuration(step.Duration); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	if _, err := FormatPacePercent(*step.Pace); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	return nil
}

// ValidateWorkout checks one workout entry end to end: required date,
// name, sport, a time or the all-day flag, and the step tree. Errors
// name the workout by index, name, and date so the source document can
// be corrected.
func ValidateWorkout(index int, w *PlannedWorkout) error {
	context := workoutContext(index, w)

	if w.Date == "" {
		return fmt.Errorf("%s missing required field: date (YYYY-MM-DD)", context)
	}
	if _, err := ParseDate(w.Date); err != nil {
		return fmt.Errorf("%s invalid date format (YYYY-MM-DD)", context)
	}
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%s invalid name (non-empty string required)", context)
	}
	if strings.TrimSpace(w.Sport) == "" {
		return fmt.Errorf("%s invalid sport (non-empty string required)", context)
	}
	if w.Time == nil && !w.AllDay {
		return fmt.Errorf("%s missing time (HH:MM or HH:MM:SS) or all_day: true", context)
	}
	if w.Time != nil {
		if _, err := NormalizeTime(*w.Time); err != nil {
			return fmt.Errorf("%s invalid time (HH:MM or HH:MM:SS): %v", context, err)
		}
	}
	if err := ValidateSteps(w); err != nil {
		return fmt.Errorf("%s trainings invalid: %v", context, err)
	}
	return nil
}

func workoutContext(index int, w *PlannedWorkout) string {
	name := w.Name
	if name == "" {
		name = "<missing name>"
	}
	date := w.Date
	if date == "" {
		date = "<missing date>"
	}
	return fmt.Sprintf("workout[%d] name=%s date=%s", index, name, date)
}

// ParseDate parses a YYYY-MM-DD calendar date and returns it in
// canonical form.
func ParseDate(value string) (string, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", value)
	}
	return t.Format("2006-01-02"), nil
}
