package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archive is the persisted record of a compiled week: which workouts
// were uploaded, from which source file, and when.
type Archive struct {
	WeekStart   string           `json:"week_start"`
	GeneratedAt string           `json:"generated_at"`
	SourceFile  string           `json:"source_file"`
	Workouts    []PlannedWorkout `json:"workouts"`
}

// WeekStartOf returns the Monday of the week containing the earliest
// workout's date.
func WeekStartOf(workouts []PlannedWorkout) (string, error) {
	if len(workouts) == 0 {
		return "", fmt.Errorf("no workouts to derive a week start from")
	}

	var earliest time.Time
	for i, w := range workouts {
		d, err := time.Parse("2006-01-02", w.Date)
		if err != nil {
			return "", fmt.Errorf("workout[%d] invalid date %q", i, w.Date)
		}
		if i == 0 || d.Before(earliest) {
			earliest = d
		}
	}

	// time.Weekday counts Sunday as 0; shift so Monday is the origin.
	offset := (int(earliest.Weekday()) + 6) % 7
	return earliest.AddDate(0, 0, -offset).Format("2006-01-02"), nil
}

// ArchivePlan writes the uploaded workouts to
// {plansDir}/plan_{week_start}.json and returns the written path. An
// empty workout list archives nothing.
func ArchivePlan(workouts []PlannedWorkout, sourceFile, plansDir string) (string, error) {
	if len(workouts) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(plansDir, 0755); err != nil {
		return "", fmt.Errorf("creating plans directory: %w", err)
	}

	weekStart, err := WeekStartOf(workouts)
	if err != nil {
		return "", err
	}

	archive := Archive{
		WeekStart:   weekStart,
		GeneratedAt: time.Now().Format("2006-01-02T15:04:05"),
		SourceFile:  sourceFile,
		Workouts:    workouts,
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding plan archive: %w", err)
	}

	path := filepath.Join(plansDir, fmt.Sprintf("plan_%s.json", weekStart))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing plan archive: %w", err)
	}
	return path, nil
}
