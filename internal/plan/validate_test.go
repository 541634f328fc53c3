package plan

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

func dur(raw string) *Duration {
	d := &Duration{}
	d.UnmarshalJSON([]byte(raw))
	return d
}

func pacePtr(p float64) *json.Number {
	n := json.Number(strconv.FormatFloat(p, 'g', -1, 64))
	return &n
}

// numPtr keeps the literal verbatim, so "80.0" stays a float.
func numPtr(literal string) *json.Number {
	n := json.Number(literal)
	return &n
}

func strPtr(s string) *string { return &s }

func leaf(durRaw string, pace float64) Step {
	return Step{Duration: dur(durRaw), Pace: pacePtr(pace)}
}

func TestValidateSteps(t *testing.T) {
	tests := []struct {
		name    string
		workout PlannedWorkout
		wantErr string // empty means valid
	}{
		{
			name:    "valid leaf",
			workout: PlannedWorkout{Trainings: []Step{leaf("600", 80)}},
		},
		{
			name:    "valid string duration",
			workout: PlannedWorkout{Trainings: []Step{leaf(`"40m"`, 75)}},
		},
		{
			name:    "valid repeat without leaf fields",
			workout: PlannedWorkout{Trainings: []Step{{Repeat: &Repeat{Count: 3, Trainings: []Step{leaf("300", 85)}}}}},
		},
		{
			name:    "zero duration",
			workout: PlannedWorkout{Trainings: []Step{leaf("0", 80)}},
			wantErr: "trainings[0]: duration seconds must be > 0",
		},
		{
			name:    "pace above range",
			workout: PlannedWorkout{Trainings: []Step{leaf("600", 200)}},
			wantErr: "trainings[0]: invalid pace percentage: 200",
		},
		{
			name:    "fractional pace",
			workout: PlannedWorkout{Trainings: []Step{leaf("600", 82.5)}},
			wantErr: "trainings[0]: invalid pace value: 82.5",
		},
		{
			name:    "float pace with integral value",
			workout: PlannedWorkout{Trainings: []Step{{Duration: dur("600"), Pace: numPtr("80.0")}}},
			wantErr: "trainings[0]: invalid pace value: 80.0",
		},
		{
			name:    "float duration with integral value",
			workout: PlannedWorkout{Trainings: []Step{leaf("600.0", 80)}},
			wantErr: "trainings[0]: invalid duration value: 600.0",
		},
		{
			name:    "missing duration",
			workout: PlannedWorkout{Trainings: []Step{{Pace: pacePtr(80)}}},
			wantErr: "trainings[0] missing duration",
		},
		{
			name:    "missing pace",
			workout: PlannedWorkout{Trainings: []Step{{Duration: dur("600")}}},
			wantErr: "trainings[0] missing pace",
		},
		{
			name:    "bad duration string",
			workout: PlannedWorkout{Trainings: []Step{leaf(`"40 minutes"`, 80)}},
			wantErr: `trainings[0]: invalid duration string: "40 minutes"`,
		},
		{
			name:    "fractional repeat count",
			workout: PlannedWorkout{Trainings: []Step{{Repeat: &Repeat{Count: 2.5, Trainings: []Step{leaf("300", 85)}}}}},
			wantErr: "trainings[0].repeat.count must be an integer >= 1",
		},
		{
			name:    "zero repeat count",
			workout: PlannedWorkout{Trainings: []Step{{Repeat: &Repeat{Count: 0, Trainings: []Step{leaf("300", 85)}}}}},
			wantErr: "trainings[0].repeat.count must be an integer >= 1",
		},
		{
			name:    "empty repeat trainings",
			workout: PlannedWorkout{Trainings: []Step{{Repeat: &Repeat{Count: 3}}}},
			wantErr: "trainings[0].repeat.trainings must be a non-empty list",
		},
		{
			name: "nested repeat error path",
			workout: PlannedWorkout{Trainings: []Step{{Repeat: &Repeat{Count: 3, Trainings: []Step{
				leaf("300", 85),
				{Repeat: &Repeat{Count: 2, Trainings: []Step{{Pace: pacePtr(80)}}}},
			}}}}},
			wantErr: "trainings[0].repeat.trainings[1].repeat.trainings[0] missing duration",
		},
		{
			name:    "no trainings or sections",
			workout: PlannedWorkout{},
			wantErr: "planned workout must include 'trainings' or non-empty 'sections'",
		},
		{
			name: "section error path",
			workout: PlannedWorkout{Sections: []Section{
				{Name: "Warmup", Trainings: []Step{leaf("600", 70)}},
				{Name: "Main", Trainings: []Step{leaf("0", 85)}},
			}},
			wantErr: "sections[1].trainings[0]: duration seconds must be > 0",
		},
		{
			name: "empty section trainings",
			workout: PlannedWorkout{Sections: []Section{
				{Name: "Warmup"},
			}},
			wantErr: "sections[0].trainings must be a non-empty list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSteps(&tt.workout)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateSteps() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateSteps() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateSteps() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkout(t *testing.T) {
	valid := func() PlannedWorkout {
		return PlannedWorkout{
			Date:      "2025-06-12",
			Name:      "Tempo",
			Sport:     "Run",
			Time:      strPtr("06:30"),
			Trainings: []Step{leaf("600", 80)},
		}
	}

	t.Run("valid workout", func(t *testing.T) {
		w := valid()
		if err := ValidateWorkout(0, &w); err != nil {
			t.Errorf("ValidateWorkout() error = %v", err)
		}
	})

	t.Run("all day instead of time", func(t *testing.T) {
		w := valid()
		w.Time = nil
		w.AllDay = true
		if err := ValidateWorkout(0, &w); err != nil {
			t.Errorf("ValidateWorkout() error = %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*PlannedWorkout)
		wantErr string
	}{
		{"missing date", func(w *PlannedWorkout) { w.Date = "" }, "missing required field: date"},
		{"bad date", func(w *PlannedWorkout) { w.Date = "12/06/2025" }, "invalid date format"},
		{"blank name", func(w *PlannedWorkout) { w.Name = "  " }, "invalid name"},
		{"blank sport", func(w *PlannedWorkout) { w.Sport = "" }, "invalid sport"},
		{"no time and not all day", func(w *PlannedWorkout) { w.Time = nil }, "missing time"},
		{"bad time", func(w *PlannedWorkout) { w.Time = strPtr("25:00") }, "invalid time"},
		{"invalid steps", func(w *PlannedWorkout) { w.Trainings = nil }, "trainings invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid()
			tt.mutate(&w)
			err := ValidateWorkout(2, &w)
			if err == nil {
				t.Fatalf("ValidateWorkout() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateWorkout() error = %q, want it to contain %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "workout[2]") {
				t.Errorf("ValidateWorkout() error = %q, want workout[2] context", err)
			}
		})
	}
}
