package plan

import (
	"strings"
	"testing"
)

func TestParsePlanned(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		workouts, err := ParsePlanned([]byte(`[{"date": "2025-06-12", "name": "Tempo", "sport": "Run"}]`))
		if err != nil {
			t.Fatalf("ParsePlanned() error = %v", err)
		}
		if len(workouts) != 1 || workouts[0].Name != "Tempo" {
			t.Errorf("workouts = %+v", workouts)
		}
	})

	t.Run("wrapped object", func(t *testing.T) {
		workouts, err := ParsePlanned([]byte(`{"workouts": [{"date": "2025-06-12", "name": "Tempo", "sport": "Run"}]}`))
		if err != nil {
			t.Fatalf("ParsePlanned() error = %v", err)
		}
		if len(workouts) != 1 {
			t.Errorf("got %d workouts, want 1", len(workouts))
		}
	})

	t.Run("object without workouts key", func(t *testing.T) {
		_, err := ParsePlanned([]byte(`{"plan": []}`))
		if err == nil || !strings.Contains(err.Error(), `must be a list or {"workouts": [...]}`) {
			t.Errorf("error = %v, want shape error", err)
		}
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := ParsePlanned([]byte(`42`))
		if err == nil {
			t.Error("ParsePlanned(42) = nil, want error")
		}
	})

	t.Run("step fields decode", func(t *testing.T) {
		doc := `[{
			"date": "2025-06-12", "name": "Quality", "sport": "Run", "all_day": true,
			"trainings": [
				{"duration": "10m", "pace": 70},
				{"repeat": {"count": 3, "trainings": [{"duration": 300, "pace": 85, "description": "hard"}]}}
			]
		}]`
		workouts, err := ParsePlanned([]byte(doc))
		if err != nil {
			t.Fatalf("ParsePlanned() error = %v", err)
		}

		w := workouts[0]
		if err := ValidateWorkout(0, &w); err != nil {
			t.Fatalf("decoded workout invalid: %v", err)
		}
		if text, ok := w.Trainings[0].Duration.Text(); !ok || text != "10m" {
			t.Errorf("string duration = (%q, %v)", text, ok)
		}
		rep := w.Trainings[1].Repeat
		if rep == nil || rep.Count != 3 {
			t.Fatalf("repeat = %+v", rep)
		}
		if secs, ok := rep.Trainings[0].Duration.Seconds(); !ok || secs != 300 {
			t.Errorf("nested duration = (%d, %v)", secs, ok)
		}
		if rep.Trainings[0].Description != "hard" {
			t.Errorf("description = %q", rep.Trainings[0].Description)
		}
	})
}

func TestDurationJSON(t *testing.T) {
	d := dur(`"40m"`)
	out, err := d.MarshalJSON()
	if err != nil || string(out) != `"40m"` {
		t.Errorf("MarshalJSON() = (%s, %v), want raw value back", out, err)
	}

	if _, ok := d.Seconds(); ok {
		t.Error("string duration should not report seconds")
	}
	if secs, ok := dur("90").Seconds(); !ok || secs != 90 {
		t.Errorf("Seconds() = (%d, %v), want 90", secs, ok)
	}
	if _, ok := dur("90.5").Seconds(); ok {
		t.Error("fractional value should not report whole seconds")
	}
	if _, ok := dur("600.0").Seconds(); ok {
		t.Error("float literal should not report whole seconds")
	}
}
