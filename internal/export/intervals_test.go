package export

import "testing"

func TestFromIntervalsAccounting(t *testing.T) {
	activities := []map[string]any{
		{"type": "Run", "name": "Easy", "start_date_local": "2025-06-09T06:30:00", "distance": 8.2, "moving_time": float64(2700)},
		{"type": "Ride", "name": "Coffee ride", "start_date_local": "2025-06-10T08:00:00", "moving_time": float64(3600)},
		{"type": "Gravel Ride", "name": "Gravel", "start_date_local": "2025-06-11T08:00:00", "moving_time": float64(5400)},
		{"type": "Swim", "name": "Laps", "start_date_local": "2025-06-12T07:00:00"},
		{"type": "Run", "name": "No date"},
		{"name": "No type", "start_date_local": "2025-06-13T07:00:00"},
	}

	payload, skipped := FromIntervals(activities, "2025-06-09", "2025-06-15")

	if len(payload.Runs) != 1 || len(payload.Rides) != 2 {
		t.Fatalf("got %d runs, %d rides, want 1 and 2", len(payload.Runs), len(payload.Rides))
	}
	if skipped["Swim"] != 1 || skipped["missing_date"] != 1 || skipped["unknown"] != 1 {
		t.Errorf("skip tally = %v", skipped)
	}
	if got := len(payload.Runs) + len(payload.Rides) + skipped.Total(); got != len(activities) {
		t.Errorf("mapped + skipped = %d, want %d", got, len(activities))
	}
}

func TestFromIntervalsRunMapping(t *testing.T) {
	activities := []map[string]any{
		{
			"type":              "Run",
			"name":              "Tempo Thursday",
			"start_date_local":  "2025-06-12T06:30:00",
			"distance":          float64(12000), // meters; heuristic converts
			"moving_time":       float64(3600),
			"average_hr":        "152",
			"icu_training_load": float64(78),
			"feel":              float64(3),
			"notes":             "Windy out.",
			"calories":          float64(640),
		},
	}

	payload, _ := FromIntervals(activities, "2025-06-09", "2025-06-15")
	run := payload.Runs[0]

	if run.Date != "2025-06-12" {
		t.Errorf("Date = %q", run.Date)
	}
	if run.Type != RunTempo {
		t.Errorf("Type = %v, want tempo", run.Type)
	}
	if run.DistanceKm != 12 {
		t.Errorf("DistanceKm = %v, want 12 (meters converted)", run.DistanceKm)
	}
	if run.DurationMin != 60 {
		t.Errorf("DurationMin = %v, want 60", run.DurationMin)
	}
	if run.AvgPace == nil || *run.AvgPace != "5:00" {
		t.Errorf("AvgPace = %v, want 5:00", run.AvgPace)
	}
	if run.AvgHR == nil || *run.AvgHR != 152 {
		t.Errorf("AvgHR = %v, want 152 (coerced from string)", run.AvgHR)
	}
	if run.TrainingLoad == nil || *run.TrainingLoad != 78 {
		t.Errorf("TrainingLoad = %v, want 78", run.TrainingLoad)
	}
	if run.RPE == nil || *run.RPE != 3 {
		t.Errorf("RPE = %v, want 3", run.RPE)
	}
	if run.Notes != "Windy out." {
		t.Errorf("Notes = %q", run.Notes)
	}
	if run.Extra["calories"] != float64(640) {
		t.Errorf("Extra = %v, want calories passed through", run.Extra)
	}
}

func TestFromIntervalsRideMapping(t *testing.T) {
	activities := []map[string]any{
		{
			"type":             "Virtual Ride",
			"name":             "Zwift - SST",
			"trainer":          true,
			"start_date_local": "2025-06-10T18:00:00",
			"moving_time":      float64(4500),
			"avg_power":        float64(201.4),
			"normalized_power": float64(215),
			"description":      "Sweet spot blocks.",
		},
	}

	payload, _ := FromIntervals(activities, "2025-06-09", "2025-06-15")
	ride := payload.Rides[0]

	if ride.Type != RideZwiftTempo {
		t.Errorf("Type = %v, want zwift_tempo", ride.Type)
	}
	if ride.DurationMin != 75 {
		t.Errorf("DurationMin = %v, want 75", ride.DurationMin)
	}
	if ride.AvgPower == nil || *ride.AvgPower != 201 {
		t.Errorf("AvgPower = %v, want 201", ride.AvgPower)
	}
	if ride.NormPower == nil || *ride.NormPower != 215 {
		t.Errorf("NormPower = %v, want 215", ride.NormPower)
	}
	// notes falls back to description when the notes field is absent
	if ride.Notes != "Sweet spot blocks." {
		t.Errorf("Notes = %q", ride.Notes)
	}
}

func TestRawDistanceKm(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want float64
	}{
		{"kilometers stay", Record{"distance": 8.4}, 8.4},
		{"meters converted", Record{"distance": float64(8400)}, 8.4},
		{"exactly 1000 stays km", Record{"distance": float64(1000)}, 1000},
		{"just above 1000 is meters", Record{"distance": float64(1001)}, 1.001},
		{"missing", Record{}, 0},
		{"negative clamps", Record{"distance": -5.0}, 0},
		{"fallback key", Record{"dist": 6.0}, 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rawDistanceKm(tt.rec); got != tt.want {
				t.Errorf("rawDistanceKm(%v) = %v, want %v", tt.rec, got, tt.want)
			}
		})
	}
}

func TestActivityDate(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		want   string
		wantOK bool
	}{
		{"local timestamp", Record{"start_date_local": "2025-06-09T06:30:00"}, "2025-06-09", true},
		{"utc fallback", Record{"start_date": "2025-06-09T20:30:00Z"}, "2025-06-09", true},
		{"bare date", Record{"start_date_local": "2025-06-09"}, "2025-06-09", true},
		{"missing", Record{}, "", false},
		{"unparseable", Record{"start_date_local": "last tuesday"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := activityDate(tt.rec)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("activityDate(%v) = (%q, %v), want (%q, %v)", tt.rec, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
