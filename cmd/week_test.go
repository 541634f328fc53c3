package cmd

import (
	"strings"
	"testing"
	"time"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		day       string
		wantStart string
		wantEnd   string
	}{
		{"monday", "2025-06-09", "2025-06-09", "2025-06-15"},
		{"midweek", "2025-06-12", "2025-06-09", "2025-06-15"},
		{"sunday", "2025-06-15", "2025-06-09", "2025-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := weekOf(mustDate(t, tt.day))
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("weekOf(%s) = (%s, %s), want (%s, %s)",
					tt.day, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveWeek(t *testing.T) {
	now := mustDate(t, "2025-06-12") // a Thursday

	tests := []struct {
		name      string
		weekStart string
		weekEnd   string
		thisWeek  bool
		lastWeek  bool
		wantStart string
		wantEnd   string
		wantErr   string
	}{
		{name: "this week", thisWeek: true, wantStart: "2025-06-09", wantEnd: "2025-06-15"},
		{name: "last week", lastWeek: true, wantStart: "2025-06-02", wantEnd: "2025-06-08"},
		{name: "explicit bounds", weekStart: "2025-05-05", weekEnd: "2025-05-11", wantStart: "2025-05-05", wantEnd: "2025-05-11"},
		{name: "both shortcuts", thisWeek: true, lastWeek: true, wantErr: "mutually exclusive"},
		{name: "shortcut with explicit", thisWeek: true, weekStart: "2025-05-05", wantErr: "cannot be combined"},
		{name: "missing end", weekStart: "2025-05-05", wantErr: "provide --week-start and --week-end"},
		{name: "nothing given", wantErr: "provide --week-start and --week-end"},
		{name: "bad start", weekStart: "05/05/2025", weekEnd: "2025-05-11", wantErr: "invalid --week-start"},
		{name: "end before start", weekStart: "2025-05-11", weekEnd: "2025-05-05", wantErr: "is before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolveWeek(now, tt.weekStart, tt.weekEnd, tt.thisWeek, tt.lastWeek)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("resolveWeek() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveWeek() error = %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("resolveWeek() = (%s, %s), want (%s, %s)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWeekBounds(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}

	after, before, err := weekBounds("2025-06-09", "2025-06-15", loc)
	if err != nil {
		t.Fatalf("weekBounds() error = %v", err)
	}

	if got := after.Format("2006-01-02 15:04:05"); got != "2025-06-09 00:00:00" {
		t.Errorf("after = %s", got)
	}
	// Exclusive upper bound: midnight after the last day of the week.
	if got := before.Format("2006-01-02 15:04:05"); got != "2025-06-16 00:00:00" {
		t.Errorf("before = %s", got)
	}
	if after.Location() != loc || before.Location() != loc {
		t.Error("bounds should carry the configured timezone")
	}

	if _, _, err := weekBounds("nope", "2025-06-15", loc); err == nil {
		t.Error("weekBounds() with bad start = nil, want error")
	}
}
