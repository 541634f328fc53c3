package export

import "testing"

func TestRound1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"half rounds up", 2.25, 2.3},
		{"below half rounds down", 2.24, 2.2},
		{"already one decimal", 5.1, 5.1},
		{"whole number", 12, 12},
		{"zero", 0, 0},
		{"float artifact near boundary", 0.35, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round1(tt.in)
			if got != tt.want {
				t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
			}
			// Rounding an already-rounded value must not move it.
			if again := Round1(got); again != got {
				t.Errorf("Round1(Round1(%v)) = %v, want %v", tt.in, again, got)
			}
		})
	}
}

func TestDurationMin(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    float64
	}{
		{"one hour", 3600, 60},
		{"ninety seconds", 90, 1.5},
		{"zero", 0, 0},
		{"negative clamps to zero", -30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMin(tt.seconds); got != tt.want {
				t.Errorf("DurationMin(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		name         string
		minutesPerKm float64
		want         string
	}{
		{"even pace", 5.0, "5:00"},
		{"half minute", 4.5, "4:30"},
		{"rounds to nearest second", 5.3333333, "5:20"},
		{"seconds zero padded", 6.05, "6:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPace(tt.minutesPerKm); got != tt.want {
				t.Errorf("FormatPace(%v) = %q, want %q", tt.minutesPerKm, got, tt.want)
			}
		})
	}
}

func TestPaceFor(t *testing.T) {
	t.Run("10km in 50min", func(t *testing.T) {
		got := paceFor(10, 50)
		if got == nil || *got != "5:00" {
			t.Errorf("paceFor(10, 50) = %v, want 5:00", got)
		}
	})

	t.Run("zero distance yields nil", func(t *testing.T) {
		if got := paceFor(0, 50); got != nil {
			t.Errorf("paceFor(0, 50) = %v, want nil", *got)
		}
	})

	t.Run("zero duration yields nil", func(t *testing.T) {
		if got := paceFor(10, 0); got != nil {
			t.Errorf("paceFor(10, 0) = %v, want nil", *got)
		}
	})
}
