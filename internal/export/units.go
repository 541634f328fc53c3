package export

import (
	"fmt"
	"math"
)

// roundEpsilon nudges values off exact .05 boundaries before rounding so
// binary floating point doesn't round 2.25 down to 2.2.
const roundEpsilon = 1e-9

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round((v+roundEpsilon)*10) / 10
}

// DurationMin converts seconds to minutes. Non-positive input yields 0.
func DurationMin(seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return seconds / 60
}

// MetersToKm converts a Strava distance in meters to kilometers.
func MetersToKm(meters float64) float64 {
	return meters / 1000
}

// FormatPace renders minutes-per-kilometer as M:SS, rounding to the
// nearest whole second.
func FormatPace(minutesPerKm float64) string {
	totalSeconds := int(math.Round(minutesPerKm * 60))
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// paceFor returns the formatted average pace, or nil when either the
// distance or the duration is non-positive.
func paceFor(distanceKm, durationMin float64) *string {
	if distanceKm <= 0 || durationMin <= 0 {
		return nil
	}
	pace := FormatPace(durationMin / distanceKm)
	return &pace
}
