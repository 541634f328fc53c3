package export

import "strings"

// Classification is heuristic by necessity. Metadata the athlete set
// explicitly (workout_type code, trainer/commute flags) is authoritative;
// free-text name matching is the fallback; a coarse distance signal is
// the last resort before "unknown". The rule order below is load-bearing.

// nameRule maps name substrings to a run type. Rules are evaluated in
// order; within a rule any substring matches.
type nameRule struct {
	substrings []string
	runType    RunType
}

// stravaRunNameRules apply after the explicit workout_type code.
var stravaRunNameRules = []nameRule{
	{[]string{"tempo"}, RunTempo},
	{[]string{"interval", "vo2"}, RunIntervals},
	{[]string{"progression"}, RunProgression},
	{[]string{"recovery"}, RunRecovery},
	{[]string{"easy"}, RunEasy},
	{[]string{"race"}, RunRace},
}

// intervalsRunNameRules: Intervals.icu has no workout_type code, so the
// name is checked first and in a different order, with no distance
// fallback.
var intervalsRunNameRules = []nameRule{
	{[]string{"race"}, RunRace},
	{[]string{"long"}, RunLong},
	{[]string{"interval", "vo2"}, RunIntervals},
	{[]string{"tempo"}, RunTempo},
	{[]string{"progression"}, RunProgression},
	{[]string{"recovery"}, RunRecovery},
	{[]string{"easy"}, RunEasy},
}

// Strava workout_type codes for runs.
const (
	workoutTypeRace      = 1
	workoutTypeLongRun   = 2
	workoutTypeIntervals = 3
)

// longRunDistanceKm is the distance fallback threshold for Strava runs.
const longRunDistanceKm = 20

func matchNameRules(rules []nameRule, name string) (RunType, bool) {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.runType, true
			}
		}
	}
	return RunUnknown, false
}

func containsAny(name string, subs ...string) bool {
	lower := strings.ToLower(name)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// ClassifyStravaRun assigns a run type from a Strava activity's
// workout_type code, name, and distance, in that precedence.
func ClassifyStravaRun(workoutType *int, name string, distanceKm float64) RunType {
	if workoutType != nil {
		switch *workoutType {
		case workoutTypeRace:
			return RunRace
		case workoutTypeLongRun:
			return RunLong
		case workoutTypeIntervals:
			return RunIntervals
		}
	}
	if t, ok := matchNameRules(stravaRunNameRules, name); ok {
		return t
	}
	if distanceKm >= longRunDistanceKm {
		return RunLong
	}
	return RunUnknown
}

// ClassifyIntervalsRun assigns a run type from an Intervals.icu
// activity name alone.
func ClassifyIntervalsRun(name string) RunType {
	if t, ok := matchNameRules(intervalsRunNameRules, name); ok {
		return t
	}
	return RunUnknown
}

// ClassifyStravaRide assigns a ride type from the trainer/commute flags
// and the activity name.
func ClassifyStravaRide(name string, trainer, commute bool) RideType {
	if trainer {
		if containsAny(name, "zwift") {
			return RideZwiftTempo
		}
		return RideUnknown
	}
	if commute {
		if containsAny(name, "interval", "vo2") {
			return RideZwiftIntervals
		}
		return RideRecovery
	}
	if containsAny(name, "race") {
		return RideRace
	}
	return RideOutdoorEndurance
}

// ClassifyIntervalsRide mirrors ClassifyStravaRide for the Intervals.icu
// source, whose commute-flagged rides are always recovery spins.
func ClassifyIntervalsRide(name string, trainer, commute bool) RideType {
	if trainer {
		if containsAny(name, "zwift") {
			return RideZwiftTempo
		}
		return RideUnknown
	}
	if commute {
		return RideRecovery
	}
	if containsAny(name, "race") {
		return RideRace
	}
	return RideOutdoorEndurance
}
