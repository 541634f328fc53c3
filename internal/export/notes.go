package export

import (
	"fmt"
	"strings"
)

// timeOfDayPrefixes are the auto-generated title prefixes Strava uses
// for unnamed activities ("Morning Run", "Lunch Ride", ...).
var timeOfDayPrefixes = []string{"morning", "afternoon", "evening", "lunch", "night"}

// GenericName reports whether an activity title carries no information
// beyond the discipline itself: empty, the bare discipline word, or the
// discipline with a time-of-day prefix.
func GenericName(name, discipline string) bool {
	if name == "" {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	base := strings.ToLower(discipline)
	if lower == base {
		return true
	}
	for _, prefix := range timeOfDayPrefixes {
		if lower == prefix+" "+base {
			return true
		}
	}
	return false
}

// activityNotes synthesizes the default notes line for an activity. A
// generic title is dropped, leaving only the source id reference.
func activityNotes(name, discipline string, sourceID int64) string {
	if GenericName(name, discipline) {
		return fmt.Sprintf("(source_id: %d)", sourceID)
	}
	return fmt.Sprintf("%s (source_id: %d)", name, sourceID)
}
