package cmd

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// weekOf returns the Monday..Sunday range containing t, as dates.
func weekOf(t time.Time) (start, end string) {
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(dateLayout), sunday.Format(dateLayout)
}

// resolveWeek turns the export command's week flags into a concrete
// [weekStart, weekEnd] date pair. Exactly one way of specifying the
// week is allowed.
func resolveWeek(now time.Time, weekStart, weekEnd string, thisWeek, lastWeek bool) (string, string, error) {
	explicit := weekStart != "" || weekEnd != ""

	switch {
	case thisWeek && lastWeek:
		return "", "", fmt.Errorf("--this-week and --last-week are mutually exclusive")
	case (thisWeek || lastWeek) && explicit:
		return "", "", fmt.Errorf("week shortcut flags cannot be combined with --week-start/--week-end")
	case thisWeek:
		s, e := weekOf(now)
		return s, e, nil
	case lastWeek:
		s, e := weekOf(now.AddDate(0, 0, -7))
		return s, e, nil
	}

	if weekStart == "" || weekEnd == "" {
		return "", "", fmt.Errorf("provide --week-start and --week-end, or use --this-week/--last-week")
	}

	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return "", "", fmt.Errorf("invalid --week-start: %s", weekStart)
	}
	end, err := time.Parse(dateLayout, weekEnd)
	if err != nil {
		return "", "", fmt.Errorf("invalid --week-end: %s", weekEnd)
	}
	if end.Before(start) {
		return "", "", fmt.Errorf("--week-end %s is before --week-start %s", weekEnd, weekStart)
	}

	return weekStart, weekEnd, nil
}

// weekBounds converts a date range into the [after, before) instants
// bounding it in the given timezone: midnight at the start of weekStart
// through midnight after weekEnd.
func weekBounds(weekStart, weekEnd string, loc *time.Location) (after, before time.Time, err error) {
	start, err := time.ParseInLocation(dateLayout, weekStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week start: %s", weekStart)
	}
	end, err := time.ParseInLocation(dateLayout, weekEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week end: %s", weekEnd)
	}
	return start, end.AddDate(0, 0, 1), nil
}
