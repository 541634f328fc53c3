package plan

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"trainlog/internal/intervals"
)

// DefaultAllDayTime is the local start time assigned to all-day
// workouts so they land mid-day on the calendar.
const DefaultAllDayTime = "12:00:00"

// eventSport is the only sport compiled to calendar events; workouts in
// other sports are counted, not uploaded.
const eventSport = "Run"

// slugPattern collapses runs of non-alphanumerics when deriving the
// external id.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CompileOptions bound the compilation by inclusive YYYY-MM-DD dates;
// an empty bound is open.
type CompileOptions struct {
	FromDate string
	ToDate   string
}

// CompileResult holds the compiled events, the workouts they came from
// (for archiving), and the count of workouts skipped for not being
// runs.
type CompileResult struct {
	Events        []intervals.Event
	Selected      []PlannedWorkout
	SkippedNonRun int
}

// Compile validates every workout, then lowers the in-range Run
// workouts to calendar events ordered by local start timestamp. A
// single invalid workout aborts the whole document.
func Compile(workouts []PlannedWorkout, opts CompileOptions) (*CompileResult, error) {
	fromDate := opts.FromDate
	if fromDate != "" {
		normalized, err := ParseDate(fromDate)
		if err != nil {
			return nil, fmt.Errorf("from date: %v", err)
		}
		fromDate = normalized
	}
	toDate := opts.ToDate
	if toDate != "" {
		normalized, err := ParseDate(toDate)
		if err != nil {
			return nil, fmt.Errorf("to date: %v", err)
		}
		toDate = normalized
	}

	result := &CompileResult{}

	for i := range workouts {
		w := &workouts[i]
		if err := ValidateWorkout(i, w); err != nil {
			return nil, err
		}
		if fromDate != "" && w.Date < fromDate {
			continue
		}
		if toDate != "" && w.Date > toDate {
			continue
		}
		if w.Sport != eventSport {
			result.SkippedNonRun++
			continue
		}

		startTime := DefaultAllDayTime
		if w.Time != nil {
			normalized, err := NormalizeTime(*w.Time)
			if err != nil {
				return nil, err
			}
			startTime = normalized
		}

		result.Selected = append(result.Selected, *w)
		result.Events = append(result.Events, intervals.Event{
			Category:       intervals.EventCategoryWorkout,
			StartDateLocal: fmt.Sprintf("%sT%s", w.Date, startTime),
			Type:           eventSport,
			Name:           w.Name,
			Description:    RenderText(w),
			ExternalID:     ExternalID(w.Date, w.Name),
		})
	}

	// Zero-padded local timestamps sort correctly as strings; the sort
	// is stable so same-minute events keep document order.
	sort.SliceStable(result.Events, func(i, j int) bool {
		return result.Events[i].StartDateLocal < result.Events[j].StartDateLocal
	})
	return result, nil
}

// ExternalID derives the deterministic upsert key for a planned run.
// Identical date and name always produce the same id; names differing
// only in punctuation collapse to the same id on purpose, so a renamed
// workout updates its event rather than duplicating it.
func ExternalID(date, name string) string {
	return fmt.Sprintf("planned-run-%s-%s", date, Slugify(name))
}

// Slugify lowercases the name, collapses non-alphanumeric runs to
// single hyphens, and trims; an empty result falls back to "workout".
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "workout"
	}
	return slug
}

// NormalizeTime validates an HH:MM or HH:MM:SS time of day and returns
// it zero-padded with seconds.
func NormalizeTime(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("invalid time format: %s", value)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", fmt.Errorf("invalid time format: %s", value)
		}
		nums[i] = n
	}

	hh, mm, ss := nums[0], nums[1], nums[2]
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 || ss < 0 || ss > 59 {
		return "", fmt.Errorf("invalid time value: %s", value)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss), nil
}
