package export

import "time"

// intervalsRideFamily are the Intervals.icu activity types folded into
// the canonical ride discipline.
var intervalsRideFamily = map[string]bool{
	"Ride":               true,
	"Virtual Ride":       true,
	"VirtualRide":        true,
	"E-Bike Ride":        true,
	"Mountain Bike Ride": true,
	"Gravel Ride":        true,
}

// startDateLayouts are the timestamp shapes seen in Intervals.icu
// start-date fields.
var startDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FromIntervals normalizes a batch of Intervals.icu activity records
// into the weekly payload. The source is loosely typed, so fields are
// resolved through the ordered-key extractor; a record without a
// parseable start date is tallied as missing_date.
func FromIntervals(activities []map[string]any, weekStart, weekEnd string) (*WeeklyPayload, SkipTally) {
	payload := NewWeeklyPayload(weekStart, weekEnd)
	skipped := SkipTally{}

	for _, raw := range activities {
		rec := Record(raw)

		date, ok := activityDate(rec)
		if !ok {
			skipped.Add(skipMissingDate)
			continue
		}

		switch activityType := rec.String("type"); {
		case activityType == "Run":
			payload.Runs = append(payload.Runs, mapIntervalsRun(rec, date))
		case intervalsRideFamily[activityType]:
			payload.Rides = append(payload.Rides, mapIntervalsRide(rec, date))
		case activityType == "":
			skipped.Add(skipUnknown)
		default:
			skipped.Add(activityType)
		}
	}

	sortRunsByDate(payload.Runs)
	sortRidesByDate(payload.Rides)
	return payload, skipped
}

func mapIntervalsRun(rec Record, date string) Run {
	distanceKm := rawDistanceKm(rec)
	durationMin := rawDurationMin(rec)
	return Run{
		Date:         date,
		Type:         ClassifyIntervalsRun(rec.String("name")),
		DistanceKm:   Round1(distanceKm),
		DurationMin:  Round1(durationMin),
		AvgPace:      paceFor(distanceKm, durationMin),
		AvgHR:        AsInt(rec.First(avgHRKeys...)),
		MaxHR:        AsInt(rec.First(maxHRKeys...)),
		TrainingLoad: AsInt(rec.First(trainingLoadKeys...)),
		RPE:          AsInt(rec["feel"]),
		Notes:        intervalsNotes(rec),
		Splits:       []any{},
		Extra:        extraFields(rec),
	}
}

func mapIntervalsRide(rec Record, date string) Ride {
	return Ride{
		Date:         date,
		Type:         ClassifyIntervalsRide(rec.String("name"), rec.Bool("trainer"), rec.Bool("commute")),
		DurationMin:  Round1(rawDurationMin(rec)),
		AvgPower:     AsInt(rec.First(avgPowerKeys...)),
		NormPower:    AsInt(rec.First(normPowerKeys...)),
		AvgHR:        AsInt(rec.First(avgHRKeys...)),
		TrainingLoad: AsInt(rec.First(trainingLoadKeys...)),
		RPE:          AsInt(rec["feel"]),
		Notes:        intervalsNotes(rec),
		Extra:        extraFields(rec),
	}
}

// rawDistanceKm resolves a distance that may be recorded in kilometers
// or meters. Values above 1000 are assumed to be meters; this is a
// deliberate heuristic against upstream unit inconsistency and is kept
// exactly as calibrated.
func rawDistanceKm(rec Record) float64 {
	v, ok := AsFloat(rec.First(distanceKeys...))
	if !ok || v <= 0 {
		return 0
	}
	if v > 1000 {
		return v / 1000
	}
	return v
}

func rawDurationMin(rec Record) float64 {
	v, ok := AsFloat(rec.First(durationKeys...))
	if !ok {
		return 0
	}
	return DurationMin(v)
}

// intervalsNotes carries the athlete's own notes through unchanged.
func intervalsNotes(rec Record) string {
	if notes := rec.String("notes"); notes != "" {
		return notes
	}
	return rec.String("description")
}

// activityDate extracts the calendar date from the record's local (or,
// failing that, UTC) start timestamp.
func activityDate(rec Record) (string, bool) {
	raw, ok := rec.First(startDateKeys...).(string)
	if !ok || raw == "" {
		return "", false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
