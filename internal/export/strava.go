package export

import (
	"context"
	"fmt"
	"math"
	"sort"

	"trainlog/internal/strava"
)

// Upstream activity type strings mapped to disciplines.
var (
	stravaRunTypes  = map[string]bool{"Run": true, "VirtualRun": true}
	stravaRideTypes = map[string]bool{"Ride": true, "VirtualRide": true}
)

// Skip reasons with fixed names. Unrecognized activity types are
// tallied under their upstream type string.
const (
	skipPrivate     = "private"
	skipCommute     = "commute"
	skipMissingDate = "missing_date"
	skipUnknown     = "unknown"
)

// DetailSource fetches per-activity enrichment data. *strava.Client
// satisfies it; tests inject a fake.
type DetailSource interface {
	ActivityDetail(ctx context.Context, activityID int64) (*strava.ActivityDetail, error)
	Gear(ctx context.Context, gearID string) (*strava.Gear, error)
}

// GearCache maps gear ids to display names across a pipeline run. A
// miss is resolved through the DetailSource and written back, so
// repeated gear ids cost one lookup.
type GearCache interface {
	GearName(gearID string) (name string, ok bool, err error)
	PutGearName(gearID, name string) error
}

// StravaOptions controls which flagged activities are included.
type StravaOptions struct {
	IncludePrivate bool
	IncludeCommute bool
}

// FromStrava normalizes a batch of Strava activities into the weekly
// payload. Week bounds label the payload only; filtering by date range
// is the upstream query's responsibility. Every input activity is
// either mapped to exactly one run/ride or counted in the skip tally.
func FromStrava(ctx context.Context, activities []strava.Activity, src DetailSource, gears GearCache, weekStart, weekEnd string, opts StravaOptions) (*WeeklyPayload, SkipTally, error) {
	payload := NewWeeklyPayload(weekStart, weekEnd)
	skipped := SkipTally{}

	for _, a := range activities {
		switch {
		case a.Private && !opts.IncludePrivate:
			skipped.Add(skipPrivate)
		case a.Commute && !opts.IncludeCommute:
			skipped.Add(skipCommute)
		case stravaRunTypes[a.Type]:
			run, err := mapStravaRun(ctx, a, src, gears)
			if err != nil {
				return nil, nil, err
			}
			payload.Runs = append(payload.Runs, *run)
		case stravaRideTypes[a.Type]:
			ride, err := mapStravaRide(ctx, a, src)
			if err != nil {
				return nil, nil, err
			}
			payload.Rides = append(payload.Rides, *ride)
		case a.Type == "":
			skipped.Add(skipUnknown)
		default:
			skipped.Add(a.Type)
		}
	}

	sortRunsByDate(payload.Runs)
	sortRidesByDate(payload.Rides)
	return payload, skipped, nil
}

func mapStravaRun(ctx context.Context, a strava.Activity, src DetailSource, gears GearCache) (*Run, error) {
	distanceKm := MetersToKm(a.Distance)
	run := &Run{
		Date:         a.StartDateLocal.Format("2006-01-02"),
		Type:         ClassifyStravaRun(a.WorkoutType, a.Name, distanceKm),
		DistanceKm:   Round1(distanceKm),
		DurationMin:  Round1(DurationMin(float64(a.MovingTime))),
		AvgPace:      paceFor(distanceKm, DurationMin(float64(a.MovingTime))),
		AvgHR:        intFromFloat(a.AverageHeartrate),
		MaxHR:        intFromFloat(a.MaxHeartrate),
		TrainingLoad: intFromFloat(a.SufferScore),
		Notes:        activityNotes(a.Name, "Run", a.ID),
		Splits:       []any{},
	}

	if a.GearID != nil && *a.GearID != "" {
		name, err := resolveGearName(ctx, *a.GearID, src, gears)
		if err != nil {
			return nil, err
		}
		if name != "" {
			run.Shoes = &name
		}
	}

	detail, err := src.ActivityDetail(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching detail for activity %d: %w", a.ID, err)
	}
	run.Notes = detail.Description
	return run, nil
}

func mapStravaRide(ctx context.Context, a strava.Activity, src DetailSource) (*Ride, error) {
	ride := &Ride{
		Date:         a.StartDateLocal.Format("2006-01-02"),
		Type:         ClassifyStravaRide(a.Name, a.Trainer, a.Commute),
		DurationMin:  Round1(DurationMin(float64(a.MovingTime))),
		AvgPower:     intFromFloat(a.AverageWatts),
		NormPower:    intFromFloat(a.WeightedAverageWatts),
		AvgHR:        intFromFloat(a.AverageHeartrate),
		TrainingLoad: intFromFloat(a.SufferScore),
		Notes:        activityNotes(a.Name, "Ride", a.ID),
	}

	detail, err := src.ActivityDetail(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching detail for activity %d: %w", a.ID, err)
	}
	ride.Notes = detail.Description
	return ride, nil
}

// resolveGearName answers from the cache when possible, otherwise looks
// the gear up and persists the name for the next run. An upstream gear
// record without a name resolves to "" and is not cached.
func resolveGearName(ctx context.Context, gearID string, src DetailSource, gears GearCache) (string, error) {
	name, ok, err := gears.GearName(gearID)
	if err != nil {
		return "", fmt.Errorf("reading gear cache: %w", err)
	}
	if ok {
		return name, nil
	}

	gear, err := src.Gear(ctx, gearID)
	if err != nil {
		return "", fmt.Errorf("fetching gear %s: %w", gearID, err)
	}
	if gear.Name == "" {
		return "", nil
	}
	if err := gears.PutGearName(gearID, gear.Name); err != nil {
		return "", fmt.Errorf("writing gear cache: %w", err)
	}
	return gear.Name, nil
}

func intFromFloat(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

// Sorts are stable: same-day activities keep their input order.
func sortRunsByDate(runs []Run) {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Date < runs[j].Date })
}

func sortRidesByDate(rides []Ride) {
	sort.SliceStable(rides, func(i, j int) bool { return rides[i].Date < rides[j].Date })
}
