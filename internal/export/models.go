package export

// RunType is the canonical classification of a run.
type RunType string

const (
	RunEasy        RunType = "easy"
	RunLong        RunType = "long"
	RunProgression RunType = "progression"
	RunTempo       RunType = "tempo"
	RunIntervals   RunType = "intervals"
	RunRecovery    RunType = "recovery"
	RunRace        RunType = "race"
	RunUnknown     RunType = "unknown"
)

// RideType is the canonical classification of a ride.
type RideType string

const (
	RideOutdoorEndurance RideType = "outdoor_endurance"
	RideZwiftTempo       RideType = "zwift_tempo"
	RideZwiftIntervals   RideType = "zwift_intervals"
	RideRecovery         RideType = "recovery"
	RideRace             RideType = "race"
	RideUnknown          RideType = "unknown"
)

// Run is the canonical weekly-log record for a run, independent of the
// upstream source schema. Optional fields marshal as null when absent.
type Run struct {
	Date         string         `json:"date"`
	Type         RunType        `json:"type"`
	DistanceKm   float64        `json:"distance_km"`
	DurationMin  float64        `json:"duration_min"`
	AvgPace      *string        `json:"avg_pace"`
	AvgHR        *int           `json:"avg_hr"`
	MaxHR        *int           `json:"max_hr"`
	TrainingLoad *int           `json:"training_load"`
	Shoes        *string        `json:"shoes"`
	RPE          *int           `json:"rpe"`
	Notes        string         `json:"notes"`
	Splits       []any          `json:"splits"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Ride is the canonical weekly-log record for a ride.
type Ride struct {
	Date         string         `json:"date"`
	Type         RideType       `json:"type"`
	DurationMin  float64        `json:"duration_min"`
	AvgPower     *int           `json:"avg_power"`
	NormPower    *int           `json:"norm_power"`
	AvgHR        *int           `json:"avg_hr"`
	TrainingLoad *int           `json:"training_load"`
	RPE          *int           `json:"rpe"`
	Notes        string         `json:"notes"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// WeeklyPayload is the exported weekly training log. Week bounds are
// caller-supplied; strength/yoga/other are placeholders for disciplines
// this exporter does not source.
type WeeklyPayload struct {
	WeekStart  string   `json:"week_start"`
	WeekEnd    string   `json:"week_end"`
	BodyWeight *float64 `json:"body_weight"`
	Notes      string   `json:"notes"`
	Runs       []Run    `json:"runs"`
	Rides      []Ride   `json:"rides"`
	Strength   []any    `json:"strength"`
	Yoga       []any    `json:"yoga"`
	Other      []any    `json:"other"`
}

// NewWeeklyPayload returns a payload with empty (non-nil) record slices
// so empty disciplines marshal as [] rather than null.
func NewWeeklyPayload(weekStart, weekEnd string) *WeeklyPayload {
	return &WeeklyPayload{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Runs:      []Run{},
		Rides:     []Ride{},
		Strength:  []any{},
		Yoga:      []any{},
		Other:     []any{},
	}
}

// SkipTally counts excluded input records by exclusion reason. Every
// input record is either mapped to exactly one run/ride or counted here.
type SkipTally map[string]int

// Add increments the count for a reason.
func (t SkipTally) Add(reason string) {
	t[reason]++
}

// Total returns the number of skipped records across all reasons.
func (t SkipTally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}
