package strava

import "time"

// Activity is a summary activity from /athlete/activities. Optional
// numeric fields are pointers so an absent value is distinguishable
// from zero.
type Activity struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	SportType            string    `json:"sport_type"`
	StartDate            time.Time `json:"start_date"`
	StartDateLocal       time.Time `json:"start_date_local"`
	Distance             float64   `json:"distance"`    // meters
	MovingTime           int       `json:"moving_time"` // seconds
	ElapsedTime          int       `json:"elapsed_time"`
	WorkoutType          *int      `json:"workout_type"` // run: 1 race, 2 long, 3 intervals
	AverageHeartrate     *float64  `json:"average_heartrate"`
	MaxHeartrate         *float64  `json:"max_heartrate"`
	AverageWatts         *float64  `json:"average_watts"`
	WeightedAverageWatts *float64  `json:"weighted_average_watts"`
	SufferScore          *float64  `json:"suffer_score"`
	GearID               *string   `json:"gear_id"`
	Private              bool      `json:"private"`
	Commute              bool      `json:"commute"`
	Trainer              bool      `json:"trainer"`
}

// ActivityDetail is the richer per-activity response from
// /activities/{id}. Only the fields the exporter consumes are decoded.
type ActivityDetail struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Gear is an equipment record from /gear/{id}.
type Gear struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
