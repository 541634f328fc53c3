package intervals

// EventCategoryWorkout is the calendar category for planned workouts.
const EventCategoryWorkout = "WORKOUT"

// Event is a calendar event for the bulk upsert endpoint. ExternalID is
// the idempotency key: re-uploading the same plan updates the existing
// calendar entries instead of duplicating them.
type Event struct {
	Category       string `json:"category"`
	StartDateLocal string `json:"start_date_local"` // 2006-01-02T15:04:05, local
	Type           string `json:"type"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ExternalID     string `json:"external_id"`
}
