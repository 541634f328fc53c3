package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteWeekly writes the payload to {outDir}/weekly_{week_start}.json
// with stable two-space indentation, creating the directory if needed.
// It returns the written path.
func WriteWeekly(payload *WeeklyPayload, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding weekly payload: %w", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("weekly_%s.json", payload.WeekStart))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing weekly payload: %w", err)
	}
	return path, nil
}

// Summary renders the one-line export report: record counts, volume
// totals, and the skip tally (sorted by reason for stable output).
func Summary(payload *WeeklyPayload, skipped SkipTally) string {
	var runKm, rideMin float64
	for _, r := range payload.Runs {
		runKm += r.DistanceKm
	}
	for _, r := range payload.Rides {
		rideMin += r.DurationMin
	}

	skippedStr := "none"
	if len(skipped) > 0 {
		reasons := make([]string, 0, len(skipped))
		for reason := range skipped {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		parts := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, skipped[reason]))
		}
		skippedStr = strings.Join(parts, ", ")
	}

	return fmt.Sprintf("Runs: %d, Rides: %d, Run km: %.1f, Ride min: %.1f, Skipped: %s",
		len(payload.Runs), len(payload.Rides), runKm, rideMin, skippedStr)
}
