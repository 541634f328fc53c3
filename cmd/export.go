package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trainlog/internal/config"
	"trainlog/internal/export"
	"trainlog/internal/intervals"
	"trainlog/internal/store"
)

// ExportCmd fetches a week of activities and writes the weekly payload
// file.
func ExportCmd() *cobra.Command {
	var (
		weekStart      string
		weekEnd        string
		thisWeek       bool
		lastWeek       bool
		outDir         string
		includePrivate bool
		includeCommute bool
		dryRun         bool
		useIntervals   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a week of activities to the weekly JSON payload",
		Long:  "Fetch activities for a Monday..Sunday week from Strava (or Intervals.icu), normalize them into canonical run/ride records, and write weekly_{week_start}.json.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			start, end, err := resolveWeek(time.Now().In(cfg.Location()), weekStart, weekEnd, thisWeek, lastWeek)
			if err != nil {
				return err
			}

			var payload *export.WeeklyPayload
			var skipped export.SkipTally
			if useIntervals {
				payload, skipped, err = exportFromIntervals(cmd, cfg, start, end)
			} else {
				payload, skipped, err = exportFromStrava(cmd, cfg, start, end, includePrivate, includeCommute)
			}
			if err != nil {
				return err
			}

			if dryRun {
				if err := printDryRun(payload); err != nil {
					return err
				}
			} else {
				dir := outDir
				if dir == "" {
					dir = cfg.Export.OutDir
				}
				path, err := export.WriteWeekly(payload, dir)
				if err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", path)
			}

			fmt.Println(headingStyle.Render(export.Summary(payload, skipped)))
			return nil
		},
	}

	cmd.Flags().StringVar(&weekStart, "week-start", "", "Week start date (YYYY-MM-DD, a Monday)")
	cmd.Flags().StringVar(&weekEnd, "week-end", "", "Week end date (YYYY-MM-DD, a Sunday)")
	cmd.Flags().BoolVar(&thisWeek, "this-week", false, "Export the current Monday..Sunday week")
	cmd.Flags().BoolVar(&lastWeek, "last-week", false, "Export the previous Monday..Sunday week")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&includePrivate, "include-private", true, "Include private activities")
	cmd.Flags().BoolVar(&includeCommute, "include-commute", true, "Include commute activities")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the first mapped record instead of writing the payload file")
	cmd.Flags().BoolVar(&useIntervals, "intervals", false, "Fetch from Intervals.icu instead of Strava")

	return cmd
}

func exportFromStrava(cmd *cobra.Command, cfg *config.Config, weekStart, weekEnd string, includePrivate, includeCommute bool) (*export.WeeklyPayload, export.SkipTally, error) {
	ctx := cmd.Context()

	if err := cfg.ValidateStrava(); err != nil {
		return nil, nil, err
	}

	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	client, err := stravaClient(ctx, db, cfg)
	if err != nil {
		return nil, nil, err
	}

	after, before, err := weekBounds(weekStart, weekEnd, cfg.Location())
	if err != nil {
		return nil, nil, err
	}

	fmt.Printf("Fetching Strava activities for %s..%s...\n", weekStart, weekEnd)
	activities, err := client.ListActivities(ctx, after, before)
	if err != nil {
		return nil, nil, fmt.Errorf("listing activities: %w", err)
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("Fetched %d activities", len(activities))))

	payload, skipped, err := export.FromStrava(ctx, activities, client, db, weekStart, weekEnd, export.StravaOptions{
		IncludePrivate: includePrivate,
		IncludeCommute: includeCommute,
	})
	if err != nil {
		return nil, nil, err
	}
	return payload, skipped, nil
}

func exportFromIntervals(cmd *cobra.Command, cfg *config.Config, weekStart, weekEnd string) (*export.WeeklyPayload, export.SkipTally, error) {
	ctx := cmd.Context()

	if err := cfg.ValidateIntervals(); err != nil {
		return nil, nil, err
	}

	client := intervals.NewClient(cfg.Intervals.APIKey, cfg.Intervals.AthleteID)

	fmt.Printf("Fetching Intervals.icu activities for %s..%s...\n", weekStart, weekEnd)
	activities, err := client.ListActivities(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("listing activities: %w", err)
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("Fetched %d activities", len(activities))))

	payload, skipped := export.FromIntervals(activities, weekStart, weekEnd)
	return payload, skipped, nil
}

// printDryRun shows the first mapped record as indented JSON so the
// mapping can be eyeballed without writing anything.
func printDryRun(payload *export.WeeklyPayload) error {
	var sample any
	switch {
	case len(payload.Runs) > 0:
		sample = payload.Runs[0]
	case len(payload.Rides) > 0:
		sample = payload.Rides[0]
	default:
		fmt.Println(warnStyle.Render("Dry run: no mapped records this week."))
		return nil
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sample record: %w", err)
	}
	fmt.Println("Dry run: first mapped record:")
	fmt.Println(string(data))
	return nil
}
