package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trainlog/internal/intervals"
	"trainlog/internal/plan"
)

// PlanPushCmd validates a planned-workouts file, compiles it to
// calendar events, and uploads them to Intervals.icu.
func PlanPushCmd() *cobra.Command {
	var (
		plannedPath  string
		fromDate     string
		toDate       string
		dryRun       bool
		validateOnly bool
		adhoc        bool
	)

	cmd := &cobra.Command{
		Use:   "plan-push",
		Short: "Push planned workouts to the Intervals.icu calendar",
		Long:  "Validate a planned-workouts JSON file, compile the Run workouts into calendar events, upload them via bulk upsert, and archive the pushed plan.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			workouts, err := plan.LoadPlanned(plannedPath)
			if err != nil {
				return err
			}

			result, err := plan.Compile(workouts, plan.CompileOptions{
				FromDate: fromDate,
				ToDate:   toDate,
			})
			if err != nil {
				return err
			}

			if len(result.Events) == 0 {
				fmt.Println(warnStyle.Render("Warning: no workouts selected for upload."))
			}

			if validateOnly || dryRun {
				printEvents(result.Events)
				label := "Dry run"
				if validateOnly {
					label = "Validation"
				}
				fmt.Println(headingStyle.Render(fmt.Sprintf("%s complete. Events: %d, Skipped non-run: %d",
					label, len(result.Events), result.SkippedNonRun)))
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateIntervals(); err != nil {
				return err
			}

			client := intervals.NewClient(cfg.Intervals.APIKey, cfg.Intervals.AthleteID)
			if err := client.UpsertEvents(ctx, result.Events); err != nil {
				return fmt.Errorf("uploading events: %w", err)
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Uploaded %d workouts. Skipped non-run: %d",
				len(result.Events), result.SkippedNonRun)))

			if adhoc {
				return nil
			}
			archived, err := plan.ArchivePlan(result.Selected, plannedPath, cfg.Export.PlansDir)
			if err != nil {
				return fmt.Errorf("archiving plan: %w", err)
			}
			if archived != "" {
				fmt.Printf("Archived planned week to %s\n", archived)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plannedPath, "planned", "", "Path to the planned workouts JSON file (required)")
	cmd.Flags().StringVar(&fromDate, "from", "", "Only push workouts on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Only push workouts on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compile and print events without uploading")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Validate and print events without uploading")
	cmd.Flags().BoolVar(&adhoc, "adhoc", false, "Skip the plan archive after upload")
	cmd.MarkFlagRequired("planned")

	return cmd
}

func printEvents(events []intervals.Event) {
	for _, e := range events {
		fmt.Println(headingStyle.Render(fmt.Sprintf("%s  %s", e.StartDateLocal, e.Name)))
		if e.Description != "" {
			fmt.Println(mutedStyle.Render(e.Description))
		}
		fmt.Println()
	}
}
