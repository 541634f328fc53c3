package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"trainlog/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trainlog",
		Short: "Export weekly training data and push planned workouts",
		Long:  "Trainlog normalizes a week of Strava or Intervals.icu activities into a canonical weekly JSON payload, and compiles planned workouts into Intervals.icu calendar events.",
	}

	rootCmd.AddCommand(cmd.ExportCmd())
	rootCmd.AddCommand(cmd.PlanPushCmd())
	rootCmd.AddCommand(cmd.AuthCmd())

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
