// Package cli contains the Cobra command tree for fitmetrics.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitmetrics/internal/config"
	"fitmetrics/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fitmetrics",
	Short: "Fitness tracking API and reports",
	Long: `fitmetrics records weight, steps, workouts and meals against a
fixed-length fitness plan and aggregates them into weekly summaries, goal
progress, streaks and macro distributions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			output.SetNoColor(true)
		} else {
			output.DetectColor(os.Stdout)
		}
		c, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./fitmetrics.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
