package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timesheet/internal/config"
	"timesheet/internal/record"
	"timesheet/internal/storage"
)

// Flag values shared by every subcommand. All flags are accepted
// everywhere; each command reads the ones it cares about and ignores
// the rest.
var (
	nonInteractiveFlag bool
	specialFlag        bool
	dateFlag           string
	workFlag           string
	breakFlag          string
	commentFlag        string
)

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "A personal work hour tracking CLI",
	Long: `timesheet is a CLI tool for tracking daily work hours.

Usage:
  timesheet add -d 01.03.2023 -w 08:00-16:00 -b 12:00-12:30   Add a record
  timesheet add                                               Add a record interactively
  timesheet add -d 02.03.2023 -s -c 'Vacation'                Add a day off
  timesheet update -d 01.03.2023 -w 08:00-17:00               Replace a record
  timesheet delete -d 01.03.2023                              Delete a record
  timesheet export -d 01.03.2023 --format csv                 Export a month
  timesheet stats                                             Current month statistics
  timesheet watch                                             Re-render when the store changes
  timesheet tui                                               Interactive month browser

Dates use the format 'DD.MM.YYYY', time intervals 'HH:MM-HH:MM'.
A date holds at most one record.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&nonInteractiveFlag, "non-interactive", "n", false, "never prompt, fail on missing or invalid input")
	rootCmd.PersistentFlags().BoolVarP(&specialFlag, "special-record", "s", false, "mark the record as a day off (vacation, sick leave, holiday)")
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", "record date (DD.MM.YYYY)")
	rootCmd.PersistentFlags().StringVarP(&workFlag, "work-hours", "w", "", "work interval (HH:MM-HH:MM)")
	rootCmd.PersistentFlags().StringVarP(&breakFlag, "break-time", "b", "", "break interval (HH:MM-HH:MM)")
	rootCmd.PersistentFlags().StringVarP(&commentFlag, "comment", "c", "", "record comment")

	// cobra's auto-added version flag has no shorthand; define it with one.
	rootCmd.Flags().BoolP("version", "v", false, "version for timesheet")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timesheet version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the configuration. On failure it reports the error
// and triggers exit code 1; callers must stop when ok is false.
func loadConfig() (config.Config, bool) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check %s or the TIMESHEET_* environment variables\n", config.ConfigFile)
		deps.Exit(1)
		return config.Config{}, false
	}
	return cfg, true
}

// openStore opens the record store named by the configuration. On
// failure it reports the error and triggers exit code 1.
func openStore(cfg config.Config) (storage.Store, bool) {
	store, err := storage.Open(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the record store")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the storage section of your configuration")
		deps.Exit(1)
		return nil, false
	}
	return store, true
}

// selectedMonth resolves the month a command operates on: the month of
// --date when given, the current month otherwise.
func selectedMonth() (int, time.Month, bool) {
	if dateFlag == "" {
		now := time.Now()
		return now.Year(), now.Month(), true
	}
	date, err := record.ParseDate(dateFlag)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", dateFlag)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Expected date of following format: 'DD.MM.YYYY'")
		deps.Exit(1)
		return 0, 0, false
	}
	return date.Year(), date.Month(), true
}
