package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/record"
	"timesheet/internal/storage"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new record",
	Long: `Add a work hour record for a single date.

Values missing from the flags are asked for interactively. A special
record (--special-record) marks a day off and carries no work or break
hours. Each date holds at most one record; adding a second one fails.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runAdd()
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// runAdd collects a record and inserts it into the store.
func runAdd() {
	rec, err := collectRecord()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: No valid record input")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: Dates use 'DD.MM.YYYY', time intervals 'HH:MM-HH:MM'")
		deps.Exit(1)
		return
	}

	cfg, ok := loadConfig()
	if !ok {
		return
	}
	store, ok := openStore(cfg)
	if !ok {
		return
	}
	defer store.Close()

	if err := store.Add(rec); err != nil {
		if errors.Is(err, storage.ErrDuplicateRecord) {
			fmt.Fprintf(deps.Stderr, "Error: A record for %s already exists\n", rec.Date)
			fmt.Fprintf(deps.Stderr, "Hint: Use 'timesheet update -d %s' to change it\n", rec.Date)
		} else {
			fmt.Fprintln(deps.Stderr, "Error: Failed to save the record")
			fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Added record for %s (%s worked)\n", rec.Date, record.FormatDuration(rec.Worked()))
}
