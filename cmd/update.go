package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/record"
	"timesheet/internal/storage"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace an existing record",
	Long: `Replace the record stored for a date.

All fields are collected again from flags and prompts, exactly like
add; the date selects the record and stays unchanged. Updating a date
without a record fails.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate()
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// runUpdate collects a record and replaces the stored one for its date.
func runUpdate() {
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

	if err := store.Update(rec.Date, rec); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			fmt.Fprintf(deps.Stderr, "Error: No record found for %s\n", rec.Date)
			fmt.Fprintf(deps.Stderr, "Hint: Use 'timesheet add -d %s' to create it\n", rec.Date)
		} else {
			fmt.Fprintln(deps.Stderr, "Error: Failed to save the record")
			fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Updated record for %s (%s worked)\n", rec.Date, record.FormatDuration(rec.Worked()))
}
