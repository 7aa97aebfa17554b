package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/storage"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a record",
	Long: `Delete the record stored for a date.

The date comes from --date or an interactive prompt. Deleting a date
without a record fails.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runDelete()
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// runDelete removes the record for the given date from the store.
func runDelete() {
	scanner := bufio.NewScanner(deps.Stdin)
	date, err := promptDate(scanner)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: No valid date input")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: Expected date of following format: 'DD.MM.YYYY'")
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

	if err := store.Delete(date); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			fmt.Fprintf(deps.Stderr, "Error: No record found for %s\n", date)
			fmt.Fprintln(deps.Stderr, "Hint: Check the stored dates with 'timesheet export'")
		} else {
			fmt.Fprintln(deps.Stderr, "Error: Failed to delete the record")
			fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Deleted record for %s\n", date)
}
