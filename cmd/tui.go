package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse records in an interactive terminal UI",
	Long: `Open an interactive month browser. Navigate between months and add,
edit or delete records without leaving the terminal.

The month is the one containing --date; without the flag the current
month is used. Press ? inside the browser for the key bindings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTui()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTui opens the store and hands the terminal to the month browser.
func runTui() {
	year, month, ok := selectedMonth()
	if !ok {
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

	if err := tui.Run(store, year, month, cfg.Theme); err != nil {
		fmt.Fprintln(deps.Stderr, "Error: The terminal UI terminated unexpectedly")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
}
