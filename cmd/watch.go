package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timesheet/internal/report"
	"timesheet/internal/storage"
	"timesheet/internal/timeutil"
	"timesheet/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render a month whenever the store changes",
	Long: `Render the selected month as a table and keep running, re-rendering
whenever the record store file changes on disk.

The month is the one containing --date; without the flag the current
month is used. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch renders the month once, then blocks re-rendering on store
// changes until interrupted.
func runWatch() {
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

	path, err := cfg.StoragePath()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to resolve the store location")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	renderWatchedMonth(store, cfg.Owner, year, month)
	fmt.Fprintf(deps.Stdout, "\nWatching %s (Ctrl+C to stop)\n", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(path, func() {
		fmt.Fprintf(deps.Stdout, "\nStore changed at %s\n", time.Now().Format("15:04:05"))
		renderWatchedMonth(store, cfg.Owner, year, month)
	}).WithErrorHandler(func(err error) {
		fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	})

	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(deps.Stderr, "Error: Watching the store failed")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: The store directory must exist while watching")
		deps.Exit(1)
		return
	}
	fmt.Fprintln(deps.Stdout, "Stopped watching")
}

// renderWatchedMonth prints the month table. Read and render failures
// are reported as warnings; the watch loop keeps running.
func renderWatchedMonth(store storage.Store, owner string, year int, month time.Month) {
	records, err := store.Month(year, month)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: Failed to read records: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records for %s\n", timeutil.MonthLabel(year, month))
		return
	}
	rep := report.Build(records, year, month, owner)
	if err := report.Render(deps.Stdout, rep, report.FormatTable); err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: Failed to render: %v\n", err)
	}
}
