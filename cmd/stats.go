package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timesheet/internal/record"
	"timesheet/internal/stats"
	"timesheet/internal/timeutil"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for a month",
	Long: `Show work hour statistics for one month: totals, averages, the
longest day and a per-weekday breakdown.

The month is the one containing --date; without the flag the current
month is used. Days off count into the record total but not into the
worked averages.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats prints the month summary and weekday breakdown.
func runStats() {
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

	records, err := store.Month(year, month)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to read records")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	label := timeutil.MonthLabel(year, month)
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records for %s\n", label)
		return
	}

	summary := stats.Calculate(records)

	fmt.Fprintf(deps.Stdout, "Statistics for %s\n", label)
	fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	fmt.Fprintf(deps.Stdout, "Records:          %d\n", summary.RecordCount)
	fmt.Fprintf(deps.Stdout, "Working days:     %d\n", summary.WorkingDays)
	fmt.Fprintf(deps.Stdout, "Days off:         %d\n", summary.SpecialDays)
	fmt.Fprintf(deps.Stdout, "Total worked:     %s\n", record.FormatDuration(summary.TotalWorked))
	if summary.WorkingDays > 0 {
		fmt.Fprintf(deps.Stdout, "Average per day:  %s\n", record.FormatDuration(summary.AveragePerDay))
		fmt.Fprintf(deps.Stdout, "Longest day:      %s (%s)\n", summary.LongestDay, record.FormatDuration(summary.LongestWorked))
	}

	breakdown := stats.CalculateWeekdayBreakdown(records)
	if len(breakdown) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "By weekday:")
	for _, day := range breakdown {
		fmt.Fprintf(deps.Stdout, "  %-9s  %-8s (%d %s)\n",
			day.Weekday, record.FormatDuration(day.TotalWorked), day.RecordCount, pluralize("record", day.RecordCount))
	}
}

// pluralize returns the singular or plural form of a word based on count
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
