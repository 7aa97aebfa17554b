package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"timesheet/internal/report"
	"timesheet/internal/timeutil"
)

var exportFormatFlag string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month of records",
	Long: `Export all records of one month as a report.

The month is the one containing --date; without the flag the date is
asked for interactively. Reports go to stdout, or into a file named
timesheet_<MM>_<YYYY> when export.directory is configured. The format
comes from --format or the export.format configuration; table, csv,
json and yaml are available. An empty month exports an empty report.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runExport()
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormatFlag, "format", "", "report format: table, csv, json or yaml (default from config)")
	rootCmd.AddCommand(exportCmd)
}

// runExport renders the selected month and writes it to stdout or the
// configured export directory.
func runExport() {
	scanner := bufio.NewScanner(deps.Stdin)
	date, err := promptDate(scanner)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: No valid date input")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: Any date inside the month works, e.g. -d 01.03.2023")
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

	records, err := store.Month(date.Year(), date.Month())
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to read records")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	format := exportFormatFlag
	if format == "" {
		format = cfg.Export.Format
	}

	rep := report.Build(records, date.Year(), date.Month(), cfg.Owner)
	var buf bytes.Buffer
	if err := report.Render(&buf, rep, format); err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to render the report")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: Available formats are table, csv, json and yaml")
		deps.Exit(1)
		return
	}

	if cfg.Export.Directory == "" {
		_, _ = deps.Stdout.Write(buf.Bytes())
		return
	}

	if err := os.MkdirAll(cfg.Export.Directory, 0755); err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to create the export directory")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintf(deps.Stderr, "Hint: Check export.directory in your configuration: %s\n", cfg.Export.Directory)
		deps.Exit(1)
		return
	}
	path := filepath.Join(cfg.Export.Directory, report.FileName(format, date.Year(), date.Month()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to write the export file")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintf(deps.Stderr, "Hint: Check that the directory is writable: %s\n", cfg.Export.Directory)
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", timeutil.MonthLabel(date.Year(), date.Month()), path)
}
