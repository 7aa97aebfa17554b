package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"timesheet/internal/record"
	"timesheet/internal/timeutil"
)

// Export formats accepted by Render.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Render writes the report to w in the given format. An empty format
// means table. Unknown formats are rejected by name.
func Render(w io.Writer, rep Report, format string) error {
	switch format {
	case FormatTable, "":
		return renderTable(w, rep)
	case FormatCSV:
		return renderCSV(w, rep)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatYAML:
		return renderYAML(w, rep)
	default:
		return fmt.Errorf("unknown export format %q (expected table, csv, json or yaml)", format)
	}
}

// FileName returns the export file name for the month, e.g.
// timesheet_03_2023.csv. Table reports get a .txt extension.
func FileName(format string, year int, month time.Month) string {
	ext := format
	if format == FormatTable || format == "" {
		ext = "txt"
	}
	return fmt.Sprintf("timesheet_%02d_%d.%s", int(month), year, ext)
}

// renderTable writes the human-readable report: a title, one padded row
// per day and a TOTAL line. Special days show dashes instead of times.
func renderTable(w io.Writer, rep Report) error {
	headers := []string{"DATE", "WORK", "BREAK", "WORKED", "COMMENT"}
	rows := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		work := row.Work.String()
		brk := row.Break.String()
		if row.Special {
			work, brk = "-", "-"
		} else if row.Break.IsZero() {
			brk = "-"
		}
		rows = append(rows, []string{
			row.Date.String(),
			work,
			brk,
			record.FormatDuration(row.Worked),
			row.Comment,
		})
	}
	total := []string{"TOTAL", "", "", record.FormatDuration(rep.TotalWorked), ""}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range append(rows, total) {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Timesheet %s\n", timeutil.MonthLabel(rep.Year, rep.Month))
	if rep.Owner != "" {
		fmt.Fprintf(bw, "Owner: %s\n", rep.Owner)
	}
	fmt.Fprintln(bw)

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(bw, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintln(bw)
	writeRow(total)

	return bw.Flush()
}

func renderCSV(w io.Writer, rep Report) error {
	writer := csv.NewWriter(w)

	headers := []string{"date", "work_start", "work_end", "break_start", "break_end", "worked", "worked_minutes", "comment", "special"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range rep.Rows {
		csvRow := []string{
			row.Date.Key(),
			row.Work.Start.String(),
			row.Work.End.String(),
			row.Break.Start.String(),
			row.Break.End.String(),
			record.FormatDuration(row.Worked),
			strconv.Itoa(int(row.Worked.Minutes())),
			row.Comment,
			strconv.FormatBool(row.Special),
		}
		if err := writer.Write(csvRow); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", row.Date, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv output: %w", err)
	}
	return nil
}

// document is the structured export shape shared by the json and yaml
// renderers.
type document struct {
	Month        string           `json:"month" yaml:"month"`
	Year         int              `json:"year" yaml:"year"`
	Owner        string           `json:"owner,omitempty" yaml:"owner,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at" yaml:"generated_at"`
	TotalRecords int              `json:"total_records" yaml:"total_records"`
	TotalWorked  string           `json:"total_worked" yaml:"total_worked"`
	Records      []documentRecord `json:"records" yaml:"records"`
}

type documentRecord struct {
	Date          string `json:"date" yaml:"date"`
	WorkStart     string `json:"work_start" yaml:"work_start"`
	WorkEnd       string `json:"work_end" yaml:"work_end"`
	BreakStart    string `json:"break_start" yaml:"break_start"`
	BreakEnd      string `json:"break_end" yaml:"break_end"`
	Worked        string `json:"worked" yaml:"worked"`
	WorkedMinutes int    `json:"worked_minutes" yaml:"worked_minutes"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Special       bool   `json:"special,omitempty" yaml:"special,omitempty"`
}

func buildDocument(rep Report) document {
	doc := document{
		Month:        rep.Month.String(),
		Year:         rep.Year,
		Owner:        rep.Owner,
		GeneratedAt:  time.Now().UTC(),
		TotalRecords: len(rep.Rows),
		TotalWorked:  record.FormatDuration(rep.TotalWorked),
		Records:      make([]documentRecord, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		doc.Records = append(doc.Records, documentRecord{
			Date:          row.Date.Key(),
			WorkStart:     row.Work.Start.String(),
			WorkEnd:       row.Work.End.String(),
			BreakStart:    row.Break.Start.String(),
			BreakEnd:      row.Break.End.String(),
			Worked:        record.FormatDuration(row.Worked),
			WorkedMinutes: int(row.Worked.Minutes()),
			Comment:       row.Comment,
			Special:       row.Special,
		})
	}
	return doc
}

func renderJSON(w io.Writer, rep Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(buildDocument(rep)); err != nil {
		return fmt.Errorf("encoding json output: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, rep Report) error {
	data, err := yaml.Marshal(buildDocument(rep))
	if err != nil {
		return fmt.Errorf("encoding yaml output: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing yaml output: %w", err)
	}
	return nil
}
