package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"timesheet/internal/record"
)

// promptAttempts bounds interactive re-prompting for a single value.
// Non-interactive runs get exactly one attempt, the flag value.
const promptAttempts = 3

// promptDate resolves the record date from the --date flag or, when the
// flag is missing or invalid, from interactive prompts. A flag value
// counts as the first attempt.
func promptDate(scanner *bufio.Scanner) (record.Date, error) {
	input := strings.TrimSpace(dateFlag)

	if nonInteractiveFlag {
		if input == "" {
			return record.Date{}, fmt.Errorf("no date given: %w", record.ErrInvalidDate)
		}
		return record.ParseDate(input)
	}

	haveInput := input != ""
	for attempt := 0; attempt < promptAttempts; attempt++ {
		if !haveInput {
			fmt.Fprint(deps.Stdout, "- Enter the DATE of record: ")
			if !scanner.Scan() {
				break
			}
			input = strings.TrimSpace(scanner.Text())
		}
		date, err := record.ParseDate(input)
		if err == nil {
			return date, nil
		}
		fmt.Fprintln(deps.Stdout, "Expected date of following format: 'DD.MM.YYYY'")
		haveInput = false
	}
	return record.Date{}, fmt.Errorf("no valid date entered: %w", record.ErrInvalidDate)
}

// promptInterval resolves a time interval from its flag or interactive
// prompts. kind names the value in the prompt and the format hint,
// "WORK HOURS" or "BREAK TIME". Optional intervals accept an empty
// interactive answer or an empty flag as "none".
func promptInterval(scanner *bufio.Scanner, kind, flagValue string, optional bool) (record.Interval, error) {
	input := strings.TrimSpace(flagValue)

	if nonInteractiveFlag {
		if input == "" {
			if optional {
				return record.Interval{}, nil
			}
			return record.Interval{}, fmt.Errorf("no %s given: %w", strings.ToLower(kind), record.ErrInvalidInterval)
		}
		return record.ParseInterval(input)
	}

	haveInput := input != ""
	for attempt := 0; attempt < promptAttempts; attempt++ {
		if !haveInput {
			fmt.Fprintf(deps.Stdout, "- Enter the BEGIN and END %s: ", kind)
			if !scanner.Scan() {
				break
			}
			input = strings.TrimSpace(scanner.Text())
			if input == "" && optional {
				return record.Interval{}, nil
			}
		}
		interval, err := record.ParseInterval(input)
		if err == nil {
			return interval, nil
		}
		fmt.Fprintf(deps.Stdout, "Expected %s of following format: 'HH:MM-HH:MM'\n", kind)
		haveInput = false
	}
	return record.Interval{}, fmt.Errorf("no valid %s entered: %w", strings.ToLower(kind), record.ErrInvalidInterval)
}

// promptComment returns the record comment. The flag wins; otherwise a
// single prompt is made with no validation, an empty answer simply
// means no comment.
func promptComment(scanner *bufio.Scanner) string {
	if commentFlag != "" || nonInteractiveFlag {
		return strings.TrimSpace(commentFlag)
	}
	fmt.Fprint(deps.Stdout, "- Enter the COMMENT of record, if needed: ")
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// collectRecord gathers a complete record from flags and prompts, in
// the fixed order date, work hours, break time, comment. Special
// records keep zero intervals; --work-hours and --break-time given
// alongside --special-record are ignored.
func collectRecord() (record.Record, error) {
	scanner := bufio.NewScanner(deps.Stdin)

	date, err := promptDate(scanner)
	if err != nil {
		return record.Record{}, err
	}

	rec := record.Record{Date: date, Special: specialFlag}
	if rec.Special {
		rec.Comment = promptComment(scanner)
		return rec, rec.Validate()
	}

	work, err := promptInterval(scanner, "WORK HOURS", workFlag, false)
	if err != nil {
		return record.Record{}, err
	}
	rec.Work = work

	brk, err := promptInterval(scanner, "BREAK TIME", breakFlag, true)
	if err != nil {
		return record.Record{}, err
	}
	rec.Break = brk

	rec.Comment = promptComment(scanner)
	return rec, rec.Validate()
}
