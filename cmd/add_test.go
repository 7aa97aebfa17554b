package cmd

import (
	"strings"
	"testing"
	"time"

	"timesheet/internal/record"
)

func TestRunAdd_Flags(t *testing.T) {
	env := setupTest(t)
	dateFlag = "01.03.2023"
	workFlag = "08:00-16:00"
	breakFlag = "12:00-12:30"
	commentFlag = "regular day"

	runAdd()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Added record for 01.03.2023 (7h30m worked)") {
		t.Errorf("Expected success message, got: %s", env.stdout.String())
	}

	store := env.openTestStore(t)
	defer store.Close()
	rec, err := store.Get(record.NewDate(2023, time.March, 1))
	if err != nil {
		t.Fatalf("Record not stored: %v", err)
	}
	if rec.Work.String() != "08:00-16:00" || rec.Comment != "regular day" {
		t.Errorf("Stored record = %+v, expected the flag values", rec)
	}
}

func TestRunAdd_Interactive(t *testing.T) {
	env := setupTest(t)
	env.stdin("01.03.2023\n08:00-16:00\n12:00-12:30\n\n")

	runAdd()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "- Enter the DATE of record: ") {
		t.Errorf("Expected interactive prompts, got: %s", out)
	}
	if !strings.Contains(out, "Added record for 01.03.2023 (7h30m worked)") {
		t.Errorf("Expected success message, got: %s", out)
	}

	store := env.openTestStore(t)
	defer store.Close()
	rec, err := store.Get(record.NewDate(2023, time.March, 1))
	if err != nil {
		t.Fatalf("Record not stored: %v", err)
	}
	if rec.Comment != "" {
		t.Errorf("Expected no comment for an empty answer, got %q", rec.Comment)
	}
}

func TestRunAdd_SpecialRecord(t *testing.T) {
	env := setupTest(t)
	specialFlag = true
	dateFlag = "02.03.2023"
	commentFlag = "Vacation"

	runAdd()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Added record for 02.03.2023 (0h worked)") {
		t.Errorf("Expected success message, got: %s", env.stdout.String())
	}

	store := env.openTestStore(t)
	defer store.Close()
	rec, err := store.Get(record.NewDate(2023, time.March, 2))
	if err != nil {
		t.Fatalf("Record not stored: %v", err)
	}
	if !rec.Special || !rec.Work.IsZero() || !rec.Break.IsZero() {
		t.Errorf("Stored record = %+v, expected a special record with zero intervals", rec)
	}
}

func TestRunAdd_DuplicateDate(t *testing.T) {
	env := setupTest(t)
	env.seed(t, workRecord(t, 1, "08:00-16:00", ""))
	nonInteractiveFlag = true
	dateFlag = "01.03.2023"
	workFlag = "09:00-17:00"

	runAdd()

	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	stderr := env.stderr.String()
	if !strings.Contains(stderr, "A record for 01.03.2023 already exists") {
		t.Errorf("Expected duplicate error, got: %s", stderr)
	}
	if !strings.Contains(stderr, "timesheet update") {
		t.Errorf("Expected update hint, got: %s", stderr)
	}

	// The stored record is unchanged.
	store := env.openTestStore(t)
	defer store.Close()
	rec, err := store.Get(record.NewDate(2023, time.March, 1))
	if err != nil {
		t.Fatalf("Seeded record lost: %v", err)
	}
	if rec.Work.String() != "08:00-16:00" {
		t.Errorf("Stored work = %s, expected the seeded 08:00-16:00", rec.Work)
	}
}

func TestRunAdd_MissingInputNonInteractive(t *testing.T) {
	env := setupTest(t)
	nonInteractiveFlag = true

	runAdd()

	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Error: No valid record input") {
		t.Errorf("Expected input error, got: %s", env.stderr.String())
	}
}

func TestRunAdd_NoBreak(t *testing.T) {
	env := setupTest(t)
	nonInteractiveFlag = true
	dateFlag = "03.03.2023"
	workFlag = "08:00-12:00"

	runAdd()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Added record for 03.03.2023 (4h worked)") {
		t.Errorf("Expected success message, got: %s", env.stdout.String())
	}
}
