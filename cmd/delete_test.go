package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"timesheet/internal/record"
	"timesheet/internal/storage"
)

func TestRunDelete_Flag(t *testing.T) {
	env := setupTest(t)
	env.seed(t, workRecord(t, 1, "08:00-16:00", ""))
	dateFlag = "01.03.2023"

	runDelete()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Deleted record for 01.03.2023") {
		t.Errorf("Expected success message, got: %s", env.stdout.String())
	}

	store := env.openTestStore(t)
	defer store.Close()
	if _, err := store.Get(record.NewDate(2023, time.March, 1)); !errors.Is(err, storage.ErrRecordNotFound) {
		t.Errorf("Expected the record gone, got: %v", err)
	}
}

func TestRunDelete_Interactive(t *testing.T) {
	env := setupTest(t)
	env.seed(t, workRecord(t, 1, "08:00-16:00", ""))
	env.stdin("01.03.2023\n")

	runDelete()

	if env.exited {
		t.Fatalf("Unexpected exit, stderr: %s", env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "- Enter the DATE of record: ") {
		t.Errorf("Expected date prompt, got: %s", out)
	}
	if !strings.Contains(out, "Deleted record for 01.03.2023") {
		t.Errorf("Expected success message, got: %s", out)
	}
}

func TestRunDelete_MissingRecord(t *testing.T) {
	env := setupTest(t)
	dateFlag = "01.03.2023"

	runDelete()

	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "No record found for 01.03.2023") {
		t.Errorf("Expected missing record error, got: %s", env.stderr.String())
	}
}

func TestRunDelete_MissingDateNonInteractive(t *testing.T) {
	env := setupTest(t)
	nonInteractiveFlag = true

	runDelete()

	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Error: No valid date input") {
		t.Errorf("Expected date error, got: %s", env.stderr.String())
	}
}

func TestRunDelete_OtherRecordsSurvive(t *testing.T) {
	env := setupTest(t)
	env.seed(t,
		workRecord(t, 1, "08:00-16:00", ""),
		workRecord(t, 2, "09:00-17:00", ""),
	)
	dateFlag = "01.03.2023"

	runDelete()

	store := env.openTestStore(t)
	defer store.Close()
	if _, err := store.Get(record.NewDate(2023, time.March, 2)); err != nil {
		t.Errorf("Unrelated record lost: %v", err)
	}
}
