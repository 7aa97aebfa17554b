package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timesheet/internal/config"
	"timesheet/internal/record"
	"timesheet/internal/storage"
)

// testEnv bundles the buffers, store location and observed exit state
// of one command invocation under test.
type testEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	cfg      config.Config
	exitCode int
	exited   bool
}

// setupTest installs buffer-backed deps over a store in a temp
// directory and clears all flag values, restoring both when the test
// ends. Tests adjust env.cfg or the flag variables before calling a
// command function.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "records.jsonl")

	env := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, cfg: cfg}
	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  strings.NewReader(""),
		Exit: func(code int) {
			env.exited = true
			env.exitCode = code
		},
		LoadConfig: func() (config.Config, error) {
			return env.cfg, nil
		},
	})
	t.Cleanup(ResetDeps)

	resetFlags()
	t.Cleanup(resetFlags)
	return env
}

// resetFlags clears every package-level flag value.
func resetFlags() {
	nonInteractiveFlag = false
	specialFlag = false
	dateFlag = ""
	workFlag = ""
	breakFlag = ""
	commentFlag = ""
	exportFormatFlag = ""
}

// stdin replaces the command input for interactive prompt tests.
func (env *testEnv) stdin(input string) {
	deps.Stdin = strings.NewReader(input)
}

// openTestStore opens the same store the command under test uses.
func (env *testEnv) openTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.Open(env.cfg)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return store
}

// seed inserts records into the store the command under test uses.
func (env *testEnv) seed(t *testing.T, recs ...record.Record) {
	t.Helper()
	store := env.openTestStore(t)
	defer store.Close()
	for _, rec := range recs {
		if err := store.Add(rec); err != nil {
			t.Fatalf("Failed to seed record for %s: %v", rec.Date, err)
		}
	}
}

// workRecord builds a regular March 2023 record for the given day. An
// empty brk means no break.
func workRecord(t *testing.T, day int, work, brk string) record.Record {
	t.Helper()
	rec := record.Record{Date: record.NewDate(2023, time.March, day)}
	var err error
	if rec.Work, err = record.ParseInterval(work); err != nil {
		t.Fatalf("bad work interval %q: %v", work, err)
	}
	if brk != "" {
		if rec.Break, err = record.ParseInterval(brk); err != nil {
			t.Fatalf("bad break interval %q: %v", brk, err)
		}
	}
	return rec
}

// specialRecord builds a March 2023 day-off record for the given day.
func specialRecord(day int, comment string) record.Record {
	return record.Record{
		Date:    record.NewDate(2023, time.March, day),
		Comment: comment,
		Special: true,
	}
}

func TestExecute_Help(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"timesheet", "--help"}
	defer func() {
		os.Args = oldArgs
		// Un-latch the parsed --help value so later tests that execute
		// rootCmd in this process start from a clean flag state.
		if f := rootCmd.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}()

	if err := Execute(); err != nil {
		t.Errorf("Execute() returned error: %v", err)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abcdef1", "2023-03-01")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(--version) failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"timesheet version 1.2.3", "commit: abcdef1", "built: 2023-03-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in version output, got: %s", want, out)
		}
	}
}

func TestSelectedMonth_FromFlag(t *testing.T) {
	setupTest(t)
	dateFlag = "15.03.2023"

	year, month, ok := selectedMonth()
	if !ok {
		t.Fatal("selectedMonth() failed for a valid date")
	}
	if year != 2023 || month != time.March {
		t.Errorf("selectedMonth() = %d %s, expected 2023 March", year, month)
	}
}

func TestSelectedMonth_DefaultsToCurrentMonth(t *testing.T) {
	setupTest(t)

	year, month, ok := selectedMonth()
	if !ok {
		t.Fatal("selectedMonth() failed without a date flag")
	}
	now := time.Now()
	if year != now.Year() || month != now.Month() {
		t.Errorf("selectedMonth() = %d %s, expected the current month", year, month)
	}
}

func TestSelectedMonth_InvalidDate(t *testing.T) {
	env := setupTest(t)
	dateFlag = "2023-03-15"

	_, _, ok := selectedMonth()
	if ok {
		t.Fatal("selectedMonth() succeeded for an ISO date")
	}
	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Invalid date") {
		t.Errorf("Expected 'Invalid date' on stderr, got: %s", env.stderr.String())
	}
}

func TestLoadConfig_Error(t *testing.T) {
	env := setupTest(t)
	deps.LoadConfig = func() (config.Config, error) {
		return config.Config{}, fmt.Errorf("config file unreadable")
	}

	_, ok := loadConfig()
	if ok {
		t.Fatal("loadConfig() succeeded despite a loader error")
	}
	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Failed to load configuration") {
		t.Errorf("Expected configuration error, got: %s", env.stderr.String())
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	env := setupTest(t)
	env.cfg.Storage.Backend = "redis"

	_, ok := openStore(env.cfg)
	if ok {
		t.Fatal("openStore() succeeded for an unknown backend")
	}
	if !env.exited || env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Failed to open the record store") {
		t.Errorf("Expected store error, got: %s", env.stderr.String())
	}
}
