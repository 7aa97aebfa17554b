package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// overrideUserConfigDir points default path resolution at dir for the
// duration of the test.
func overrideUserConfigDir(t *testing.T, dir string) {
	t.Helper()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDir = orig })
}

// clearEnv guards against TIMESHEET_* variables leaking in from the
// environment running the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, EnvStorageBackend, EnvStoragePath, EnvExportFormat, EnvExportDir, EnvOwner, EnvTheme} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Backend != BackendJSONL {
		t.Errorf("default backend = %q, expected %q", cfg.Storage.Backend, BackendJSONL)
	}
	if cfg.Export.Format != "table" {
		t.Errorf("default format = %q, expected %q", cfg.Export.Format, "table")
	}
	if cfg.Export.Directory != "" {
		t.Errorf("default export directory = %q, expected empty", cfg.Export.Directory)
	}
	if cfg.Source() != "built-in defaults" {
		t.Errorf("Source() = %q, expected %q", cfg.Source(), "built-in defaults")
	}
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	overrideUserConfigDir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendJSONL {
		t.Errorf("backend = %q, expected default %q", cfg.Storage.Backend, BackendJSONL)
	}
	if cfg.Source() != "built-in defaults" {
		t.Errorf("Source() = %q, expected defaults marker", cfg.Source())
	}
}

func TestLoad_ExplicitPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "my-config.json")
	content := `{"owner":"Jo","storage":{"backend":"sqlite","path":"/tmp/ts.db"},"export":{"format":"csv"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Owner != "Jo" {
		t.Errorf("owner = %q, expected %q", cfg.Owner, "Jo")
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, expected %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("format = %q, expected %q", cfg.Export.Format, "csv")
	}
	if cfg.Source() != path {
		t.Errorf("Source() = %q, expected %q", cfg.Source(), path)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "nope.json"))

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing explicit config, got nil")
	}
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	overrideUserConfigDir(t, t.TempDir())

	content := `{"owner":"Sam"}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Owner != "Sam" {
		t.Errorf("owner = %q, expected %q", cfg.Owner, "Sam")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Storage.Backend != BackendJSONL {
		t.Errorf("backend = %q, expected default %q", cfg.Storage.Backend, BackendJSONL)
	}
	if cfg.Export.Format != "table" {
		t.Errorf("format = %q, expected default %q", cfg.Export.Format, "table")
	}
}

func TestLoad_UserConfigDirFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	configRoot := t.TempDir()
	overrideUserConfigDir(t, configRoot)
	appDir := filepath.Join(configRoot, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("failed to create app dir: %v", err)
	}
	content := `{"export":{"format":"yaml","directory":"/tmp/exports"}}`
	if err := os.WriteFile(filepath.Join(appDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Export.Format != "yaml" {
		t.Errorf("format = %q, expected %q", cfg.Export.Format, "yaml")
	}
	if cfg.Export.Directory != "/tmp/exports" {
		t.Errorf("directory = %q, expected %q", cfg.Export.Directory, "/tmp/exports")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(EnvConfig, path)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for malformed config, got nil")
	}
	if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("error = %v, expected parse failure mention", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	overrideUserConfigDir(t, t.TempDir())

	t.Setenv(EnvStorageBackend, BackendSQLite)
	t.Setenv(EnvStoragePath, "/tmp/override.db")
	t.Setenv(EnvExportFormat, "json")
	t.Setenv(EnvOwner, "Alex")
	t.Setenv(EnvTheme, "nord")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, expected env override %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Storage.Path != "/tmp/override.db" {
		t.Errorf("path = %q, expected env override", cfg.Storage.Path)
	}
	if cfg.Export.Format != "json" {
		t.Errorf("format = %q, expected env override %q", cfg.Export.Format, "json")
	}
	if cfg.Owner != "Alex" {
		t.Errorf("owner = %q, expected env override %q", cfg.Owner, "Alex")
	}
	if cfg.Theme != "nord" {
		t.Errorf("theme = %q, expected env override %q", cfg.Theme, "nord")
	}
}

func TestStoragePath_Explicit(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "nested", "records.jsonl")

	path, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath() returned unexpected error: %v", err)
	}
	if path != cfg.Storage.Path {
		t.Errorf("StoragePath() = %q, expected %q", path, cfg.Storage.Path)
	}
	// Parent directory is created on demand.
	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Errorf("expected parent directory to exist: %v", err)
	}
}

func TestStoragePath_DefaultPerBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		expected string
	}{
		{"jsonl backend", BackendJSONL, "records.jsonl"},
		{"sqlite backend", BackendSQLite, "records.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			overrideUserConfigDir(t, root)

			cfg := DefaultConfig()
			cfg.Storage.Backend = tt.backend

			path, err := cfg.StoragePath()
			if err != nil {
				t.Fatalf("StoragePath() returned unexpected error: %v", err)
			}
			expected := filepath.Join(root, AppName, tt.expected)
			if path != expected {
				t.Errorf("StoragePath() = %q, expected %q", path, expected)
			}
		})
	}
}

func TestInit(t *testing.T) {
	root := t.TempDir()
	overrideUserConfigDir(t, root)

	path, err := Init()
	if err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	expected := filepath.Join(root, AppName, ConfigFile)
	if path != expected {
		t.Errorf("Init() = %q, expected %q", path, expected)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.Contains(string(data), `"backend": "jsonl"`) {
		t.Errorf("written config missing default backend: %s", data)
	}

	// A second Init must refuse to overwrite.
	if _, err := Init(); err == nil {
		t.Fatal("Init() expected error for existing config, got nil")
	}
}
