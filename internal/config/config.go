package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "timesheet"
	// ConfigFile is the fixed name of the JSON configuration file.
	ConfigFile = "config.json"
)

// Storage backend names accepted in storage.backend.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Environment variables recognized at load time. A .env file in the
// working directory is folded into the environment by the CLI before
// Load runs.
const (
	EnvConfig         = "TIMESHEET_CONFIG"
	EnvStorageBackend = "TIMESHEET_STORAGE_BACKEND"
	EnvStoragePath    = "TIMESHEET_STORAGE_PATH"
	EnvExportFormat   = "TIMESHEET_EXPORT_FORMAT"
	EnvExportDir      = "TIMESHEET_EXPORT_DIR"
	EnvOwner          = "TIMESHEET_OWNER"
	EnvTheme          = "TIMESHEET_THEME"
)

// Overridable for tests that redirect or fail path resolution.
var (
	userConfigDir = os.UserConfigDir
	mkdirAll      = os.MkdirAll
)

// Config represents the application configuration.
type Config struct {
	// Owner is the name printed in report headers.
	Owner string `json:"owner"`
	// Theme names the TUI color theme. Empty selects the default;
	// unknown names fall back to it.
	Theme string `json:"theme"`
	// Storage selects and locates the record store.
	Storage StorageConfig `json:"storage"`
	// Export controls the default report format and destination.
	Export ExportConfig `json:"export"`

	// path the configuration was loaded from; empty when running on
	// built-in defaults.
	path string
}

// StorageConfig locates the record store.
type StorageConfig struct {
	// Backend selects the store implementation: "jsonl" or "sqlite".
	// Unknown values are rejected when the store is opened.
	Backend string `json:"backend"`
	// Path of the store file. Empty means the default location under
	// the user config directory.
	Path string `json:"path"`
	// KeepBackups rotates numbered backup copies of the store file
	// before each mutation (jsonl backend only).
	KeepBackups bool `json:"keep_backups"`
}

// ExportConfig controls report rendering.
type ExportConfig struct {
	// Format is the default export format: table, csv, json or yaml.
	// Unknown values are rejected when the renderer is selected.
	Format string `json:"format"`
	// Directory receives export files; empty writes reports to stdout.
	Directory string `json:"directory"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists: the jsonl backend in the user config directory and table output
// to stdout.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendJSONL},
		Export:  ExportConfig{Format: "table"},
	}
}

// Load resolves and reads the configuration. Lookup order: the path named
// by TIMESHEET_CONFIG, then config.json in the working directory, then the
// user config directory. A missing file is not an error, the defaults
// apply. Environment overrides are applied last in every case.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := resolvePath()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.path = path
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// resolvePath returns the config file to read, or "" when none exists.
// A path given via TIMESHEET_CONFIG must exist; the probed locations may
// be absent.
func resolvePath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file %s: %w", p, err)
		}
		return p, nil
	}

	if _, err := os.Stat(ConfigFile); err == nil {
		return ConfigFile, nil
	}

	dir, err := userConfigDir()
	if err != nil {
		// No resolvable user config dir (e.g. HOME unset); run on
		// defaults.
		return "", nil
	}
	p := filepath.Join(dir, AppName, ConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvExportFormat); v != "" {
		cfg.Export.Format = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.Export.Directory = v
	}
	if v := os.Getenv(EnvOwner); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
}

// Source returns the path the configuration was loaded from, or a marker
// when running on built-in defaults.
func (c Config) Source() string {
	if c.path == "" {
		return "built-in defaults"
	}
	return c.path
}

// StoragePath returns the record store location, creating its parent
// directory. An explicit storage.path wins; otherwise the store lives in
// the user config directory, named per backend.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		if dir := filepath.Dir(c.Storage.Path); dir != "." {
			if err := mkdirAll(dir, 0755); err != nil {
				return "", fmt.Errorf("creating storage directory: %w", err)
			}
		}
		return c.Storage.Path, nil
	}

	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	appDir := filepath.Join(dir, AppName)
	if err := mkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	name := "records.jsonl"
	if c.Storage.Backend == BackendSQLite {
		name = "records.db"
	}
	return filepath.Join(appDir, name), nil
}

// Init writes a default config.json under the user config directory and
// returns its path. Refuses to overwrite an existing file.
func Init() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	appDir := filepath.Join(dir, AppName)
	if err := mkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(appDir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
