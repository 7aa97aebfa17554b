package storage

import (
	"errors"
	"fmt"
	"time"

	"timesheet/internal/config"
	"timesheet/internal/record"
)

var (
	// ErrDuplicateRecord reports an Add for a date that already holds a
	// record.
	ErrDuplicateRecord = errors.New("record already exists")
	// ErrRecordNotFound reports an Update, Delete or Get for a date
	// without one.
	ErrRecordNotFound = errors.New("record not found")
)

// Store owns the date-keyed record collection: at most one record per
// calendar date. Query results come back ordered by date ascending.
// Failed mutations leave the store unchanged.
type Store interface {
	// Add inserts a new record. Fails with ErrDuplicateRecord when the
	// date is already taken. No implicit overwrite.
	Add(rec record.Record) error
	// Update replaces all fields of the record stored for date. The
	// date itself is the key and cannot change. Fails with
	// ErrRecordNotFound when absent.
	Update(date record.Date, rec record.Record) error
	// Delete removes the record for date. Fails with ErrRecordNotFound
	// when absent.
	Delete(date record.Date) error
	// Get returns the record for the exact date.
	Get(date record.Date) (record.Record, error)
	// Month returns the records whose date falls within the month,
	// ascending.
	Month(year int, month time.Month) ([]record.Record, error)
	// All returns every record, ascending.
	All() ([]record.Record, error)

	Close() error
}

// Open selects the backend named by the configuration and opens the store
// at its resolved path.
func Open(cfg config.Config) (Store, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case config.BackendJSONL, "":
		return NewFileStore(path, cfg.Storage.KeepBackups), nil
	case config.BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %q or %q)",
			cfg.Storage.Backend, config.BackendJSONL, config.BackendSQLite)
	}
}
