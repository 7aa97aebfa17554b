package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"timesheet/internal/record"
)

// FileStore persists records as JSON Lines: one record per line, sorted by
// date, ISO-8601 date key. Every mutation rewrites the whole file through a
// temp file followed by an atomic rename, so a crash mid-write never
// truncates the store.
type FileStore struct {
	path        string
	keepBackups bool
}

// NewFileStore returns a store backed by the JSONL file at path. The file
// is created lazily on the first mutation. With keepBackups set, a rotated
// backup copy is taken before each rewrite.
func NewFileStore(path string, keepBackups bool) *FileStore {
	return &FileStore{path: path, keepBackups: keepBackups}
}

// load reads the whole store. A missing file is an empty store. A line
// that does not parse fails the load; every mutation rewrites the file,
// so an unparseable line must never survive into a save.
func (s *FileStore) load() ([]record.Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []record.Record{}, nil
		}
		return nil, fmt.Errorf("opening store %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	var records []record.Record
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec record.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parsing store %s line %d: %w", s.path, lineNumber, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading store %s: %w", s.path, err)
	}

	return records, nil
}

// save writes the full record set back to disk, sorted by date. Writes go
// to a temp file in the same directory and land via os.Rename.
func (s *FileStore) save(records []record.Record) error {
	sortByDate(records)

	if s.keepBackups {
		if err := CreateBackup(s.path); err != nil {
			return fmt.Errorf("creating backup: %w", err)
		}
	}

	tmpFile := s.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temp store: %w", err)
	}

	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return fmt.Errorf("encoding record for %s: %w", rec.Date, err)
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return fmt.Errorf("writing temp store: %w", err)
		}
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("closing temp store: %w", err)
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		return fmt.Errorf("replacing store %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Add(rec record.Record) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(records, rec.Date) >= 0 {
		return fmt.Errorf("%w for %s", ErrDuplicateRecord, rec.Date)
	}
	return s.save(append(records, rec))
}

func (s *FileStore) Update(date record.Date, rec record.Record) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(records, date)
	if i < 0 {
		return fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	rec.Date = date
	records[i] = rec
	return s.save(records)
}

func (s *FileStore) Delete(date record.Date) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(records, date)
	if i < 0 {
		return fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	return s.save(append(records[:i], records[i+1:]...))
}

func (s *FileStore) Get(date record.Date) (record.Record, error) {
	records, err := s.load()
	if err != nil {
		return record.Record{}, err
	}
	i := indexOf(records, date)
	if i < 0 {
		return record.Record{}, fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	return records[i], nil
}

func (s *FileStore) Month(year int, month time.Month) ([]record.Record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	selected := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if rec.Date.In(year, month) {
			selected = append(selected, rec)
		}
	}
	// The file is kept sorted, but a hand-edited store may not be.
	sortByDate(selected)
	return selected, nil
}

func (s *FileStore) All() ([]record.Record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	sortByDate(records)
	return records, nil
}

func (s *FileStore) Close() error { return nil }

// indexOf returns the position of the record keyed by date, or -1.
func indexOf(records []record.Record, date record.Date) int {
	for i, rec := range records {
		if rec.Date.Equal(date.Time) {
			return i
		}
	}
	return -1
}

func sortByDate(records []record.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date.Time)
	})
}
