package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"timesheet/internal/record"
	"timesheet/internal/timeutil"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	date        TEXT PRIMARY KEY,
	work_start  TEXT NOT NULL,
	work_end    TEXT NOT NULL,
	break_start TEXT NOT NULL,
	break_end   TEXT NOT NULL,
	comment     TEXT NOT NULL DEFAULT '',
	special     INTEGER NOT NULL DEFAULT 0
);`

const (
	recordColumns = `date, work_start, work_end, break_start, break_end, comment, special`

	queryExists = `SELECT 1 FROM records WHERE date = ?`
	queryByDate = `SELECT ` + recordColumns + ` FROM records WHERE date = ?`
	queryMonth  = `SELECT ` + recordColumns + ` FROM records WHERE date >= ? AND date <= ? ORDER BY date`
	queryAll    = `SELECT ` + recordColumns + ` FROM records ORDER BY date`
	queryInsert = `INSERT INTO records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	queryUpdate = `UPDATE records SET work_start = ?, work_end = ?, break_start = ?, break_end = ?, comment = ?, special = ? WHERE date = ?`
	queryDelete = `DELETE FROM records WHERE date = ?`
)

// SQLiteStore persists records in a single-table SQLite database. The
// ISO-8601 date column is the primary key, so date order and string order
// agree and month queries are plain range scans.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path, creating the file and the schema
// as needed. Uses the pure-Go driver, no cgo involved.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to sqlite store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Add(rec record.Record) error {
	exists, err := s.exists(rec.Date)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w for %s", ErrDuplicateRecord, rec.Date)
	}

	_, err = s.db.Exec(queryInsert,
		rec.Date.Key(),
		rec.Work.Start.String(), rec.Work.End.String(),
		rec.Break.Start.String(), rec.Break.End.String(),
		rec.Comment, rec.Special)
	if err != nil {
		return fmt.Errorf("inserting record for %s: %w", rec.Date, err)
	}
	return nil
}

func (s *SQLiteStore) Update(date record.Date, rec record.Record) error {
	res, err := s.db.Exec(queryUpdate,
		rec.Work.Start.String(), rec.Work.End.String(),
		rec.Break.Start.String(), rec.Break.End.String(),
		rec.Comment, rec.Special,
		date.Key())
	if err != nil {
		return fmt.Errorf("updating record for %s: %w", date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record for %s: %w", date, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	return nil
}

func (s *SQLiteStore) Delete(date record.Date) error {
	res, err := s.db.Exec(queryDelete, date.Key())
	if err != nil {
		return fmt.Errorf("deleting record for %s: %w", date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record for %s: %w", date, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	return nil
}

func (s *SQLiteStore) Get(date record.Date) (record.Record, error) {
	rec, err := scanRecord(s.db.QueryRow(queryByDate, date.Key()).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, fmt.Errorf("%w for %s", ErrRecordNotFound, date)
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("querying record for %s: %w", date, err)
	}
	return rec, nil
}

func (s *SQLiteStore) Month(year int, month time.Month) ([]record.Record, error) {
	first := record.NewDate(year, month, 1).Key()
	last := record.DateOf(timeutil.MonthEnd(year, month)).Key()
	return s.query(queryMonth, first, last)
}

func (s *SQLiteStore) All() ([]record.Record, error) {
	return s.query(queryAll)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) exists(date record.Date) (bool, error) {
	var one int
	err := s.db.QueryRow(queryExists, date.Key()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking record for %s: %w", date, err)
	}
	return true, nil
}

func (s *SQLiteStore) query(q string, args ...any) ([]record.Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// scanRecord decodes one row through the given Scan func, shared between
// QueryRow and Rows iteration.
func scanRecord(scan func(...any) error) (record.Record, error) {
	var dateKey, workStart, workEnd, breakStart, breakEnd, comment string
	var special bool
	if err := scan(&dateKey, &workStart, &workEnd, &breakStart, &breakEnd, &comment, &special); err != nil {
		return record.Record{}, err
	}

	date, err := record.ParseKey(dateKey)
	if err != nil {
		return record.Record{}, err
	}
	work, err := scanInterval(workStart, workEnd)
	if err != nil {
		return record.Record{}, err
	}
	brk, err := scanInterval(breakStart, breakEnd)
	if err != nil {
		return record.Record{}, err
	}

	return record.Record{
		Date:    date,
		Work:    work,
		Break:   brk,
		Comment: comment,
		Special: special,
	}, nil
}

func scanInterval(start, end string) (record.Interval, error) {
	from, err := record.ParseClock(start)
	if err != nil {
		return record.Interval{}, err
	}
	to, err := record.ParseClock(end)
	if err != nil {
		return record.Interval{}, err
	}
	return record.Interval{Start: from, End: to}, nil
}
