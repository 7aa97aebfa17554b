package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files.
	BackupSuffix = ".bak"
	// MaxBackupCount is the number of rotated backups to keep.
	MaxBackupCount = 3
)

// backupPath returns the path of rotation slot n for the given store file,
// e.g. records.jsonl.bak.1. Lower numbers are more recent.
func backupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backups one slot down: .bak.2 becomes
// .bak.3, then .bak.1 becomes .bak.2. The oldest slot is deleted first so
// only MaxBackupCount copies remain. Missing slots are skipped.
func rotateBackups(storagePath string) error {
	oldest := backupPath(storagePath, MaxBackupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(backupPath(storagePath, i), backupPath(storagePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the current store file into the most recent backup
// slot after rotating the older ones. A store file that does not exist yet
// is not an error: there is nothing to back up.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}

	source, err := os.Open(storagePath)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(backupPath(storagePath, 1))
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	if _, err := dest.ReadFrom(source); err != nil {
		return err
	}
	return nil
}

// BackupInfo describes one rotation slot of a store file.
type BackupInfo struct {
	// Number is the rotation slot, 1 is the most recent.
	Number int
	// Path is the full path of the backup file.
	Path string
}

// ListBackups returns the existing backups of a store file, most recent
// first. A store without backups yields an empty slice.
func ListBackups(storagePath string) []BackupInfo {
	var backups []BackupInfo
	for n := 1; n <= MaxBackupCount; n++ {
		path := backupPath(storagePath, n)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, BackupInfo{Number: n, Path: path})
		}
	}
	return backups
}

// RestoreBackup replaces the store file with the contents of rotation
// slot n. The current state is backed up first, so a restore can itself
// be undone. The slot is read before that safety copy rotates the slots.
func RestoreBackup(storagePath string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	data, err := os.ReadFile(backupPath(storagePath, n))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	if err := CreateBackup(storagePath); err != nil {
		return err
	}
	return os.WriteFile(storagePath, data, 0644)
}
