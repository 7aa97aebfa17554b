package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"timesheet/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup-number]",
	Short: "Restore the record store from a backup",
	Long: `Restore the record store from a rotated backup copy.

Without an argument the most recent backup (slot 1) is restored.
Backups are written before each change when storage.keep_backups is
enabled. The pre-restore state is backed up as well, so a restore can
be undone by another restore.

Examples:
  timesheet restore      Restore the most recent backup
  timesheet restore 2    Restore backup slot 2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRestore(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// runRestore lists the available backups and restores the chosen slot.
func runRestore(args []string) {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	path, err := cfg.StoragePath()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to resolve the store location")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	backups := storage.ListBackups(path)
	if len(backups) == 0 {
		fmt.Fprintln(deps.Stderr, "Error: No backups available")
		fmt.Fprintln(deps.Stderr, "Hint: Enable storage.keep_backups to write backups before each change")
		deps.Exit(1)
		return
	}

	fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}

	slot := 1
	if len(args) > 0 {
		slot, err = strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			fmt.Fprintf(deps.Stderr, "Hint: Pick a slot between 1 and %d from the list above\n", storage.MaxBackupCount)
			deps.Exit(1)
			return
		}
	}

	if err := storage.RestoreBackup(path, slot); err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to restore the backup")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Restored the record store from backup %d\n", slot)
}
