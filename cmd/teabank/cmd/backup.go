package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teabank/teabank/pkg/snapshot"
)

var exportDir string

// backupCmd represents the backup command.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the database file to the backup directory",
	Long: `Copy the SQLite database file to the backup directory with a
date suffix, e.g. teabank_01_31_2026.db.

Example:
  teabank backup`,
	Run: runBackup,
}

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export full-table CSV snapshots",
	Long: `Take a consistent snapshot of the accounts and transactions
tables and write accounts.csv and transactions.csv, the hand-off
format for the spreadsheet mirror.

Example:
  teabank export --dir ./export`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "./export", "destination directory for CSV files")
}

func runBackup(cmd *cobra.Command, args []string) {
	cfg, conn, _ := openService()
	conn.Close()

	destPath, err := snapshot.Backup(cfg.DBPath, cfg.BackupDir)
	exitOnError(err, "failed to back up database")

	slog.Info("Database backed up", "path", destPath)
	fmt.Printf("Backup written to %s\n", destPath)
}

func runExport(cmd *cobra.Command, args []string) {
	_, conn, _ := openService()
	defer conn.Close()

	snap, err := snapshot.Read(conn)
	exitOnError(err, "failed to read snapshot")

	err = snapshot.WriteCSV(snap, exportDir)
	exitOnError(err, "failed to write CSV export")

	slog.Info("Snapshot exported",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"dir", exportDir)
	fmt.Printf("Exported %d accounts and %d transactions to %s\n",
		len(snap.Accounts), len(snap.Transactions), exportDir)
}
