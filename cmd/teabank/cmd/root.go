// Package cmd provides CLI commands for the teabank ledger engine.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teabank/teabank/pkg/bank"
	"github.com/teabank/teabank/pkg/config"
	"github.com/teabank/teabank/pkg/db"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "teabank",
	Short: "Administer the teabank community ledger",
	Long: `teabank is an admin CLI for the community bank ledger.

It supports:
- Inspecting ledger statistics
- Listing, approving, and denying pending transactions
- Backing up the database and exporting full-table CSV snapshots

The chat-facing command surface lives in the bot process; this tool
talks to the same database through the ledger service.

Example:
  teabank stats
  teabank audit list
  teabank audit approve 42 --operator admin`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(exportCmd)
}

// openService loads configuration and opens the database connection and
// ledger service shared by all subcommands. Callers must Close the
// returned connection.
func openService() (*config.Config, *db.Connection, *bank.Service) {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(); err != nil {
		exitOnError(err, "invalid configuration")
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	exitOnError(err, "failed to load business rules")

	slog.Debug("Opening database", "path", cfg.DBPath)

	conn, err := db.Open(cfg.DBPath)
	exitOnError(err, "failed to open database")

	return cfg, conn, bank.NewService(conn, rules)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
