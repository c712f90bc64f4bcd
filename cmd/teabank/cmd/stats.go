package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teabank/teabank/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display ledger statistics",
	Long: `Display statistics about accounts and transactions.

Shows:
- Total number of accounts
- Total and pending transaction counts
- Settled and pending balance totals
- Last transaction timestamp

Example:
  teabank stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	_, conn, _ := openService()
	defer conn.Close()

	stats, err := db.GetStats(conn)
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Accounts:             %d\n", stats.TotalAccounts)
	fmt.Printf("Transactions:         %d\n", stats.TotalTransactions)
	fmt.Printf("Pending transactions: %d\n", stats.PendingTransactions)
	fmt.Printf("Settled total:        %d\n", stats.TotalSettled)
	fmt.Printf("Pending total:        %d\n", stats.TotalPending)

	if stats.LastTransaction.Valid {
		fmt.Printf("Last transaction:     %s\n", stats.LastTransaction.String)
	} else {
		fmt.Printf("Last transaction:     (never)\n")
	}

	fmt.Println()
}
