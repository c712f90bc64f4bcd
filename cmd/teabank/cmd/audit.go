package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	auditOperator string
	auditLimit    int
)

// auditCmd groups the audit subcommands.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Review pending transactions",
	Long: `List, approve, or deny transactions awaiting audit.

Approving a deposit or request settles the claimed funds into the
account balance; approving a withdrawal or donation settles the
reservation. Denying reverses only the pending delta.

Example:
  teabank audit list
  teabank audit approve 42 --operator admin
  teabank audit deny 42 --operator admin`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending transactions",
	Run:   runAuditList,
}

var auditApproveCmd = &cobra.Command{
	Use:   "approve <transaction-id>",
	Short: "Approve a pending transaction",
	Args:  cobra.ExactArgs(1),
	Run:   runAuditApprove,
}

var auditDenyCmd = &cobra.Command{
	Use:   "deny <transaction-id>",
	Short: "Deny a pending transaction",
	Args:  cobra.ExactArgs(1),
	Run:   runAuditDeny,
}

func init() {
	auditCmd.PersistentFlags().StringVar(&auditOperator, "operator", "", "auditor name recorded on the transaction")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 0, "maximum transactions to list (default from rules)")

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditApproveCmd)
	auditCmd.AddCommand(auditDenyCmd)
}

func runAuditList(cmd *cobra.Command, args []string) {
	_, conn, service := openService()
	defer conn.Close()

	limit := auditLimit
	if limit <= 0 {
		limit = service.Rules().AuditLimit
	}

	pending, err := service.GetPendingTransactions(limit)
	exitOnError(err, "failed to list pending transactions")

	if len(pending) == 0 {
		fmt.Println("No pending transactions.")
		return
	}

	fmt.Printf("%-6s %-10s %-20s %-12s %-14s %s\n",
		"ID", "TYPE", "TIME", "ACCOUNT", "AMOUNT", "MEMO")
	for _, txn := range pending {
		fmt.Printf("%-6d %-10s %-20s %-12s %-14d %s\n",
			txn.ID,
			txn.Type,
			txn.Time.Format("2006-01-02 15:04:05"),
			txn.ReceiverAccount,
			txn.Amount,
			txn.Memo,
		)
	}
}

func parseTransactionID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	exitOnError(err, "invalid transaction id")
	return id
}

func requireOperator() {
	if auditOperator == "" {
		exitOnError(fmt.Errorf("--operator is required"), "missing operator")
	}
}

func runAuditApprove(cmd *cobra.Command, args []string) {
	requireOperator()
	id := parseTransactionID(args[0])

	_, conn, service := openService()
	defer conn.Close()

	err := service.ApproveTransaction(id, auditOperator)
	exitOnError(err, "failed to approve transaction")

	slog.Info("Transaction approved", "id", id, "operator", auditOperator)
	fmt.Printf("Transaction %d approved.\n", id)
}

func runAuditDeny(cmd *cobra.Command, args []string) {
	requireOperator()
	id := parseTransactionID(args[0])

	_, conn, service := openService()
	defer conn.Close()

	err := service.DenyTransaction(id, auditOperator)
	exitOnError(err, "failed to deny transaction")

	slog.Info("Transaction denied", "id", id, "operator", auditOperator)
	fmt.Printf("Transaction %d denied.\n", id)
}
