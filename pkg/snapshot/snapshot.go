// Package snapshot provides read-only full-table views of the ledger
// for the external spreadsheet mirror, plus database file backups.
package snapshot

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/teabank/teabank/pkg/db"
	"github.com/teabank/teabank/pkg/ledger"
)

// TransactionRow is a transaction joined with the sender and receiver
// display names, the shape the mirror pushes to the spreadsheet.
type TransactionRow struct {
	ledger.Transaction
	SenderName   string
	ReceiverName string
}

// Snapshot is one consistent view of both ledger tables.
type Snapshot struct {
	TakenAt      time.Time
	Accounts     []ledger.Account
	Transactions []TransactionRow
}

// Read takes a full-table snapshot inside a single storage transaction
// so the mirror sees accounts and the log at the same point in time.
func Read(conn *db.Connection) (*Snapshot, error) {
	snap := &Snapshot{TakenAt: time.Now()}

	err := conn.Transaction(func(tx *sql.Tx) error {
		accounts, err := readAccounts(tx)
		if err != nil {
			return err
		}
		snap.Accounts = accounts

		transactions, err := readTransactions(tx)
		if err != nil {
			return err
		}
		snap.Transactions = transactions

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func readAccounts(q db.Queryer) ([]ledger.Account, error) {
	rows, err := q.Query(`
		SELECT id, account_no, name, amount, pending, share
		FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.ID, &a.AccountNo, &a.Name, &a.Amount, &a.Pending, &a.Share); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func readTransactions(q db.Queryer) ([]TransactionRow, error) {
	rows, err := q.Query(`
		SELECT t.id, t.type, t.time, t.sender_account, t.receiver_account,
		       t.status, t.amount, t.operator, t.memo,
		       COALESCE(s.name, ''), COALESCE(r.name, '')
		FROM transactions t
		LEFT JOIN accounts s ON s.account_no = t.sender_account
		LEFT JOIN accounts r ON r.account_no = t.receiver_account
		ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	defer rows.Close()

	var transactions []TransactionRow
	for rows.Next() {
		var row TransactionRow
		var ty, status string
		var operator sql.NullString

		if err := rows.Scan(
			&row.ID,
			&ty,
			&row.Time,
			&row.SenderAccount,
			&row.ReceiverAccount,
			&status,
			&row.Amount,
			&operator,
			&row.Memo,
			&row.SenderName,
			&row.ReceiverName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		row.Type = ledger.TransactionType(ty)
		row.Status = ledger.TransactionStatus(status)
		if operator.Valid {
			row.Operator = operator.String
		}
		transactions = append(transactions, row)
	}

	return transactions, rows.Err()
}

// WriteCSV writes accounts.csv and transactions.csv under dir, the
// hand-off format consumed by the spreadsheet mirror.
func WriteCSV(snap *Snapshot, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := writeAccountsCSV(snap, filepath.Join(dir, "accounts.csv")); err != nil {
		return err
	}
	return writeTransactionsCSV(snap, filepath.Join(dir, "transactions.csv"))
}

func writeAccountsCSV(snap *Snapshot, path string) error {
	records := [][]string{
		{"id", "account_no", "name", "amount", "pending", "share"},
	}
	for _, a := range snap.Accounts {
		records = append(records, []string{
			strconv.FormatInt(a.ID, 10),
			a.AccountNo,
			a.Name,
			strconv.FormatInt(a.Amount, 10),
			strconv.FormatInt(a.Pending, 10),
			strconv.FormatInt(a.Share, 10),
		})
	}
	return writeCSVFile(path, records)
}

func writeTransactionsCSV(snap *Snapshot, path string) error {
	records := [][]string{
		{"id", "type", "time", "sender_account", "sender_name",
			"receiver_account", "receiver_name", "status", "amount", "operator", "memo"},
	}
	for _, t := range snap.Transactions {
		records = append(records, []string{
			strconv.FormatInt(t.ID, 10),
			string(t.Type),
			t.Time.Format(time.RFC3339),
			t.SenderAccount,
			t.SenderName,
			t.ReceiverAccount,
			t.ReceiverName,
			string(t.Status),
			strconv.FormatInt(t.Amount, 10),
			t.Operator,
			t.Memo,
		})
	}
	return writeCSVFile(path, records)
}

func writeCSVFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
