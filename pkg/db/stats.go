package db

import (
	"database/sql"
	"fmt"

	"github.com/teabank/teabank/pkg/ledger"
)

// Stats represents ledger-wide statistics.
type Stats struct {
	TotalAccounts       int
	TotalTransactions   int
	PendingTransactions int
	TotalSettled        int64
	TotalPending        int64
	LastTransaction     sql.NullString
}

// GetStats retrieves ledger statistics.
func GetStats(q Queryer) (*Stats, error) {
	var stats Stats

	err := q.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&stats.TotalAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get account count: %w", err)
	}

	err = q.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&stats.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction count: %w", err)
	}

	err = q.QueryRow(`SELECT COUNT(*) FROM transactions WHERE status = ?`,
		string(ledger.StatusPending)).Scan(&stats.PendingTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending count: %w", err)
	}

	err = q.QueryRow(`SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(pending), 0) FROM accounts`).
		Scan(&stats.TotalSettled, &stats.TotalPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance totals: %w", err)
	}

	err = q.QueryRow(`SELECT MAX(time) FROM transactions`).Scan(&stats.LastTransaction)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last transaction time: %w", err)
	}

	return &stats, nil
}
