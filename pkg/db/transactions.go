package db

import (
	"database/sql"
	"fmt"

	"github.com/teabank/teabank/pkg/ledger"
)

// TransactionStore provides access to the append-only transaction log.
//
// UpdateStatus writes unconditionally; the service verifies the current
// status is pending before calling it.
type TransactionStore struct {
	q Queryer
}

// NewTransactionStore creates a TransactionStore over a connection or
// an open storage transaction.
func NewTransactionStore(q Queryer) *TransactionStore {
	return &TransactionStore{q: q}
}

const transactionColumns = `id, type, time, sender_account, receiver_account, status, amount, operator, memo`

// Create inserts a new transaction and returns its assigned sequential id.
func (s *TransactionStore) Create(txn ledger.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (type, time, sender_account, receiver_account, status, amount, operator, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var operator sql.NullString
	if txn.Operator != "" {
		operator = sql.NullString{String: txn.Operator, Valid: true}
	}

	result, err := s.q.Exec(query,
		string(txn.Type),
		txn.Time,
		txn.SenderAccount,
		txn.ReceiverAccount,
		string(txn.Status),
		txn.Amount,
		operator,
		txn.Memo,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}

	return id, nil
}

func scanTransaction(scan func(dest ...interface{}) error) (ledger.Transaction, error) {
	var txn ledger.Transaction
	var ty, status string
	var operator sql.NullString

	err := scan(
		&txn.ID,
		&ty,
		&txn.Time,
		&txn.SenderAccount,
		&txn.ReceiverAccount,
		&status,
		&txn.Amount,
		&operator,
		&txn.Memo,
	)
	if err != nil {
		return ledger.Transaction{}, err
	}

	txn.Type = ledger.TransactionType(ty)
	txn.Status = ledger.TransactionStatus(status)
	if operator.Valid {
		txn.Operator = operator.String
	}

	return txn, nil
}

// Find retrieves a transaction by id.
// Returns (nil, nil) if no transaction exists.
func (s *TransactionStore) Find(id int64) (*ledger.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	txn, err := scanTransaction(s.q.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	return &txn, nil
}

func (s *TransactionStore) queryList(query string, args ...interface{}) ([]ledger.Transaction, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []ledger.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// FindPending retrieves pending transactions in insertion order, capped
// at limit. A non-positive limit yields no rows; SQLite would treat a
// negative LIMIT as unlimited.
func (s *TransactionStore) FindPending(limit int) ([]ledger.Transaction, error) {
	if limit < 0 {
		limit = 0
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE status = ? ORDER BY id LIMIT ?`
	return s.queryList(query, string(ledger.StatusPending), limit)
}

// FindByAccount retrieves transactions where the account is sender or
// receiver, excluding denied ones, newest first, capped at limit. A
// non-positive limit yields no rows.
func (s *TransactionStore) FindByAccount(accountNo string, limit int) ([]ledger.Transaction, error) {
	if limit < 0 {
		limit = 0
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE (sender_account = ? OR receiver_account = ?) AND status <> ?
		ORDER BY id DESC LIMIT ?`
	return s.queryList(query, accountNo, accountNo, string(ledger.StatusDenied), limit)
}

// UpdateStatus sets the status and operator of a transaction.
func (s *TransactionStore) UpdateStatus(id int64, status ledger.TransactionStatus, operator string) error {
	query := `UPDATE transactions SET status = ?, operator = ? WHERE id = ?`
	if _, err := s.q.Exec(query, string(status), operator, id); err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return nil
}
