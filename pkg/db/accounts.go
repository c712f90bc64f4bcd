package db

import (
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/teabank/teabank/pkg/ledger"
)

// AccountStore provides account data access operations.
//
// Adjust* methods do not verify the account exists; a missing account
// is a no-op at this layer. The service performs existence checks
// before mutating.
type AccountStore struct {
	q Queryer
}

// NewAccountStore creates an AccountStore over a connection or an open
// storage transaction.
func NewAccountStore(q Queryer) *AccountStore {
	return &AccountStore{q: q}
}

const accountColumns = `id, account_no, name, amount, pending, share`

func scanAccount(row *sql.Row) (*ledger.Account, error) {
	var account ledger.Account
	err := row.Scan(
		&account.ID,
		&account.AccountNo,
		&account.Name,
		&account.Amount,
		&account.Pending,
		&account.Share,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &account, nil
}

// Find retrieves an account by account number.
// Returns (nil, nil) if no account exists.
func (s *AccountStore) Find(accountNo string) (*ledger.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_no = ?`
	return scanAccount(s.q.QueryRow(query, accountNo))
}

// Exists checks if an account exists.
func (s *AccountStore) Exists(accountNo string) (bool, error) {
	var one int
	err := s.q.QueryRow(`SELECT 1 FROM accounts WHERE account_no = ?`, accountNo).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return true, nil
}

// Create inserts a new account and assigns its storage identity.
// Returns ledger.ErrAccountAlreadyExists if the account number is
// already present (enforced by the UNIQUE constraint).
func (s *AccountStore) Create(account *ledger.Account) error {
	query := `
		INSERT INTO accounts (account_no, name, amount, pending, share)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.q.Exec(query,
		account.AccountNo,
		account.Name,
		account.Amount,
		account.Pending,
		account.Share,
	)
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ledger.Errorf(ledger.KindAccountAlreadyExists,
				"account %s already exists", account.AccountNo)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get account id: %w", err)
	}
	account.ID = id

	return nil
}

// AdjustPending adds delta to the pending balance. Delta may be negative.
func (s *AccountStore) AdjustPending(accountNo string, delta int64) error {
	query := `UPDATE accounts SET pending = pending + ? WHERE account_no = ?`
	if _, err := s.q.Exec(query, delta, accountNo); err != nil {
		return fmt.Errorf("failed to adjust pending: %w", err)
	}
	return nil
}

// AdjustAmount adds delta to the settled balance. Delta may be negative.
func (s *AccountStore) AdjustAmount(accountNo string, delta int64) error {
	query := `UPDATE accounts SET amount = amount + ? WHERE account_no = ?`
	if _, err := s.q.Exec(query, delta, accountNo); err != nil {
		return fmt.Errorf("failed to adjust amount: %w", err)
	}
	return nil
}

// AdjustBoth adds the deltas to pending and amount in a single
// statement. Used by audit approval, where pending is reconciled into
// amount simultaneously.
func (s *AccountStore) AdjustBoth(accountNo string, pendingDelta, amountDelta int64) error {
	query := `UPDATE accounts SET pending = pending + ?, amount = amount + ? WHERE account_no = ?`
	if _, err := s.q.Exec(query, pendingDelta, amountDelta, accountNo); err != nil {
		return fmt.Errorf("failed to adjust balances: %w", err)
	}
	return nil
}
