// Package bank implements the ledger service: the banking operations
// and the business invariants around pending and settled balances.
package bank

import (
	"database/sql"

	"github.com/teabank/teabank/pkg/config"
	"github.com/teabank/teabank/pkg/db"
	"github.com/teabank/teabank/pkg/ledger"
)

// Service orchestrates the account and transaction stores.
//
// Deposit, withdraw, request, and donate create pending transactions
// that a human auditor later approves or denies; only transfer settles
// immediately. Every multi-statement operation runs inside a single
// storage transaction so balances and the log move together.
//
// The service assumes serialized access: one operation runs to
// completion before the next is accepted. It is not safe for
// concurrent multi-process writers.
type Service struct {
	conn  *db.Connection
	rules config.Rules
}

// NewService creates a ledger service over an open database connection.
func NewService(conn *db.Connection, rules config.Rules) *Service {
	return &Service{conn: conn, rules: rules}
}

// Rules returns the business limits the service enforces.
func (s *Service) Rules() config.Rules {
	return s.rules
}

// Register creates a new account for the given user with zero balances.
// Returns ledger.ErrAccountAlreadyExists if the derived account number
// is taken.
func (s *Service) Register(userID, name string) (*ledger.Account, error) {
	accountNo := ledger.AccountNo(userID)

	account := &ledger.Account{
		AccountNo: accountNo,
		Name:      name,
	}
	if err := db.NewAccountStore(s.conn).Create(account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetBalance returns the settled and pending balances for an account.
func (s *Service) GetBalance(userID string) (amount, pending int64, err error) {
	accountNo := ledger.AccountNo(userID)

	account, err := db.NewAccountStore(s.conn).Find(accountNo)
	if err != nil {
		return 0, 0, err
	}
	if account == nil {
		return 0, 0, ledger.Errorf(ledger.KindAccountNotFound, "account %s not found", accountNo)
	}

	return account.Amount, account.Pending, nil
}

// Deposit creates a pending deposit. The pending balance is increased
// immediately; the settled balance moves only on audit approval.
func (s *Service) Deposit(userID string, amount int64, memo string) (*ledger.Transaction, error) {
	return s.createClaim(ledger.TypeDeposit, userID, amount, s.rules.MaxDeposit, memo)
}

// Request creates a pending request. Structurally a deposit with a
// lower ceiling.
func (s *Service) Request(userID string, amount int64, memo string) (*ledger.Transaction, error) {
	return s.createClaim(ledger.TypeRequest, userID, amount, s.rules.MaxRequest, memo)
}

// Withdraw creates a pending withdrawal. The pending balance is
// decreased immediately to reserve the funds; the settled balance moves
// only on audit approval.
func (s *Service) Withdraw(userID string, amount int64, memo string) (*ledger.Transaction, error) {
	return s.createReservation(ledger.TypeWithdraw, userID, amount, s.rules.MaxWithdraw, memo)
}

// Donate creates a pending donation. Structurally a withdrawal.
func (s *Service) Donate(userID string, amount int64, memo string) (*ledger.Transaction, error) {
	return s.createReservation(ledger.TypeDonate, userID, amount, s.rules.MaxDonate, memo)
}

// createClaim implements deposit/request: funds claimed but not yet
// verified, tracked in pending until audited.
func (s *Service) createClaim(ty ledger.TransactionType, userID string, amount, maxAmount int64, memo string) (*ledger.Transaction, error) {
	accountNo := ledger.AccountNo(userID)

	var created *ledger.Transaction
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		accounts := db.NewAccountStore(tx)
		txns := db.NewTransactionStore(tx)

		account, err := accounts.Find(accountNo)
		if err != nil {
			return err
		}
		if account == nil {
			return ledger.Errorf(ledger.KindAccountNotFound, "account %s not found", accountNo)
		}

		if err := s.checkAmount(amount, maxAmount); err != nil {
			return err
		}

		id, err := txns.Create(ledger.NewPending(ty, accountNo, accountNo, amount, memo))
		if err != nil {
			return err
		}

		if err := accounts.AdjustPending(accountNo, amount); err != nil {
			return err
		}

		created, err = txns.Find(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// createReservation implements withdraw/donate: funds reserved out of
// the settled balance, tracked as negative pending until audited.
func (s *Service) createReservation(ty ledger.TransactionType, userID string, amount, maxAmount int64, memo string) (*ledger.Transaction, error) {
	accountNo := ledger.AccountNo(userID)

	var created *ledger.Transaction
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		accounts := db.NewAccountStore(tx)
		txns := db.NewTransactionStore(tx)

		account, err := accounts.Find(accountNo)
		if err != nil {
			return err
		}
		if account == nil {
			return ledger.Errorf(ledger.KindAccountNotFound, "account %s not found", accountNo)
		}

		if err := s.checkAmount(amount, maxAmount); err != nil {
			return err
		}

		// Pending is negative after earlier withdrawals, so subtracting
		// it counts already-reserved funds against the settled balance.
		available := account.Amount - account.Pending
		if amount > available {
			return ledger.Errorf(ledger.KindInsufficientBalance,
				"insufficient balance: %d available, %d requested", available, amount)
		}

		id, err := txns.Create(ledger.NewPending(ty, accountNo, accountNo, amount, memo))
		if err != nil {
			return err
		}

		if err := accounts.AdjustPending(accountNo, -amount); err != nil {
			return err
		}

		created, err = txns.Find(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Transfer moves funds between two accounts immediately, with no audit
// step. The receiver account is auto-registered if it does not exist,
// using the raw user id as its display name.
//
// The sufficiency check deliberately uses the settled balance only,
// unlike withdraw which also counts pending reservations.
func (s *Service) Transfer(fromUser, toUser string, amount int64, memo string) (*ledger.Transaction, error) {
	senderNo := ledger.AccountNo(fromUser)
	receiverNo := ledger.AccountNo(toUser)

	var created *ledger.Transaction
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		accounts := db.NewAccountStore(tx)
		txns := db.NewTransactionStore(tx)

		sender, err := accounts.Find(senderNo)
		if err != nil {
			return err
		}
		if sender == nil {
			return ledger.Errorf(ledger.KindAccountNotFound, "account %s not found", senderNo)
		}

		if err := ensureAccountExists(accounts, receiverNo, toUser); err != nil {
			return err
		}

		// Checked after resolution: two distinct user ids can alias to
		// the same account number.
		if senderNo == receiverNo {
			return ledger.Errorf(ledger.KindInvalidTransfer,
				"cannot transfer to your own account %s", senderNo)
		}

		if err := s.checkAmount(amount, s.rules.MaxTransfer); err != nil {
			return err
		}

		if amount > sender.Amount {
			return ledger.Errorf(ledger.KindInsufficientBalance,
				"insufficient balance: %d available, %d requested", sender.Amount, amount)
		}
		if sender.Amount-amount < s.rules.MinBalance {
			return ledger.Errorf(ledger.KindInsufficientBalance,
				"transfer would push balance below the minimum of %d", s.rules.MinBalance)
		}

		if err := accounts.AdjustAmount(senderNo, -amount); err != nil {
			return err
		}
		if err := accounts.AdjustAmount(receiverNo, amount); err != nil {
			return err
		}

		id, err := txns.Create(ledger.NewDone(ledger.TypeTransfer, senderNo, receiverNo, amount, memo))
		if err != nil {
			return err
		}

		created, err = txns.Find(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ensureAccountExists creates a zero-balance account for accountNo if
// none exists. Used by Transfer so sending to an unregistered member
// succeeds.
func ensureAccountExists(accounts *db.AccountStore, accountNo, name string) error {
	exists, err := accounts.Exists(accountNo)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return accounts.Create(&ledger.Account{
		AccountNo: accountNo,
		Name:      name,
	})
}

// ApproveTransaction settles a pending transaction: the pending delta
// applied at creation is reconciled into the settled balance, and the
// transaction is marked done with the approving operator recorded.
func (s *Service) ApproveTransaction(id int64, operator string) error {
	return s.conn.Transaction(func(tx *sql.Tx) error {
		accounts := db.NewAccountStore(tx)
		txns := db.NewTransactionStore(tx)

		txn, err := s.findPendingTransaction(txns, id)
		if err != nil {
			return err
		}

		amount := txn.Amount
		switch txn.Type {
		case ledger.TypeDeposit, ledger.TypeRequest:
			// Settle the claim: pending -= amount, amount += amount.
			if err := accounts.AdjustBoth(txn.ReceiverAccount, -amount, amount); err != nil {
				return err
			}
		case ledger.TypeWithdraw, ledger.TypeDonate:
			// Settle the reservation: pending += amount, amount -= amount.
			if err := accounts.AdjustBoth(txn.ReceiverAccount, amount, -amount); err != nil {
				return err
			}
		default:
			// Transfers are created already-done and never reach audit.
			// For any other two-account type, mirror the adjustment.
			if txn.SenderAccount != txn.ReceiverAccount {
				if err := accounts.AdjustBoth(txn.SenderAccount, amount, -amount); err != nil {
					return err
				}
				if err := accounts.AdjustBoth(txn.ReceiverAccount, -amount, amount); err != nil {
					return err
				}
			}
		}

		return txns.UpdateStatus(id, ledger.StatusDone, operator)
	})
}

// DenyTransaction rejects a pending transaction: only the pending delta
// applied at creation is reversed; the settled balance was never
// touched and stays untouched.
func (s *Service) DenyTransaction(id int64, operator string) error {
	return s.conn.Transaction(func(tx *sql.Tx) error {
		accounts := db.NewAccountStore(tx)
		txns := db.NewTransactionStore(tx)

		txn, err := s.findPendingTransaction(txns, id)
		if err != nil {
			return err
		}

		switch txn.Type {
		case ledger.TypeDeposit, ledger.TypeRequest:
			if err := accounts.AdjustPending(txn.ReceiverAccount, -txn.Amount); err != nil {
				return err
			}
		case ledger.TypeWithdraw, ledger.TypeDonate:
			if err := accounts.AdjustPending(txn.ReceiverAccount, txn.Amount); err != nil {
				return err
			}
		}

		return txns.UpdateStatus(id, ledger.StatusDenied, operator)
	})
}

// findPendingTransaction fetches a transaction and verifies it is still
// awaiting audit.
func (s *Service) findPendingTransaction(txns *db.TransactionStore, id int64) (*ledger.Transaction, error) {
	txn, err := txns.Find(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ledger.Errorf(ledger.KindTransactionNotFound, "transaction %d not found", id)
	}
	if txn.Status != ledger.StatusPending {
		return nil, ledger.Errorf(ledger.KindInvalidTransactionStatus,
			"transaction %d is not pending (status: %s)", id, txn.Status)
	}
	return txn, nil
}

// PullTransactions returns the account's transaction history, newest
// first, excluding denied transactions.
func (s *Service) PullTransactions(userID string, n int) ([]ledger.Transaction, error) {
	accountNo := ledger.AccountNo(userID)
	return db.NewTransactionStore(s.conn).FindByAccount(accountNo, n)
}

// GetPendingTransactions returns transactions awaiting audit in
// insertion order, capped at limit.
func (s *Service) GetPendingTransactions(limit int) ([]ledger.Transaction, error) {
	return db.NewTransactionStore(s.conn).FindPending(limit)
}

// checkAmount validates an operation amount against the configured
// floor and the per-operation ceiling.
func (s *Service) checkAmount(amount, maxAmount int64) error {
	if amount < s.rules.MinAmount {
		return ledger.Errorf(ledger.KindInvalidAmount,
			"amount must be at least %d, got %d", s.rules.MinAmount, amount)
	}
	if amount > maxAmount {
		return ledger.Errorf(ledger.KindInvalidAmount,
			"amount %d exceeds the maximum of %d", amount, maxAmount)
	}
	return nil
}
