package ledger

import "time"

// TransactionType classifies a ledger operation.
type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeTransfer TransactionType = "transfer"
	TypeRequest  TransactionType = "request"
	TypeDonate   TransactionType = "donate"
)

// TransactionStatus is the audit state of a transaction.
// Valid transitions are pending -> done and pending -> denied only.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusDone    TransactionStatus = "done"
	StatusDenied  TransactionStatus = "denied"
)

// Transaction represents one entry in the append-only transaction log.
//
// SenderAccount and ReceiverAccount are equal for every type except
// transfer. Operator is empty while the transaction is pending and is
// set exactly once, at the pending -> done/denied transition.
type Transaction struct {
	ID              int64
	Type            TransactionType
	Time            time.Time
	SenderAccount   string
	ReceiverAccount string
	Status          TransactionStatus
	Amount          int64
	Operator        string
	Memo            string
}

// NewPending builds an unsaved pending transaction with the current
// timestamp. The ID is assigned by the store on creation.
func NewPending(ty TransactionType, sender, receiver string, amount int64, memo string) Transaction {
	return Transaction{
		Type:            ty,
		Time:            time.Now(),
		SenderAccount:   sender,
		ReceiverAccount: receiver,
		Status:          StatusPending,
		Amount:          amount,
		Memo:            memo,
	}
}

// NewDone builds an unsaved already-settled transaction. Transfers are
// created in this state because they are not audited.
func NewDone(ty TransactionType, sender, receiver string, amount int64, memo string) Transaction {
	txn := NewPending(ty, sender, receiver, amount, memo)
	txn.Status = StatusDone
	return txn
}
