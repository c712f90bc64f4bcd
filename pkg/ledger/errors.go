package ledger

import "fmt"

// Kind identifies one of the closed set of ledger error conditions.
type Kind string

const (
	KindAccountNotFound          Kind = "account_not_found"
	KindAccountAlreadyExists     Kind = "account_already_exists"
	KindInvalidAmount            Kind = "invalid_amount"
	KindInsufficientBalance      Kind = "insufficient_balance"
	KindInvalidTransfer          Kind = "invalid_transfer"
	KindTransactionNotFound      Kind = "transaction_not_found"
	KindInvalidTransactionStatus Kind = "invalid_transaction_status"
	KindUnauthorized             Kind = "unauthorized"
)

// Error is a ledger business-rule failure. Every failure surfaced by
// the service carries one of the Kind constants above, so callers can
// match broadly on *Error or narrowly on a sentinel via errors.Is.
// Messages are meant to be shown to the end user verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same Kind, so
// errors.Is(err, ErrAccountNotFound) works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is matching. Errors returned by operations are
// built with Errorf and carry user-facing messages; the sentinels only
// carry the kind.
var (
	ErrAccountNotFound          = &Error{Kind: KindAccountNotFound, Message: "account not found"}
	ErrAccountAlreadyExists     = &Error{Kind: KindAccountAlreadyExists, Message: "account already exists"}
	ErrInvalidAmount            = &Error{Kind: KindInvalidAmount, Message: "invalid amount"}
	ErrInsufficientBalance      = &Error{Kind: KindInsufficientBalance, Message: "insufficient balance"}
	ErrInvalidTransfer          = &Error{Kind: KindInvalidTransfer, Message: "invalid transfer"}
	ErrTransactionNotFound      = &Error{Kind: KindTransactionNotFound, Message: "transaction not found"}
	ErrInvalidTransactionStatus = &Error{Kind: KindInvalidTransactionStatus, Message: "invalid transaction status"}
	ErrUnauthorized             = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
)

// Errorf builds a ledger error of the given kind with a formatted
// user-facing message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
