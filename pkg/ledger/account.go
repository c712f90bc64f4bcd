// Package ledger defines the domain entities and error taxonomy for the
// TeaBank ledger engine.
package ledger

// Account represents a member account.
//
// Amount is the settled balance; Pending is the net unsettled delta
// accumulated by deposit/withdraw/request/donate operations awaiting
// audit. Both may be negative. Share is reserved and always zero.
type Account struct {
	ID        int64
	AccountNo string
	Name      string
	Amount    int64
	Pending   int64
	Share     int64
}

// TotalBalance returns the balance including unsettled pending amounts.
func (a Account) TotalBalance() int64 {
	return a.Amount + a.Pending
}

// AccountNoLength is the number of trailing characters of an external
// user identifier that form an account number.
const AccountNoLength = 9

// AccountNo derives an account number from an external user identifier:
// the last 9 characters, or the whole string if shorter. The derivation
// is deterministic and collision-accepting; two identifiers sharing a
// suffix alias to the same account. Counted in runes, not bytes, so
// multi-byte identifiers keep whole characters.
func AccountNo(userID string) string {
	runes := []rune(userID)
	if len(runes) <= AccountNoLength {
		return userID
	}
	return string(runes[len(runes)-AccountNoLength:])
}
