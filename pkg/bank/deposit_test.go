package bank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabank/teabank/pkg/ledger"
)

func TestDeposit(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	txn, err := service.Deposit("1234567890", 1000, "allowance")
	require.NoError(t, err)

	assert.Equal(t, ledger.TypeDeposit, txn.Type)
	assert.Equal(t, ledger.StatusPending, txn.Status)
	assert.Equal(t, int64(1000), txn.Amount)
	assert.Equal(t, "234567890", txn.SenderAccount)
	assert.Equal(t, "234567890", txn.ReceiverAccount)
	assert.Equal(t, "allowance", txn.Memo)
	assert.Empty(t, txn.Operator)

	account := getAccount(t, conn, "234567890")
	assert.Zero(t, account.Amount, "settled balance untouched until approval")
	assert.Equal(t, int64(1000), account.Pending)
}

func TestDepositUnknownAccount(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Deposit("1234567890", 1000, "")
	assert.True(t, errors.Is(err, ledger.ErrAccountNotFound))
}

func TestDepositInvalidAmounts(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	_, err := service.Deposit("1234567890", 0, "")
	assert.True(t, errors.Is(err, ledger.ErrInvalidAmount))

	_, err = service.Deposit("1234567890", -500, "")
	assert.True(t, errors.Is(err, ledger.ErrInvalidAmount))

	account := getAccount(t, conn, "234567890")
	assert.Zero(t, account.Pending, "failed deposits leave no trace")
}

func TestDepositCeiling(t *testing.T) {
	service, _ := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	// Exactly the ceiling succeeds
	_, err := service.Deposit("1234567890", 1_000_000_000_000, "")
	require.NoError(t, err)

	// One over fails
	_, err = service.Deposit("1234567890", 1_000_000_000_001, "")
	assert.True(t, errors.Is(err, ledger.ErrInvalidAmount))
}

func TestDepositApproveRoundTrip(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	txn, err := service.Deposit("1234567890", 1000, "")
	require.NoError(t, err)

	require.NoError(t, service.ApproveTransaction(txn.ID, "admin"))

	account := getAccount(t, conn, "234567890")
	assert.Zero(t, account.Pending)
	assert.Equal(t, int64(1000), account.Amount)

	approved, err := service.PullTransactions("1234567890", 1)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, ledger.StatusDone, approved[0].Status)
	assert.Equal(t, "admin", approved[0].Operator)
}

func TestDepositDenyRoundTrip(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	txn, err := service.Deposit("1234567890", 1000, "")
	require.NoError(t, err)

	require.NoError(t, service.DenyTransaction(txn.ID, "admin"))

	account := getAccount(t, conn, "234567890")
	assert.Zero(t, account.Pending, "denial reverses the pending delta")
	assert.Zero(t, account.Amount, "settled balance was never touched")
}

func TestRequest(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	txn, err := service.Request("1234567890", 500, "reimbursement")
	require.NoError(t, err)

	assert.Equal(t, ledger.TypeRequest, txn.Type)
	assert.Equal(t, ledger.StatusPending, txn.Status)

	account := getAccount(t, conn, "234567890")
	assert.Equal(t, int64(500), account.Pending)
}

func TestRequestLowerCeiling(t *testing.T) {
	service, _ := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	// Requests cap at 100B, an order of magnitude below deposits
	_, err := service.Request("1234567890", 100_000_000_000, "")
	require.NoError(t, err)

	_, err = service.Request("1234567890", 100_000_000_001, "")
	assert.True(t, errors.Is(err, ledger.ErrInvalidAmount))
}

func TestRequestApproveSettlesLikeDeposit(t *testing.T) {
	service, conn := newTestService(t)
	mustRegister(t, service, "1234567890", "alice")

	txn, err := service.Request("1234567890", 500, "")
	require.NoError(t, err)
	require.NoError(t, service.ApproveTransaction(txn.ID, "auditor"))

	account := getAccount(t, conn, "234567890")
	assert.Zero(t, account.Pending)
	assert.Equal(t, int64(500), account.Amount)
}
