package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabank/teabank/pkg/ledger"
)

func TestTransactionStoreCreateAndFind(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	id, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "234567890", "234567890", 1000, "first deposit"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "ids are sequential from 1")

	txn, err := store.Find(id)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, ledger.TypeDeposit, txn.Type)
	assert.Equal(t, ledger.StatusPending, txn.Status)
	assert.Equal(t, int64(1000), txn.Amount)
	assert.Equal(t, "234567890", txn.SenderAccount)
	assert.Equal(t, "234567890", txn.ReceiverAccount)
	assert.Equal(t, "first deposit", txn.Memo)
	assert.Empty(t, txn.Operator, "operator is empty while pending")
	assert.False(t, txn.Time.IsZero())
}

func TestTransactionStoreSequentialIDs(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	for want := int64(1); want <= 3; want++ {
		id, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 100, ""))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestTransactionStoreFindMissing(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	txn, err := store.Find(99)
	require.NoError(t, err)
	assert.Nil(t, txn)
}

func TestTransactionStoreFindPending(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	_, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 100, ""))
	require.NoError(t, err)
	_, err = store.Create(ledger.NewDone(ledger.TypeTransfer, "a", "b", 200, ""))
	require.NoError(t, err)
	_, err = store.Create(ledger.NewPending(ledger.TypeWithdraw, "b", "b", 300, ""))
	require.NoError(t, err)

	pending, err := store.FindPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	// Insertion order
	assert.Equal(t, int64(1), pending[0].ID)
	assert.Equal(t, int64(3), pending[1].ID)

	// Limit caps the result
	pending, err = store.FindPending(1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
}

func TestTransactionStoreFindByAccount(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	_, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 100, ""))
	require.NoError(t, err)
	_, err = store.Create(ledger.NewDone(ledger.TypeTransfer, "a", "b", 200, ""))
	require.NoError(t, err)
	_, err = store.Create(ledger.NewPending(ledger.TypeDeposit, "c", "c", 300, ""))
	require.NoError(t, err)

	deniedID, err := store.Create(ledger.NewPending(ledger.TypeWithdraw, "a", "a", 400, ""))
	require.NoError(t, err)
	require.NoError(t, store.UpdateStatus(deniedID, ledger.StatusDenied, "admin"))

	txns, err := store.FindByAccount("a", 10)
	require.NoError(t, err)
	require.Len(t, txns, 2, "denied transactions and other accounts excluded")

	// Newest first
	assert.Equal(t, int64(2), txns[0].ID)
	assert.Equal(t, int64(1), txns[1].ID)

	// The account matches as sender or receiver
	txns, err = store.FindByAccount("b", 10)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, ledger.TypeTransfer, txns[0].Type)
}

func TestTransactionStoreNegativeLimit(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	_, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 100, ""))
	require.NoError(t, err)
	_, err = store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 200, ""))
	require.NoError(t, err)

	// Negative limits cap to nothing rather than returning the whole log
	pending, err := store.FindPending(-1)
	require.NoError(t, err)
	assert.Empty(t, pending)

	txns, err := store.FindByAccount("a", -1)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransactionStoreUpdateStatus(t *testing.T) {
	conn := newTestConnection(t)
	store := NewTransactionStore(conn)

	id, err := store.Create(ledger.NewPending(ledger.TypeDeposit, "a", "a", 100, ""))
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(id, ledger.StatusDone, "admin"))

	txn, err := store.Find(id)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusDone, txn.Status)
	assert.Equal(t, "admin", txn.Operator)
}
