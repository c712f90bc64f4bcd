package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabank/teabank/pkg/ledger"
)

func newTestConnection(t *testing.T) *Connection {
	t.Helper()

	conn, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestAccountStoreCreateAndFind(t *testing.T) {
	conn := newTestConnection(t)
	store := NewAccountStore(conn)

	account := &ledger.Account{AccountNo: "234567890", Name: "alice"}
	require.NoError(t, store.Create(account))
	assert.NotZero(t, account.ID, "Create assigns storage identity")

	found, err := store.Find("234567890")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Name)
	assert.Zero(t, found.Amount)
	assert.Zero(t, found.Pending)
	assert.Zero(t, found.Share)
}

func TestAccountStoreFindMissing(t *testing.T) {
	conn := newTestConnection(t)
	store := NewAccountStore(conn)

	found, err := store.Find("000000000")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAccountStoreCreateDuplicate(t *testing.T) {
	conn := newTestConnection(t)
	store := NewAccountStore(conn)

	require.NoError(t, store.Create(&ledger.Account{AccountNo: "234567890", Name: "alice"}))

	err := store.Create(&ledger.Account{AccountNo: "234567890", Name: "impostor"})
	assert.True(t, errors.Is(err, ledger.ErrAccountAlreadyExists))
}

func TestAccountStoreExists(t *testing.T) {
	conn := newTestConnection(t)
	store := NewAccountStore(conn)

	exists, err := store.Exists("234567890")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Create(&ledger.Account{AccountNo: "234567890", Name: "alice"}))

	exists, err = store.Exists("234567890")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountStoreAdjust(t *testing.T) {
	conn := newTestConnection(t)
	store := NewAccountStore(conn)

	require.NoError(t, store.Create(&ledger.Account{AccountNo: "234567890", Name: "alice"}))

	require.NoError(t, store.AdjustPending("234567890", 1000))
	require.NoError(t, store.AdjustAmount("234567890", 500))
	require.NoError(t, store.AdjustPending("234567890", -300))

	account, err := store.Find("234567890")
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Amount)
	assert.Equal(t, int64(700), account.Pending)

	// Audit settlement touches both columns in one statement
	require.NoError(t, store.AdjustBoth("234567890", -700, 700))

	account, err = store.Find("234567890")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), account.Amount)
	assert.Zero(t, account.Pending)
}

func TestAccountStoreAdjustInsideTransaction(t *testing.T) {
	conn := newTestConnection(t)

	require.NoError(t, NewAccountStore(conn).Create(&ledger.Account{AccountNo: "234567890", Name: "alice"}))

	// A failed storage transaction leaves balances untouched
	err := conn.Transaction(func(tx *sql.Tx) error {
		if err := NewAccountStore(tx).AdjustAmount("234567890", 5000); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	account, err := NewAccountStore(conn).Find("234567890")
	require.NoError(t, err)
	assert.Zero(t, account.Amount)
}
