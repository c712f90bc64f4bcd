package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Accounts table
-- One row per member account, keyed by the derived account number
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_no TEXT NOT NULL UNIQUE,   -- last 9 chars of the external user id
    name TEXT NOT NULL,                -- display label, informational only
    amount INTEGER NOT NULL DEFAULT 0, -- settled balance, may be negative
    pending INTEGER NOT NULL DEFAULT 0,-- net unsettled delta, may be negative
    share INTEGER NOT NULL DEFAULT 0   -- reserved
);

-- Transactions table
-- Append-only log; rows are never deleted
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,                -- deposit/withdraw/transfer/request/donate
    time TIMESTAMP NOT NULL,
    sender_account TEXT NOT NULL,
    receiver_account TEXT NOT NULL,
    status TEXT NOT NULL,              -- pending/done/denied
    amount INTEGER NOT NULL,
    operator TEXT,                     -- NULL until audited
    memo TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_status
    ON transactions(status);

CREATE INDEX IF NOT EXISTS idx_transactions_sender
    ON transactions(sender_account);

CREATE INDEX IF NOT EXISTS idx_transactions_receiver
    ON transactions(receiver_account);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
