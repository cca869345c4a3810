// Package testutil provides a throwaway SQLite store with the dashboard
// schema for package tests.  The queries under internal/repository are
// written to run unchanged on MySQL and SQLite.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE users (
	id       TEXT NOT NULL PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);
CREATE TABLE customers (
	id        TEXT NOT NULL PRIMARY KEY,
	name      TEXT NOT NULL,
	email     TEXT NOT NULL,
	image_url TEXT NOT NULL
);
CREATE TABLE invoices (
	id          TEXT    NOT NULL PRIMARY KEY,
	customer_id TEXT    NOT NULL REFERENCES customers (id),
	amount      INTEGER NOT NULL CHECK (amount > 0),
	status      TEXT    NOT NULL CHECK (status IN ('pending', 'paid')),
	date        TEXT    NOT NULL
);
CREATE TABLE revenue (
	month   TEXT    NOT NULL UNIQUE,
	revenue INTEGER NOT NULL
);
CREATE TABLE events (
	id              TEXT    NOT NULL PRIMARY KEY,
	name            TEXT    NOT NULL,
	start_on        TEXT    NOT NULL,
	start_at        TEXT    NOT NULL,
	pax             INTEGER NOT NULL,
	purpose         TEXT    NOT NULL,
	venue           TEXT    NOT NULL,
	holdingroom     TEXT,
	eventsetup      TEXT    NOT NULL,
	menurequest     TEXT    NOT NULL,
	typeofservice   TEXT    NOT NULL,
	servingschedule TEXT    NOT NULL,
	timeofserving   TEXT    NOT NULL,
	foodrestriction TEXT    NOT NULL,
	foodinstruction TEXT,
	remarks         TEXT,
	user_id         TEXT    NOT NULL REFERENCES users (id),
	created_at      TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Well known seed customers.
const (
	LeeRobinsonID   = "3958dc9e-742f-4377-85e9-fec4b6a6442a"
	DelbaOliveiraID = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
	EvilRabbitID    = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
)

// NewDB opens a file-backed SQLite database under t.TempDir with the
// schema applied.  A file is used rather than :memory: so that every
// pooled connection sees the same data, and foreign keys are switched on
// for every connection as MySQL enforces them.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.db")
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

// InsertCustomer adds one customer row.
func InsertCustomer(t *testing.T, db *sql.DB, id, name, email string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)`,
		id, name, email, "/customers/"+id+".png")
	require.NoError(t, err)
}

// InsertInvoice adds one invoice row; amount is in cents, date is
// YYYY-MM-DD.
func InsertInvoice(t *testing.T, db *sql.DB, id, customerID string, amount int64, status, date string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		id, customerID, amount, status, date)
	require.NoError(t, err)
}

// InsertRevenue adds one revenue row.
func InsertRevenue(t *testing.T, db *sql.DB, month string, revenue int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO revenue (month, revenue) VALUES (?, ?)`, month, revenue)
	require.NoError(t, err)
}

// InsertUser adds a user whose password is stored as a bcrypt hash of
// password.
func InsertUser(t *testing.T, db *sql.DB, id, name, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, name, email, password) VALUES (?, ?, ?, ?)`,
		id, name, email, string(hash))
	require.NoError(t, err)
}

// SeedCustomers inserts the three well known customers.
func SeedCustomers(t *testing.T, db *sql.DB) {
	t.Helper()
	InsertCustomer(t, db, LeeRobinsonID, "Lee Robinson", "lee@robinson.com")
	InsertCustomer(t, db, DelbaOliveiraID, "Delba de Oliveira", "delba@oliveira.com")
	InsertCustomer(t, db, EvilRabbitID, "Evil Rabbit", "evil@rabbit.com")
}
