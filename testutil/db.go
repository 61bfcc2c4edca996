// Package testutil holds helpers for integration tests. They skip when
// TEST_DATABASE_URL is not set.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const envDSN = "TEST_DATABASE_URL"

// NewDB opens a *sqlx.DB against TEST_DATABASE_URL and closes it when the
// test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := RequireDSN(t)
	db, err := sqlx.ConnectContext(context.Background(), "pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewDB: connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB is for TestMain, where no *testing.T is available. The
// caller closes the returned handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: open: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil.MustOpenSQLDB: ping: " + err.Error())
	}
	return db
}

// RequireDSN returns TEST_DATABASE_URL or skips the test.
func RequireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skip(envDSN + " not set; skipping integration test")
	}
	return dsn
}

// Truncate empties the catalog tables so each test starts from a blank slate.
func Truncate(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`TRUNCATE user_guide, destination, subcategory, category CASCADE`)
	if err != nil {
		t.Fatalf("testutil.Truncate: %v", err)
	}
}
