// Package testutil holds integration-test helpers for both destination
// stores. Every helper skips the calling test when its connection variable
// (TEST_DATABASE_URL or TEST_MONGODB_URI) is unset, so `go test ./...` stays
// green on a machine without databases.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 10 * time.Second

// NewPool connects to TEST_DATABASE_URL. The pool closes with the test.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	pool, err := openPool(dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB is NewPool behind database/sql, the form goose needs. It shares
// the pool the way the migrate command does.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db := stdlib.OpenDBFromPool(NewPool(t))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustOpenSQLDB is the TestMain variant of NewSQLDB: there is no *testing.T
// to skip or fail, so it panics. The caller closes the returned DB; the pool
// beneath it lives until the process exits.
func MustOpenSQLDB(dsn string) *sql.DB {
	pool, err := openPool(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return stdlib.OpenDBFromPool(pool)
}

func openPool(dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
