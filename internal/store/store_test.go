// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"mediacms/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with development defaults.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "mediacms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "mediacms")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testConn returns a lazy handle to the test database with migrations
// applied. If the database is unavailable, the test is skipped.
func testConn(t *testing.T) *database.Lazy {
	t.Helper()

	// Probe availability first so unreachable databases skip rather than fail.
	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	db.Close()

	conn := database.NewLazy(testDSN(), func(db *sql.DB) error {
		if err := database.Migrate(db); err != nil {
			return err
		}
		goose.SetBaseFS(nil)
		return nil
	})
	t.Cleanup(func() { conn.Close() })
	return conn
}

// cleanContent removes test content by slug. Call in t.Cleanup().
func cleanContent(t *testing.T, conn *database.Lazy, slugs ...string) {
	t.Helper()
	db, err := conn.DB()
	if err != nil {
		return
	}
	for _, slug := range slugs {
		db.Exec("DELETE FROM content WHERE slug = $1", slug)
	}
}
