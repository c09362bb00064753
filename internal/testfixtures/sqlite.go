package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/shower-timer/internal/persistence"
	"github.com/example/shower-timer/internal/persistence/sqlite"
	"github.com/example/shower-timer/internal/persistence/sqlite/migration"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool    *sqlite.ConnectionPool
	Users   persistence.UserRepository
	Showers persistence.ShowerRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "showerd.db")

	pool, err := sqlite.NewConnectionPool(migration.TempFileTestSQLiteConfig(path))
	if err != nil {
		tb.Fatalf("failed to open connection pool: %v", err)
	}

	manager := migration.NewManager(migration.NewSQLiteExecutor(pool.DB()), migration.Builtin(), nil)
	if err := manager.Run(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Pool:    pool,
		Users:   sqlite.NewUserRepository(pool),
		Showers: sqlite.NewShowerRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
