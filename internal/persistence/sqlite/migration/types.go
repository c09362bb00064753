package migration

import (
	"context"
	"time"
)

// Migration represents a single versioned schema change.
type Migration struct {
	Version     string // sequential identifier ("001", "002", ...)
	Description string // human-readable summary
	SQL         string // statements to execute, separated by semicolons
}

// AppliedMigration represents a migration recorded in the version table.
type AppliedMigration struct {
	Version       string
	AppliedAt     time.Time
	ExecutionTime time.Duration
}

// Executor runs migrations against a concrete database.
type Executor interface {
	// InitializeVersionTable creates the schema_migrations table if needed.
	InitializeVersionTable(ctx context.Context) error

	// ExecuteMigration runs a single migration within a transaction.
	ExecuteMigration(ctx context.Context, m Migration) error

	// RecordMigration records a successful migration in the version table.
	RecordMigration(ctx context.Context, version string, executionTime time.Duration) error

	// AppliedVersions returns all applied migrations ordered by version.
	AppliedVersions(ctx context.Context) ([]AppliedMigration, error)
}
