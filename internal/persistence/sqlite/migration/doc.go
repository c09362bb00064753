// Package migration provides a versioned schema migration system for the
// SQLite database backing the shower timer service.
//
// Migrations are defined in code (see Builtin) and applied sequentially,
// each inside its own transaction. A schema_migrations table tracks applied
// versions and prevents duplicate execution, and the manager validates that
// the applied history matches the built-in sequence before running anything.
//
// Example usage:
//
//	manager := migration.NewManager(migration.NewSQLiteExecutor(db), migration.Builtin(), logger)
//	if err := manager.Run(ctx); err != nil {
//		log.Fatalf("migration failed: %v", err)
//	}
package migration
