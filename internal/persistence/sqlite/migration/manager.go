package migration

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Manager applies the pending subset of a migration sequence in order.
type Manager struct {
	executor Executor
	source   []Migration
	logger   *slog.Logger
}

// NewManager creates a manager for the given executor and migration source.
func NewManager(executor Executor, source []Migration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{executor: executor, source: source, logger: logger}
}

// Run executes all pending migrations in sequential order.
func (m *Manager) Run(ctx context.Context) error {
	start := time.Now()

	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to initialize version table: %w", err)
	}

	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		m.logger.InfoContext(ctx, "database schema up to date")
		return nil
	}

	for i, mig := range pending {
		migStart := time.Now()
		m.logger.InfoContext(ctx, "applying migration",
			"version", mig.Version,
			"description", mig.Description,
			"progress", fmt.Sprintf("%d/%d", i+1, len(pending)),
		)

		if err := m.executor.ExecuteMigration(ctx, mig); err != nil {
			m.logger.ErrorContext(ctx, "migration failed", "version", mig.Version, "error", err)
			return NewMigrationError(mig.Version, "execute migration", fmt.Errorf("%w: %v", ErrMigrationFailed, err))
		}

		elapsed := time.Since(migStart)
		if err := m.executor.RecordMigration(ctx, mig.Version, elapsed); err != nil {
			return NewMigrationError(mig.Version, "record migration", err)
		}

		m.logger.InfoContext(ctx, "migration applied", "version", mig.Version, "duration", elapsed)
	}

	m.logger.InfoContext(ctx, "migrations complete", "applied", len(pending), "duration", time.Since(start))
	return nil
}

// Pending returns the source migrations that have not been applied yet,
// ordered by version, after validating the sequence.
func (m *Manager) Pending(ctx context.Context) ([]Migration, error) {
	if err := m.validateSource(); err != nil {
		return nil, err
	}

	applied, err := m.executor.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied versions: %w", err)
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, a := range applied {
		appliedSet[a.Version] = true
	}

	known := make(map[string]bool, len(m.source))
	for _, mig := range m.source {
		known[mig.Version] = true
	}
	for _, a := range applied {
		if !known[a.Version] {
			return nil, fmt.Errorf("%w: applied version %s is not in the migration source", ErrVersionConflict, a.Version)
		}
	}

	pending := make([]Migration, 0, len(m.source))
	for _, mig := range m.source {
		if !appliedSet[mig.Version] {
			pending = append(pending, mig)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	return pending, nil
}

func (m *Manager) validateSource() error {
	seen := make(map[string]bool, len(m.source))
	for _, mig := range m.source {
		if mig.Version == "" {
			return fmt.Errorf("%w: migration with empty version", ErrVersionConflict)
		}
		if seen[mig.Version] {
			return fmt.Errorf("%w: %s", ErrDuplicateVersion, mig.Version)
		}
		seen[mig.Version] = true
	}
	return nil
}
