package migration

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeExecutor records calls in memory so Manager behaviour can be tested
// without a database.
type fakeExecutor struct {
	applied     []AppliedMigration
	executed    []string
	recorded    []string
	initErr     error
	executeErr  map[string]error
	initialized bool
}

func (f *fakeExecutor) InitializeVersionTable(context.Context) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.initialized = true
	return nil
}

func (f *fakeExecutor) ExecuteMigration(_ context.Context, m Migration) error {
	if err := f.executeErr[m.Version]; err != nil {
		return err
	}
	f.executed = append(f.executed, m.Version)
	return nil
}

func (f *fakeExecutor) RecordMigration(_ context.Context, version string, executionTime time.Duration) error {
	f.recorded = append(f.recorded, version)
	f.applied = append(f.applied, AppliedMigration{Version: version, AppliedAt: time.Now(), ExecutionTime: executionTime})
	return nil
}

func (f *fakeExecutor) AppliedVersions(context.Context) ([]AppliedMigration, error) {
	return append([]AppliedMigration(nil), f.applied...), nil
}

func TestManager_Run(t *testing.T) {
	t.Parallel()

	t.Run("applies pending migrations in version order", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{}
		source := []Migration{
			{Version: "002", Description: "second"},
			{Version: "001", Description: "first"},
		}
		manager := NewManager(executor, source, nil)

		if err := manager.Run(context.Background()); err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if !executor.initialized {
			t.Fatal("expected version table initialisation")
		}
		if len(executor.executed) != 2 || executor.executed[0] != "001" || executor.executed[1] != "002" {
			t.Fatalf("expected ordered execution, got %v", executor.executed)
		}
		if len(executor.recorded) != 2 {
			t.Fatalf("expected 2 recorded migrations, got %d", len(executor.recorded))
		}
	})

	t.Run("skips already applied versions", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{
			applied: []AppliedMigration{{Version: "001", AppliedAt: time.Now()}},
		}
		source := []Migration{{Version: "001"}, {Version: "002"}}
		manager := NewManager(executor, source, nil)

		if err := manager.Run(context.Background()); err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if len(executor.executed) != 1 || executor.executed[0] != "002" {
			t.Fatalf("expected only 002 to run, got %v", executor.executed)
		}
	})

	t.Run("is idempotent once the sequence is applied", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{}
		manager := NewManager(executor, []Migration{{Version: "001"}}, nil)

		if err := manager.Run(context.Background()); err != nil {
			t.Fatalf("first Run returned error: %v", err)
		}
		if err := manager.Run(context.Background()); err != nil {
			t.Fatalf("second Run returned error: %v", err)
		}
		if len(executor.executed) != 1 {
			t.Fatalf("expected a single execution, got %v", executor.executed)
		}
	})

	t.Run("wraps execution failures with the version", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{
			executeErr: map[string]error{"001": errors.New("syntax error")},
		}
		manager := NewManager(executor, []Migration{{Version: "001"}}, nil)

		err := manager.Run(context.Background())
		if !errors.Is(err, ErrMigrationFailed) {
			t.Fatalf("expected ErrMigrationFailed, got %v", err)
		}
		var mErr *MigrationError
		if !errors.As(err, &mErr) || mErr.Version != "001" {
			t.Fatalf("expected MigrationError for 001, got %v", err)
		}
	})
}

func TestManager_Pending(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate versions in the source", func(t *testing.T) {
		t.Parallel()

		manager := NewManager(&fakeExecutor{}, []Migration{{Version: "001"}, {Version: "001"}}, nil)

		_, err := manager.Pending(context.Background())
		if !errors.Is(err, ErrDuplicateVersion) {
			t.Fatalf("expected ErrDuplicateVersion, got %v", err)
		}
	})

	t.Run("rejects applied versions missing from the source", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{
			applied: []AppliedMigration{{Version: "999"}},
		}
		manager := NewManager(executor, []Migration{{Version: "001"}}, nil)

		_, err := manager.Pending(context.Background())
		if !errors.Is(err, ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("rejects empty versions", func(t *testing.T) {
		t.Parallel()

		manager := NewManager(&fakeExecutor{}, []Migration{{Version: ""}}, nil)

		_, err := manager.Pending(context.Background())
		if !errors.Is(err, ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	source := Builtin()
	if len(source) == 0 {
		t.Fatal("expected at least one built-in migration")
	}
	for i := 1; i < len(source); i++ {
		if source[i-1].Version >= source[i].Version {
			t.Fatalf("expected ascending versions, got %s before %s", source[i-1].Version, source[i].Version)
		}
	}

	// Mutating one copy must not leak into the next.
	source[0].SQL = "DROP TABLE users"
	if Builtin()[0].SQL == "DROP TABLE users" {
		t.Fatal("expected Builtin to return an independent copy")
	}
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	statements := splitStatements(`
		-- leading comment
		CREATE TABLE a (id INTEGER);

		CREATE INDEX idx_a ON a (id);
	`)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
	}
}
