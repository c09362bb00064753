package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed indicates that a migration execution failed.
	ErrMigrationFailed = errors.New("migration execution failed")

	// ErrDuplicateVersion indicates that two migrations share a version.
	ErrDuplicateVersion = errors.New("duplicate migration version")

	// ErrVersionConflict indicates that the recorded history does not match
	// the built-in migration sequence.
	ErrVersionConflict = errors.New("migration version conflict")
)

// MigrationError wraps a migration failure with its version and operation.
type MigrationError struct {
	Version   string
	Operation string
	Err       error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %s: %s: %v", e.Version, e.Operation, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// NewMigrationError creates a MigrationError with context.
func NewMigrationError(version, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, Operation: operation, Err: err}
}
