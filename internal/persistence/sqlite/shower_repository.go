package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/shower-timer/internal/persistence"
)

// ShowerRepository implements persistence.ShowerRepository using SQLite.
type ShowerRepository struct {
	pool *ConnectionPool
}

// NewShowerRepository creates a SQLite shower repository.
func NewShowerRepository(pool *ConnectionPool) *ShowerRepository {
	return &ShowerRepository{pool: pool}
}

// CreateShower inserts a new shower session and returns it with the
// generated identity. Sessions are immutable after this point.
func (r *ShowerRepository) CreateShower(ctx context.Context, shower persistence.Shower) (persistence.Shower, error) {
	if shower.DurationSeconds < 0 || shower.OvershootSeconds < 0 {
		return persistence.Shower{}, persistence.ErrConstraintViolation
	}

	if shower.CreatedAt.IsZero() {
		shower.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO showers (user_id, started_at, ended_at, duration_seconds, overshoot_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var userID any
	if shower.UserID != nil {
		userID = *shower.UserID
	}

	result, err := r.pool.DB().ExecContext(ctx, query,
		userID,
		shower.StartedAt.Format(time.RFC3339Nano),
		shower.EndedAt.Format(time.RFC3339Nano),
		shower.DurationSeconds,
		shower.OvershootSeconds,
		shower.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return persistence.Shower{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Shower{}, fmt.Errorf("failed to read generated shower id: %w", err)
	}

	shower.ID = id
	return shower, nil
}

// GetShower retrieves a shower by ID.
func (r *ShowerRepository) GetShower(ctx context.Context, id int64) (persistence.Shower, error) {
	const query = `
		SELECT id, user_id, started_at, ended_at, duration_seconds, overshoot_seconds, created_at
		FROM showers
		WHERE id = ?
	`

	shower, err := scanShower(r.pool.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Shower{}, persistence.ErrNotFound
		}
		return persistence.Shower{}, err
	}
	return shower, nil
}

// ListShowers returns all recorded showers ordered by ID ascending.
func (r *ShowerRepository) ListShowers(ctx context.Context) ([]persistence.Shower, error) {
	const query = `
		SELECT id, user_id, started_at, ended_at, duration_seconds, overshoot_seconds, created_at
		FROM showers
		ORDER BY id ASC
	`

	return r.queryShowers(ctx, query)
}

// ListShowersForUser returns all showers owned by the given user ordered by
// ID ascending. An unknown user yields an empty result.
func (r *ShowerRepository) ListShowersForUser(ctx context.Context, userID int64) ([]persistence.Shower, error) {
	const query = `
		SELECT id, user_id, started_at, ended_at, duration_seconds, overshoot_seconds, created_at
		FROM showers
		WHERE user_id = ?
		ORDER BY id ASC
	`

	return r.queryShowers(ctx, query, userID)
}

func (r *ShowerRepository) queryShowers(ctx context.Context, query string, args ...any) ([]persistence.Shower, error) {
	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var showers []persistence.Shower
	for rows.Next() {
		shower, err := scanShower(rows)
		if err != nil {
			return nil, err
		}
		showers = append(showers, shower)
	}

	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	return showers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShower(row rowScanner) (persistence.Shower, error) {
	var shower persistence.Shower
	var userID sql.NullInt64
	var startedAtStr, endedAtStr, createdAtStr string

	err := row.Scan(
		&shower.ID,
		&userID,
		&startedAtStr,
		&endedAtStr,
		&shower.DurationSeconds,
		&shower.OvershootSeconds,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Shower{}, err
		}
		return persistence.Shower{}, mapSQLiteError(err)
	}

	if userID.Valid {
		id := userID.Int64
		shower.UserID = &id
	}

	if shower.StartedAt, err = time.Parse(time.RFC3339Nano, startedAtStr); err != nil {
		return persistence.Shower{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if shower.EndedAt, err = time.Parse(time.RFC3339Nano, endedAtStr); err != nil {
		return persistence.Shower{}, fmt.Errorf("failed to parse ended_at: %w", err)
	}
	if shower.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
		return persistence.Shower{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return shower, nil
}
