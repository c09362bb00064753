package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/shower-timer/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new user and returns it with the generated identity.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	if user.TotalSeconds < 0 {
		return persistence.User{}, persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	const query = `
		INSERT INTO users (first_name, last_name, total_seconds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.pool.DB().ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.TotalSeconds,
		user.CreatedAt.Format(time.RFC3339Nano),
		user.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return persistence.User{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.User{}, fmt.Errorf("failed to read generated user id: %w", err)
	}

	user.ID = id
	return user, nil
}

// UpdateUser updates an existing user and returns the stored record.
func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	if user.TotalSeconds < 0 {
		return persistence.User{}, persistence.ErrConstraintViolation
	}

	user.UpdatedAt = time.Now().UTC()

	const query = `
		UPDATE users
		SET first_name = ?, last_name = ?, total_seconds = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.pool.DB().ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.TotalSeconds,
		user.UpdatedAt.Format(time.RFC3339Nano),
		user.ID,
	)
	if err != nil {
		return persistence.User{}, mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.User{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.User{}, persistence.ErrNotFound
	}

	return r.GetUser(ctx, user.ID)
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	const query = `
		SELECT id, first_name, last_name, total_seconds, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return r.scanUser(r.pool.DB().QueryRowContext(ctx, query, id))
}

// GetUserByName retrieves the first user matching the given last name,
// lowest ID winning. Last names carry no uniqueness constraint; the device
// addresses its wearer by name and assumes one match.
func (r *UserRepository) GetUserByName(ctx context.Context, lastName string) (persistence.User, error) {
	const query = `
		SELECT id, first_name, last_name, total_seconds, created_at, updated_at
		FROM users
		WHERE last_name = ? COLLATE NOCASE
		ORDER BY id ASC
		LIMIT 1
	`

	return r.scanUser(r.pool.DB().QueryRowContext(ctx, query, lastName))
}

// ListUsers returns all users ordered by ID ascending.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	const query = `
		SELECT id, first_name, last_name, total_seconds, created_at, updated_at
		FROM users
		ORDER BY id ASC
	`

	rows, err := r.pool.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		var user persistence.User
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.TotalSeconds,
			&createdAtStr,
			&updatedAtStr,
		); err != nil {
			return nil, mapSQLiteError(err)
		}

		if err := parseUserTimestamps(&user, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	return users, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.TotalSeconds,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, mapSQLiteError(err)
	}

	if err := parseUserTimestamps(&user, createdAtStr, updatedAtStr); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

func parseUserTimestamps(user *persistence.User, createdAtStr, updatedAtStr string) error {
	var err error
	if user.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
		return fmt.Errorf("failed to parse created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr); err != nil {
		return fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return nil
}
