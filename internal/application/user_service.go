package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// UserRepository captures the persistence operations needed by the user
// service.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByName(ctx context.Context, lastName string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// UserService orchestrates validation and persistence for the user
// directory, including the direct time adjustment path.
type UserService struct {
	users  UserRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewUserService wires dependencies for the user service.
func NewUserService(users UserRepository, now func() time.Time) *UserService {
	return NewUserServiceWithLogger(users, now, nil)
}

// NewUserServiceWithLogger wires dependencies with an explicit base logger.
func NewUserServiceWithLogger(users UserRepository, now func() time.Time, logger *slog.Logger) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, now: now, logger: defaultLogger(logger)}
}

func (s *UserService) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if s == nil {
		return slog.Default()
	}
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// CreateUser validates input and persists a new user with a zero total.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}

	normalized := UserInput{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}

	vErr := &ValidationError{}
	if normalized.FirstName == "" {
		vErr.add("first_name", "first name is required")
	}
	if normalized.LastName == "" {
		vErr.add("last_name", "last name is required")
	}
	if vErr.HasErrors() {
		return User{}, vErr
	}

	created := s.now()
	user := User{
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		TotalSeconds: 0,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	persisted, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}

	s.log(ctx, "CreateUser", "user_id", persisted.ID).InfoContext(ctx, "user created")
	return persisted, nil
}

// GetUser returns the user with the given ID, or ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}
	return s.users.GetUser(ctx, id)
}

// GetUserByName returns the first user matching the given last name, or
// ErrNotFound. Callers decide whether absence is an error.
func (s *UserService) GetUserByName(ctx context.Context, lastName string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}
	return s.users.GetUserByName(ctx, strings.TrimSpace(lastName))
}

// ListUsers returns all registered users.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	if s == nil || s.users == nil {
		return nil, fmt.Errorf("user repository not configured")
	}
	return s.users.ListUsers(ctx)
}

// AddTime adds the given number of seconds to a user's cumulative total.
//
// This is a manual correction tool that bypasses the recorder's
// recompute-from-sessions path; the recompute remains the authoritative
// writer of the total, so a correction applied here survives only until the
// user's next recorded session. An unknown ID is a silent no-op.
func (s *UserService) AddTime(ctx context.Context, id int64, seconds int) error {
	if s == nil || s.users == nil {
		return fmt.Errorf("user repository not configured")
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log(ctx, "AddTime", "user_id", id).WarnContext(ctx, "time adjustment skipped, user does not exist")
			return nil
		}
		return err
	}

	user.TotalSeconds += seconds
	user.UpdatedAt = s.now()
	if _, err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.log(ctx, "AddTime", "user_id", id, "seconds", seconds).InfoContext(ctx, "user total adjusted")
	return nil
}
