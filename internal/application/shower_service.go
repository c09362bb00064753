package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// OvershootThresholdSeconds is the target shower duration. Seconds beyond
// it are stored as the session's overshoot.
const OvershootThresholdSeconds = 300

// ShowerRepository captures the persistence operations needed by the shower
// service.
type ShowerRepository interface {
	CreateShower(ctx context.Context, shower Shower) (Shower, error)
	GetShower(ctx context.Context, id int64) (Shower, error)
	ListShowers(ctx context.Context) ([]Shower, error)
	ListShowersForUser(ctx context.Context, userID int64) ([]Shower, error)
}

// ShowerService records shower sessions. It is the sole place that enforces
// the overshoot rule and keeps each user's cumulative total consistent with
// the sessions on file.
type ShowerService struct {
	showers ShowerRepository
	users   UserRepository
	logger  *slog.Logger
}

// NewShowerService wires dependencies for the shower service.
func NewShowerService(showers ShowerRepository, users UserRepository) *ShowerService {
	return NewShowerServiceWithLogger(showers, users, nil)
}

// NewShowerServiceWithLogger wires dependencies with an explicit base logger.
func NewShowerServiceWithLogger(showers ShowerRepository, users UserRepository, logger *slog.Logger) *ShowerService {
	return &ShowerService{showers: showers, users: users, logger: defaultLogger(logger)}
}

func (s *ShowerService) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if s == nil {
		return slog.Default()
	}
	return serviceLogger(ctx, s.logger, "ShowerService", operation, attrs...)
}

// RecordShower persists a shower session and maintains the owning user's
// cumulative total.
//
// The overshoot is derived from the duration regardless of caller input.
// When the session carries a user reference, the total is recomputed by
// summing every session on file for that user rather than incremented:
// the recompute is idempotent and converges after concurrent writes, so no
// transaction wraps the sequence.
func (s *ShowerService) RecordShower(ctx context.Context, params RecordShowerParams) (Shower, error) {
	if s == nil || s.showers == nil {
		return Shower{}, fmt.Errorf("shower repository not configured")
	}

	if params.DurationSeconds < 0 {
		vErr := &ValidationError{}
		vErr.add("duration_seconds", "duration must not be negative")
		return Shower{}, vErr
	}

	if params.UserID != nil {
		if _, err := s.users.GetUser(ctx, *params.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Shower{}, ErrNotFound
			}
			return Shower{}, err
		}
	}

	shower := Shower{
		UserID:           params.UserID,
		StartedAt:        params.StartedAt,
		EndedAt:          params.EndedAt,
		DurationSeconds:  params.DurationSeconds,
		OvershootSeconds: overshoot(params.DurationSeconds),
	}

	persisted, err := s.showers.CreateShower(ctx, shower)
	if err != nil {
		return Shower{}, err
	}

	logger := s.log(ctx, "RecordShower",
		"shower_id", persisted.ID,
		"duration_seconds", persisted.DurationSeconds,
		"overshoot_seconds", persisted.OvershootSeconds,
	)

	if persisted.UserID != nil {
		total, err := s.recomputeTotal(ctx, *persisted.UserID)
		if err != nil {
			return Shower{}, err
		}
		logger = logger.With("user_id", *persisted.UserID, "total_seconds", total)
	}

	logger.InfoContext(ctx, "shower recorded")
	return persisted, nil
}

// recomputeTotal sums the durations of every session owned by the user and
// stores the sum as the user's cumulative total.
func (s *ShowerService) recomputeTotal(ctx context.Context, userID int64) (int, error) {
	showers, err := s.showers.ListShowersForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, shower := range showers {
		total += shower.DurationSeconds
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	user.TotalSeconds = total
	if _, err := s.users.UpdateUser(ctx, user); err != nil {
		return 0, err
	}

	return total, nil
}

// GetShower returns the session with the given ID, or ErrNotFound.
func (s *ShowerService) GetShower(ctx context.Context, id int64) (Shower, error) {
	if s == nil || s.showers == nil {
		return Shower{}, fmt.Errorf("shower repository not configured")
	}
	return s.showers.GetShower(ctx, id)
}

// ListShowers returns every recorded session.
func (s *ShowerService) ListShowers(ctx context.Context) ([]Shower, error) {
	if s == nil || s.showers == nil {
		return nil, fmt.Errorf("shower repository not configured")
	}
	return s.showers.ListShowers(ctx)
}

// ListShowersForUser returns the sessions owned by the given user. An
// unknown user yields an empty result, not an error.
func (s *ShowerService) ListShowersForUser(ctx context.Context, userID int64) ([]Shower, error) {
	if s == nil || s.showers == nil {
		return nil, fmt.Errorf("shower repository not configured")
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return s.showers.ListShowersForUser(ctx, userID)
}

func overshoot(durationSeconds int) int {
	if durationSeconds > OvershootThresholdSeconds {
		return durationSeconds - OvershootThresholdSeconds
	}
	return 0
}
