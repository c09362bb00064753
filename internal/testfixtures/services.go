package testfixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/example/shower-timer/internal/application"
	"github.com/example/shower-timer/internal/persistence"
	"github.com/example/shower-timer/internal/persistence/sqlite"
)

// ServiceHarness wires the application services against the in-memory
// storage so handler tests exercise the full stack without a database file.
type ServiceHarness struct {
	Storage *sqlite.Storage
	Clock   *Clock
	Users   *application.UserService
	Showers *application.ShowerService
}

// NewServiceHarness constructs a fully wired in-memory service stack.
func NewServiceHarness(tb testing.TB) *ServiceHarness {
	tb.Helper()

	storage := sqlite.OpenMemory()
	clock := NewClock(ReferenceTime())

	users := userRepositoryAdapter{repo: storage}
	showers := showerRepositoryAdapter{repo: storage}

	harness := &ServiceHarness{
		Storage: storage,
		Clock:   clock,
		Users:   application.NewUserService(users, clock.NowFunc()),
		Showers: application.NewShowerService(showers, users),
	}

	tb.Cleanup(func() {
		_ = storage.Close()
	})
	return harness
}

// SeedUser stores a user through the storage layer and returns the stored
// application view.
func (h *ServiceHarness) SeedUser(tb testing.TB, fixture UserFixture) application.User {
	tb.Helper()

	stored, err := h.Storage.CreateUser(context.Background(), fixture.Persistence())
	if err != nil {
		tb.Fatalf("failed to seed user: %v", err)
	}
	return applicationUser(stored)
}

// SeedShower stores a shower through the storage layer and returns the
// stored application view.
func (h *ServiceHarness) SeedShower(tb testing.TB, fixture ShowerFixture) application.Shower {
	tb.Helper()

	stored, err := h.Storage.CreateShower(context.Background(), fixture.Persistence())
	if err != nil {
		tb.Fatalf("failed to seed shower: %v", err)
	}
	return applicationShower(stored)
}

// userRepositoryAdapter bridges the persistence contract to the application
// repository interface, translating models and sentinel errors.
type userRepositoryAdapter struct {
	repo persistence.UserRepository
}

func (a userRepositoryAdapter) CreateUser(ctx context.Context, user application.User) (application.User, error) {
	stored, err := a.repo.CreateUser(ctx, persistenceUser(user))
	if err != nil {
		return application.User{}, translateError(err)
	}
	return applicationUser(stored), nil
}

func (a userRepositoryAdapter) UpdateUser(ctx context.Context, user application.User) (application.User, error) {
	stored, err := a.repo.UpdateUser(ctx, persistenceUser(user))
	if err != nil {
		return application.User{}, translateError(err)
	}
	return applicationUser(stored), nil
}

func (a userRepositoryAdapter) GetUser(ctx context.Context, id int64) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return applicationUser(stored), nil
}

func (a userRepositoryAdapter) GetUserByName(ctx context.Context, lastName string) (application.User, error) {
	stored, err := a.repo.GetUserByName(ctx, lastName)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return applicationUser(stored), nil
}

func (a userRepositoryAdapter) ListUsers(ctx context.Context) ([]application.User, error) {
	stored, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	users := make([]application.User, 0, len(stored))
	for _, user := range stored {
		users = append(users, applicationUser(user))
	}
	return users, nil
}

// showerRepositoryAdapter bridges the persistence contract to the
// application repository interface.
type showerRepositoryAdapter struct {
	repo persistence.ShowerRepository
}

func (a showerRepositoryAdapter) CreateShower(ctx context.Context, shower application.Shower) (application.Shower, error) {
	stored, err := a.repo.CreateShower(ctx, persistenceShower(shower))
	if err != nil {
		return application.Shower{}, translateError(err)
	}
	return applicationShower(stored), nil
}

func (a showerRepositoryAdapter) GetShower(ctx context.Context, id int64) (application.Shower, error) {
	stored, err := a.repo.GetShower(ctx, id)
	if err != nil {
		return application.Shower{}, translateError(err)
	}
	return applicationShower(stored), nil
}

func (a showerRepositoryAdapter) ListShowers(ctx context.Context) ([]application.Shower, error) {
	stored, err := a.repo.ListShowers(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return applicationShowers(stored), nil
}

func (a showerRepositoryAdapter) ListShowersForUser(ctx context.Context, userID int64) ([]application.Shower, error) {
	stored, err := a.repo.ListShowersForUser(ctx, userID)
	if err != nil {
		return nil, translateError(err)
	}
	return applicationShowers(stored), nil
}

func translateError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrNotFound
	}
	return err
}

func persistenceUser(user application.User) persistence.User {
	return persistence.User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		TotalSeconds: user.TotalSeconds,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func applicationUser(user persistence.User) application.User {
	return application.User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		TotalSeconds: user.TotalSeconds,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func persistenceShower(shower application.Shower) persistence.Shower {
	return persistence.Shower{
		ID:               shower.ID,
		UserID:           copyInt64Ptr(shower.UserID),
		StartedAt:        shower.StartedAt,
		EndedAt:          shower.EndedAt,
		DurationSeconds:  shower.DurationSeconds,
		OvershootSeconds: shower.OvershootSeconds,
	}
}

func applicationShower(shower persistence.Shower) application.Shower {
	return application.Shower{
		ID:               shower.ID,
		UserID:           copyInt64Ptr(shower.UserID),
		StartedAt:        shower.StartedAt,
		EndedAt:          shower.EndedAt,
		DurationSeconds:  shower.DurationSeconds,
		OvershootSeconds: shower.OvershootSeconds,
	}
}

func applicationShowers(stored []persistence.Shower) []application.Shower {
	showers := make([]application.Shower, 0, len(stored))
	for _, shower := range stored {
		showers = append(showers, applicationShower(shower))
	}
	return showers
}
