package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shower-timer/internal/application"
	"github.com/example/shower-timer/internal/bridge"
	"github.com/example/shower-timer/internal/config"
	httptransport "github.com/example/shower-timer/internal/http"
	"github.com/example/shower-timer/internal/persistence"
	"github.com/example/shower-timer/internal/persistence/sqlite"
	"github.com/example/shower-timer/internal/persistence/sqlite/migration"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(migration.DefaultSQLiteConfig(cfg.SQLiteDSN))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	migrator := migration.NewManager(migration.NewSQLiteExecutor(pool.DB()), migration.Builtin(), logger)
	if err := migrator.Run(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	now := time.Now

	userRepo := newUserRepositoryAdapter(sqlite.NewUserRepository(pool))
	showerRepo := newShowerRepositoryAdapter(sqlite.NewShowerRepository(pool))
	bridgeClient := bridge.NewClient(cfg.BridgeURL, cfg.BridgeTimeout)

	userService := application.NewUserServiceWithLogger(userRepo, now, logger)
	showerService := application.NewShowerServiceWithLogger(showerRepo, userRepo, logger)
	deviceService := application.NewDeviceServiceWithLogger(userRepo, bridgeClient, logger)

	userHandler := httptransport.NewUserHandler(userService, logger)
	showerHandler := httptransport.NewShowerHandler(showerService, now, logger)
	deviceHandler := httptransport.NewDeviceHandler(deviceService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Users:   userHandler,
		Showers: showerHandler,
		Device:  deviceHandler,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("shower timer API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// The repository adapters translate between the persistence models returned
// by the SQLite layer and the application models the services operate on,
// mapping the persistence sentinels onto the application ones along the way.

type userRepositoryAdapter struct {
	repo persistence.UserRepository
}

func newUserRepositoryAdapter(repo persistence.UserRepository) *userRepositoryAdapter {
	return &userRepositoryAdapter{repo: repo}
}

func (a *userRepositoryAdapter) CreateUser(ctx context.Context, user application.User) (application.User, error) {
	stored, err := a.repo.CreateUser(ctx, toPersistenceUser(user))
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) UpdateUser(ctx context.Context, user application.User) (application.User, error) {
	stored, err := a.repo.UpdateUser(ctx, toPersistenceUser(user))
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) GetUser(ctx context.Context, id int64) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) GetUserByName(ctx context.Context, lastName string) (application.User, error) {
	stored, err := a.repo.GetUserByName(ctx, lastName)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) ListUsers(ctx context.Context) ([]application.User, error) {
	models, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	users := make([]application.User, 0, len(models))
	for _, model := range models {
		users = append(users, toApplicationUser(model))
	}
	return users, nil
}

type showerRepositoryAdapter struct {
	repo persistence.ShowerRepository
}

func newShowerRepositoryAdapter(repo persistence.ShowerRepository) *showerRepositoryAdapter {
	return &showerRepositoryAdapter{repo: repo}
}

func (a *showerRepositoryAdapter) CreateShower(ctx context.Context, shower application.Shower) (application.Shower, error) {
	stored, err := a.repo.CreateShower(ctx, toPersistenceShower(shower))
	if err != nil {
		return application.Shower{}, translateError(err)
	}
	return toApplicationShower(stored), nil
}

func (a *showerRepositoryAdapter) GetShower(ctx context.Context, id int64) (application.Shower, error) {
	stored, err := a.repo.GetShower(ctx, id)
	if err != nil {
		return application.Shower{}, translateError(err)
	}
	return toApplicationShower(stored), nil
}

func (a *showerRepositoryAdapter) ListShowers(ctx context.Context) ([]application.Shower, error) {
	models, err := a.repo.ListShowers(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return toApplicationShowers(models), nil
}

func (a *showerRepositoryAdapter) ListShowersForUser(ctx context.Context, userID int64) ([]application.Shower, error) {
	models, err := a.repo.ListShowersForUser(ctx, userID)
	if err != nil {
		return nil, translateError(err)
	}
	return toApplicationShowers(models), nil
}

func translateError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return application.ErrNotFound
	}
	return err
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:           model.ID,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		TotalSeconds: model.TotalSeconds,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toPersistenceUser(user application.User) persistence.User {
	return persistence.User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		TotalSeconds: user.TotalSeconds,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toApplicationShower(model persistence.Shower) application.Shower {
	return application.Shower{
		ID:               model.ID,
		UserID:           cloneInt64(model.UserID),
		StartedAt:        model.StartedAt,
		EndedAt:          model.EndedAt,
		DurationSeconds:  model.DurationSeconds,
		OvershootSeconds: model.OvershootSeconds,
	}
}

func toPersistenceShower(shower application.Shower) persistence.Shower {
	return persistence.Shower{
		ID:               shower.ID,
		UserID:           cloneInt64(shower.UserID),
		StartedAt:        shower.StartedAt,
		EndedAt:          shower.EndedAt,
		DurationSeconds:  shower.DurationSeconds,
		OvershootSeconds: shower.OvershootSeconds,
	}
}

func toApplicationShowers(models []persistence.Shower) []application.Shower {
	if len(models) == 0 {
		return nil
	}
	showers := make([]application.Shower, 0, len(models))
	for _, model := range models {
		showers = append(showers, toApplicationShower(model))
	}
	return showers
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
