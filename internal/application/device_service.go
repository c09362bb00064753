package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// UsernameNotifier forwards a username to the external bridge process that
// talks to the sensor device.
type UsernameNotifier interface {
	NotifyUsername(ctx context.Context, name string) error
}

// DeviceService resolves a username and hands it to the device bridge. The
// relay is fully decoupled from session recording; its failures never touch
// recorded data.
type DeviceService struct {
	users    UserRepository
	notifier UsernameNotifier
	logger   *slog.Logger
}

// NewDeviceService wires dependencies for the device relay.
func NewDeviceService(users UserRepository, notifier UsernameNotifier) *DeviceService {
	return NewDeviceServiceWithLogger(users, notifier, nil)
}

// NewDeviceServiceWithLogger wires dependencies with an explicit base logger.
func NewDeviceServiceWithLogger(users UserRepository, notifier UsernameNotifier, logger *slog.Logger) *DeviceService {
	return &DeviceService{users: users, notifier: notifier, logger: defaultLogger(logger)}
}

func (s *DeviceService) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if s == nil {
		return slog.Default()
	}
	return serviceLogger(ctx, s.logger, "DeviceService", operation, attrs...)
}

// SendUserToDevice looks up a user by name and forwards the stored last
// name to the bridge. The name must resolve; relay failures are surfaced to
// the caller.
func (s *DeviceService) SendUserToDevice(ctx context.Context, username string) (User, error) {
	if s == nil || s.users == nil || s.notifier == nil {
		return User{}, fmt.Errorf("device service not configured")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		vErr := &ValidationError{}
		vErr.add("username", "username is required")
		return User{}, vErr
	}

	user, err := s.users.GetUserByName(ctx, username)
	if err != nil {
		return User{}, err
	}

	if err := s.notifier.NotifyUsername(ctx, user.LastName); err != nil {
		s.log(ctx, "SendUserToDevice", "user_id", user.ID).ErrorContext(ctx, "bridge notification failed", "error", err)
		return User{}, fmt.Errorf("failed to notify device bridge: %w", err)
	}

	s.log(ctx, "SendUserToDevice", "user_id", user.ID).InfoContext(ctx, "username sent to device bridge")
	return user, nil
}
