package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/shower-timer/internal/application"
	"github.com/example/shower-timer/internal/persistence"
)

var (
	userCounter   uint64
	showerCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record that can be materialised
// for application or persistence tests.
type UserFixture struct {
	ID           int64
	FirstName    string
	LastName     string
	TotalSeconds int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           int64(idx),
		FirstName:    fmt.Sprintf("First%03d", idx),
		LastName:     fmt.Sprintf("User%03d", idx),
		TotalSeconds: 0,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id int64) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserName overrides the generated first and last name.
func WithUserName(firstName, lastName string) UserOption {
	return func(f *UserFixture) {
		f.FirstName = firstName
		f.LastName = lastName
	}
}

// WithUserTotalSeconds sets the accumulated total on the fixture.
func WithUserTotalSeconds(seconds int) UserOption {
	return func(f *UserFixture) {
		f.TotalSeconds = seconds
	}
}

// WithUserTimestamps sets both created and updated timestamps on the fixture.
func WithUserTimestamps(created, updated time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:           f.ID,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		TotalSeconds: f.TotalSeconds,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		TotalSeconds: f.TotalSeconds,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Input returns the fixture as an application.UserInput.
func (f UserFixture) Input() application.UserInput {
	return application.UserInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}

// ---------------------------- Shower fixtures ----------------------------

// ShowerFixture represents a deterministic shower session record.
type ShowerFixture struct {
	ID               int64
	UserID           *int64
	StartedAt        time.Time
	EndedAt          time.Time
	DurationSeconds  int
	OvershootSeconds int
	CreatedAt        time.Time
}

// ShowerOption configures the generated shower fixture.
type ShowerOption func(*ShowerFixture)

// NewShowerFixture returns a deterministic shower fixture with optional
// overrides. The default session lasts four minutes and carries no overshoot.
func NewShowerFixture(opts ...ShowerOption) ShowerFixture {
	idx := atomic.AddUint64(&showerCounter, 1)
	duration := 240
	started := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := ShowerFixture{
		ID:               int64(idx),
		StartedAt:        started,
		EndedAt:          started.Add(time.Duration(duration) * time.Second),
		DurationSeconds:  duration,
		OvershootSeconds: 0,
		CreatedAt:        started.Add(time.Duration(duration) * time.Second),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithShowerID overrides the generated shower ID.
func WithShowerID(id int64) ShowerOption {
	return func(f *ShowerFixture) {
		f.ID = id
	}
}

// WithShowerUserID attributes the session to the given user.
func WithShowerUserID(userID int64) ShowerOption {
	return func(f *ShowerFixture) {
		id := userID
		f.UserID = &id
	}
}

// WithoutShowerUser clears the user attribution on the fixture.
func WithoutShowerUser() ShowerOption {
	return func(f *ShowerFixture) {
		f.UserID = nil
	}
}

// WithShowerDuration sets the session duration and re-derives the end time
// and overshoot accordingly.
func WithShowerDuration(seconds int) ShowerOption {
	return func(f *ShowerFixture) {
		f.DurationSeconds = seconds
		f.EndedAt = f.StartedAt.Add(time.Duration(seconds) * time.Second)
		f.OvershootSeconds = 0
		if seconds > application.OvershootThresholdSeconds {
			f.OvershootSeconds = seconds - application.OvershootThresholdSeconds
		}
	}
}

// WithShowerWindow sets the start and end times on the fixture.
func WithShowerWindow(started, ended time.Time) ShowerOption {
	return func(f *ShowerFixture) {
		f.StartedAt = started
		f.EndedAt = ended
	}
}

// Application returns the fixture as an application.Shower value.
func (f ShowerFixture) Application() application.Shower {
	return application.Shower{
		ID:               f.ID,
		UserID:           copyInt64Ptr(f.UserID),
		StartedAt:        f.StartedAt,
		EndedAt:          f.EndedAt,
		DurationSeconds:  f.DurationSeconds,
		OvershootSeconds: f.OvershootSeconds,
	}
}

// Persistence returns the fixture as a persistence.Shower value.
func (f ShowerFixture) Persistence() persistence.Shower {
	return persistence.Shower{
		ID:               f.ID,
		UserID:           copyInt64Ptr(f.UserID),
		StartedAt:        f.StartedAt,
		EndedAt:          f.EndedAt,
		DurationSeconds:  f.DurationSeconds,
		OvershootSeconds: f.OvershootSeconds,
		CreatedAt:        f.CreatedAt,
	}
}

// helper to deep copy optional int64 values.
func copyInt64Ptr(src *int64) *int64 {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
