package application

import "time"

// User is a registered shower-timer user as exposed by the application
// services.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	TotalSeconds int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInput captures caller provided user attributes.
type UserInput struct {
	FirstName string
	LastName  string
}

// Shower represents one recorded shower session.
type Shower struct {
	ID               int64
	UserID           *int64
	StartedAt        time.Time
	EndedAt          time.Time
	DurationSeconds  int
	OvershootSeconds int
	CreatedAt        time.Time
}

// RecordShowerParams wraps the data required to record a shower session.
// Timestamps are supplied by the caller; the recorder never reads the wall
// clock itself.
type RecordShowerParams struct {
	UserID          *int64
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
}
