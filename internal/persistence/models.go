package persistence

import "time"

// User is someone registered with the shower timer, together with the
// accumulated seconds across their recorded sessions.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	TotalSeconds int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Shower represents one recorded shower session.
//
// OvershootSeconds is derived when the session is recorded and stored as-is;
// it is never recomputed on read. UserID is nullable at the storage level,
// but a shower without an owner carries no aggregate consequences.
type Shower struct {
	ID               int64
	UserID           *int64
	StartedAt        time.Time
	EndedAt          time.Time
	DurationSeconds  int
	OvershootSeconds int
	CreatedAt        time.Time
}
