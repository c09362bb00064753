package persistence

import "context"

// UserRepository exposes storage operations for users. Create returns the
// stored record carrying the generated identity. Users are never deleted by
// this system.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByName(ctx context.Context, lastName string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// ShowerRepository stores recorded shower sessions. Showers are immutable
// once created; there are no update or delete operations.
type ShowerRepository interface {
	CreateShower(ctx context.Context, shower Shower) (Shower, error)
	GetShower(ctx context.Context, id int64) (Shower, error)
	ListShowers(ctx context.Context) ([]Shower, error)
	ListShowersForUser(ctx context.Context, userID int64) ([]Shower, error)
}
