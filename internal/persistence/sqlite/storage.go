package sqlite

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/shower-timer/internal/persistence"
)

// Storage provides an in-memory persistence backend with the same contract
// as the SQL repositories. It backs the test harnesses and keeps identity
// generation (sequential numeric ids) compatible with AUTOINCREMENT.
type Storage struct {
	mu           sync.RWMutex
	users        map[int64]persistence.User
	showers      map[int64]persistence.Shower
	nextUserID   int64
	nextShowerID int64
}

// OpenMemory returns a new empty Storage.
func OpenMemory() *Storage {
	return &Storage{
		users:   make(map[int64]persistence.User),
		showers: make(map[int64]persistence.Shower),
	}
}

// Close releases resources held by the storage. No-op for the in-memory
// implementation.
func (s *Storage) Close() error {
	return nil
}

// Migrate initialises the storage. No-op for the in-memory implementation.
func (s *Storage) Migrate(context.Context) error {
	return nil
}

// --- UserRepository implementation ---

// CreateUser stores a new user and assigns the next identity.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	return user, nil
}

// UpdateUser replaces an existing user record.
func (s *Storage) UpdateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return persistence.User{}, persistence.ErrNotFound
	}

	s.users[user.ID] = user
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// GetUserByName retrieves the first user whose last name matches, lowest ID
// winning. Last names carry no uniqueness constraint; this mirrors the SQL
// repository's ORDER BY id LIMIT 1 behaviour.
func (s *Storage) GetUserByName(ctx context.Context, lastName string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match persistence.User
	found := false
	for _, user := range s.users {
		if !strings.EqualFold(user.LastName, lastName) {
			continue
		}
		if !found || user.ID < match.ID {
			match = user
			found = true
		}
	}

	if !found {
		return persistence.User{}, persistence.ErrNotFound
	}
	return match, nil
}

// ListUsers returns all users ordered by ID ascending.
func (s *Storage) ListUsers(ctx context.Context) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]persistence.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	return users, nil
}

// --- ShowerRepository implementation ---

// CreateShower stores a new shower session and assigns the next identity.
// A non-nil user reference must resolve to an existing user.
func (s *Storage) CreateShower(ctx context.Context, shower persistence.Shower) (persistence.Shower, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shower.UserID != nil {
		if _, ok := s.users[*shower.UserID]; !ok {
			return persistence.Shower{}, persistence.ErrForeignKeyViolation
		}
	}

	s.nextShowerID++
	shower.ID = s.nextShowerID
	s.showers[shower.ID] = cloneShower(shower)
	return shower, nil
}

// GetShower retrieves a shower by ID.
func (s *Storage) GetShower(ctx context.Context, id int64) (persistence.Shower, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shower, ok := s.showers[id]
	if !ok {
		return persistence.Shower{}, persistence.ErrNotFound
	}
	return cloneShower(shower), nil
}

// ListShowers returns all recorded showers ordered by ID ascending.
func (s *Storage) ListShowers(ctx context.Context) ([]persistence.Shower, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	showers := make([]persistence.Shower, 0, len(s.showers))
	for _, shower := range s.showers {
		showers = append(showers, cloneShower(shower))
	}

	sort.Slice(showers, func(i, j int) bool {
		return showers[i].ID < showers[j].ID
	})

	return showers, nil
}

// ListShowersForUser returns the showers owned by the given user ordered by
// ID ascending. An unknown user yields an empty result, not an error.
func (s *Storage) ListShowersForUser(ctx context.Context, userID int64) ([]persistence.Shower, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	showers := make([]persistence.Shower, 0)
	for _, shower := range s.showers {
		if shower.UserID == nil || *shower.UserID != userID {
			continue
		}
		showers = append(showers, cloneShower(shower))
	}

	sort.Slice(showers, func(i, j int) bool {
		return showers[i].ID < showers[j].ID
	})

	return showers, nil
}

func cloneShower(shower persistence.Shower) persistence.Shower {
	if shower.UserID != nil {
		id := *shower.UserID
		shower.UserID = &id
	}
	return shower
}
