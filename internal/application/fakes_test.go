package application

import (
	"context"
	"sort"
)

// fakeUserRepository is an in-memory UserRepository with optional error
// injection for exercising failure paths.
type fakeUserRepository struct {
	users  map[int64]User
	nextID int64

	getErr    error
	createErr error
	updateErr error
	listErr   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]User)}
}

func (f *fakeUserRepository) put(user User) User {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user User) (User, error) {
	if f.createErr != nil {
		return User{}, f.createErr
	}
	return f.put(user), nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user User) (User, error) {
	if f.updateErr != nil {
		return User{}, f.updateErr
	}
	if _, ok := f.users[user.ID]; !ok {
		return User{}, ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepository) GetUser(_ context.Context, id int64) (User, error) {
	if f.getErr != nil {
		return User{}, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByName(_ context.Context, lastName string) (User, error) {
	if f.getErr != nil {
		return User{}, f.getErr
	}
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if f.users[id].LastName == lastName {
			return f.users[id], nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeUserRepository) ListUsers(_ context.Context) ([]User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]User, 0, len(ids))
	for _, id := range ids {
		users = append(users, f.users[id])
	}
	return users, nil
}

// fakeShowerRepository is an in-memory ShowerRepository.
type fakeShowerRepository struct {
	showers map[int64]Shower
	nextID  int64

	createErr error
	listErr   error
}

func newFakeShowerRepository() *fakeShowerRepository {
	return &fakeShowerRepository{showers: make(map[int64]Shower)}
}

func (f *fakeShowerRepository) CreateShower(_ context.Context, shower Shower) (Shower, error) {
	if f.createErr != nil {
		return Shower{}, f.createErr
	}
	f.nextID++
	shower.ID = f.nextID
	f.showers[shower.ID] = shower
	return shower, nil
}

func (f *fakeShowerRepository) GetShower(_ context.Context, id int64) (Shower, error) {
	shower, ok := f.showers[id]
	if !ok {
		return Shower{}, ErrNotFound
	}
	return shower, nil
}

func (f *fakeShowerRepository) ListShowers(_ context.Context) ([]Shower, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(func(Shower) bool { return true }), nil
}

func (f *fakeShowerRepository) ListShowersForUser(_ context.Context, userID int64) ([]Shower, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(func(s Shower) bool { return s.UserID != nil && *s.UserID == userID }), nil
}

func (f *fakeShowerRepository) sorted(keep func(Shower) bool) []Shower {
	ids := make([]int64, 0, len(f.showers))
	for id := range f.showers {
		if keep(f.showers[id]) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	showers := make([]Shower, 0, len(ids))
	for _, id := range ids {
		showers = append(showers, f.showers[id])
	}
	return showers
}
