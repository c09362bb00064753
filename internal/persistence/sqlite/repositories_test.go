package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/shower-timer/internal/persistence"
	"github.com/example/shower-timer/internal/testfixtures"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()

	t.Run("creates and retrieves users", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		created, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture(
			testfixtures.WithUserName("Ada", "Lovelace"),
		).Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
		if created.ID == 0 {
			t.Fatal("expected a generated identity")
		}

		stored, err := harness.Users.GetUser(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUser returned error: %v", err)
		}
		if stored.FirstName != "Ada" || stored.LastName != "Lovelace" {
			t.Fatalf("unexpected names: %q %q", stored.FirstName, stored.LastName)
		}
		if !stored.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("created_at changed across round trip: %v vs %v", stored.CreatedAt, created.CreatedAt)
		}
	})

	t.Run("assigns ascending identities", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		first, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
		second, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
		if second.ID <= first.ID {
			t.Fatalf("expected ascending IDs, got %d then %d", first.ID, second.ID)
		}
	})

	t.Run("updates the stored total", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		created, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}

		created.TotalSeconds = 480
		updated, err := harness.Users.UpdateUser(ctx, created)
		if err != nil {
			t.Fatalf("UpdateUser returned error: %v", err)
		}
		if updated.TotalSeconds != 480 {
			t.Fatalf("expected total 480, got %d", updated.TotalSeconds)
		}
		if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
			t.Fatalf("expected updated_at >= created_at, got %v < %v", updated.UpdatedAt, updated.CreatedAt)
		}
	})

	t.Run("returns ErrNotFound when updating a missing user", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)

		_, err := harness.Users.UpdateUser(context.Background(), persistence.User{ID: 42, LastName: "Ghost"})
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects negative totals", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)

		fixture := testfixtures.NewUserFixture().Persistence()
		fixture.TotalSeconds = -1
		_, err := harness.Users.CreateUser(context.Background(), fixture)
		if !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})

	t.Run("resolves last names case-insensitively with the lowest ID winning", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		first, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture(
			testfixtures.WithUserName("Ada", "Lovelace"),
		).Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
		if _, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture(
			testfixtures.WithUserName("Alan", "LOVELACE"),
		).Persistence()); err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}

		match, err := harness.Users.GetUserByName(ctx, "lovelace")
		if err != nil {
			t.Fatalf("GetUserByName returned error: %v", err)
		}
		if match.ID != first.ID {
			t.Fatalf("expected user %d, got %d", first.ID, match.ID)
		}
	})

	t.Run("lists users ordered by ID", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			if _, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence()); err != nil {
				t.Fatalf("CreateUser returned error: %v", err)
			}
		}

		users, err := harness.Users.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers returned error: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(users))
		}
		for i := 1; i < len(users); i++ {
			if users[i-1].ID >= users[i].ID {
				t.Fatalf("expected ascending IDs, got %d before %d", users[i-1].ID, users[i].ID)
			}
		}
	})
}

func TestShowerRepository(t *testing.T) {
	t.Parallel()

	t.Run("round-trips an attributed session", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		user, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}

		started := time.Date(2024, time.March, 1, 7, 30, 0, 0, time.UTC)
		created, err := harness.Showers.CreateShower(ctx, persistence.Shower{
			UserID:           &user.ID,
			StartedAt:        started,
			EndedAt:          started.Add(360 * time.Second),
			DurationSeconds:  360,
			OvershootSeconds: 60,
		})
		if err != nil {
			t.Fatalf("CreateShower returned error: %v", err)
		}

		stored, err := harness.Showers.GetShower(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetShower returned error: %v", err)
		}
		if stored.UserID == nil || *stored.UserID != user.ID {
			t.Fatalf("expected session owned by user %d, got %v", user.ID, stored.UserID)
		}
		if !stored.StartedAt.Equal(started) || !stored.EndedAt.Equal(started.Add(360*time.Second)) {
			t.Fatalf("session window changed across round trip: %v to %v", stored.StartedAt, stored.EndedAt)
		}
		if stored.DurationSeconds != 360 || stored.OvershootSeconds != 60 {
			t.Fatalf("unexpected duration/overshoot: %d/%d", stored.DurationSeconds, stored.OvershootSeconds)
		}
	})

	t.Run("stores anonymous sessions with a NULL user reference", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		created, err := harness.Showers.CreateShower(ctx, testfixtures.NewShowerFixture(
			testfixtures.WithoutShowerUser(),
		).Persistence())
		if err != nil {
			t.Fatalf("CreateShower returned error: %v", err)
		}

		stored, err := harness.Showers.GetShower(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetShower returned error: %v", err)
		}
		if stored.UserID != nil {
			t.Fatalf("expected nil user reference, got %d", *stored.UserID)
		}
	})

	t.Run("rejects sessions referencing unknown users", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)

		missing := int64(42)
		_, err := harness.Showers.CreateShower(context.Background(), testfixtures.NewShowerFixture(
			testfixtures.WithShowerUserID(missing),
		).Persistence())
		if !errors.Is(err, persistence.ErrForeignKeyViolation) {
			t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
		}
	})

	t.Run("returns ErrNotFound for unknown sessions", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)

		_, err := harness.Showers.GetShower(context.Background(), 42)
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("filters the per-user listing oldest first", func(t *testing.T) {
		t.Parallel()

		harness := testfixtures.NewSQLiteHarness(t)
		ctx := context.Background()

		user, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
		other, err := harness.Users.CreateUser(ctx, testfixtures.NewUserFixture().Persistence())
		if err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}

		for _, owner := range []*int64{&user.ID, nil, &other.ID, &user.ID} {
			fixture := testfixtures.NewShowerFixture().Persistence()
			fixture.UserID = owner
			if _, err := harness.Showers.CreateShower(ctx, fixture); err != nil {
				t.Fatalf("CreateShower returned error: %v", err)
			}
		}

		listed, err := harness.Showers.ListShowersForUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListShowersForUser returned error: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(listed))
		}
		if listed[0].ID >= listed[1].ID {
			t.Fatalf("expected ascending order, got %d before %d", listed[0].ID, listed[1].ID)
		}

		all, err := harness.Showers.ListShowers(ctx)
		if err != nil {
			t.Fatalf("ListShowers returned error: %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("expected 4 sessions in total, got %d", len(all))
		}
	})
}
