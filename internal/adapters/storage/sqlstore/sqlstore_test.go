package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
	"tingrrr/internal/domain/swipes"
	"tingrrr/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "tingrrr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate must be idempotent")
	return s
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testDog(id string, offset time.Duration) dogs.Dog {
	return dogs.Dog{
		ID:           id,
		Name:         "Dog " + id,
		Breed:        "Beagle",
		Size:         dogs.SizeMedium,
		AgeYears:     3.5,
		WeightLbs:    25,
		Color:        "Tricolor",
		Sex:          dogs.SexFemale,
		CoatLength:   dogs.CoatShort,
		Description:  "friendly",
		GoodWithKids: true,
		CreatedAt:    base.Add(offset),
		UpdatedAt:    base.Add(offset),
	}
}

func seedUser(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, NewUsersRepo(s).Create(context.Background(), users.User{
		ID: id, Username: "user-" + id, Email: id + "@example.com", CreatedAt: base,
	}))
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("Postgres")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d)

	d, err = ParseDriver("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d)

	_, err = ParseDriver("mysql")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	lite := &Store{driver: DriverSQLite}

	q := `SELECT 1 WHERE a = $1 AND b = $2 AND c = $10`
	assert.Equal(t, q, pg.rebind(q))
	assert.Equal(t, `SELECT 1 WHERE a = ?1 AND b = ?2 AND c = ?10`, lite.rebind(q))
}

func TestDogsRepo(t *testing.T) {
	s := openTestStore(t)
	repo := NewDogsRepo(s)
	ctx := context.Background()

	// alta fuera de orden; el catálogo ordena por created_at
	require.NoError(t, repo.Create(ctx, testDog("c", 2*time.Minute)))
	require.NoError(t, repo.Create(ctx, testDog("a", 0)))
	require.NoError(t, repo.Create(ctx, testDog("b", time.Minute)))
	assert.Error(t, repo.Create(ctx, testDog("a", 0)))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, testDog("a", 0), got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	all, err := repo.List(ctx, dogs.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, dogIDs(all))

	page, err := repo.List(ctx, dogs.ListFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, dogIDs(page))

	tail, err := repo.List(ctx, dogs.ListFilter{Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, dogIDs(tail))

	many, err := repo.GetMany(ctx, []string{"c", "zzz", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, dogIDs(many), "GetMany respeta el orden de ids")

	none, err := repo.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	upd := testDog("b", time.Minute)
	upd.Name = "Renamed"
	upd.IsRescue = true
	upd.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, upd))
	got, err = repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsRescue)
	assert.Equal(t, base.Add(time.Hour), got.UpdatedAt)

	assert.ErrorIs(t, repo.Update(ctx, testDog("missing", 0)), dogs.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "b"), dogs.ErrNotFound)
}

func TestUsersRepo_Uniqueness(t *testing.T) {
	s := openTestStore(t)
	repo := NewUsersRepo(s)
	ctx := context.Background()

	seedUser(t, s, "u1")

	err := repo.Create(ctx, users.User{ID: "u2", Username: "user-u1", Email: "other@example.com", CreatedAt: base})
	assert.ErrorIs(t, err, users.ErrUsernameTaken)

	err = repo.Create(ctx, users.User{ID: "u3", Username: "fresh", Email: "u1@example.com", CreatedAt: base})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	u, err := repo.FindByEmail(ctx, "u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, users.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSwipesRepo(t *testing.T) {
	s := openTestStore(t)
	dogRepo := NewDogsRepo(s)
	repo := NewSwipesRepo(s)
	ctx := context.Background()

	seedUser(t, s, "u1")
	require.NoError(t, dogRepo.Create(ctx, testDog("d1", 0)))
	require.NoError(t, dogRepo.Create(ctx, testDog("d2", time.Minute)))

	require.NoError(t, repo.Create(ctx, swipes.Swipe{ID: "s1", UserID: "u1", DogID: "d1", Direction: swipes.DirectionRight, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, swipes.Swipe{ID: "s2", UserID: "u1", DogID: "d2", Direction: swipes.DirectionLeft, CreatedAt: base.Add(time.Second)}))

	err := repo.Create(ctx, swipes.Swipe{ID: "s3", UserID: "u1", DogID: "d1", Direction: swipes.DirectionLeft, CreatedAt: base})
	assert.True(t, errors.Is(err, swipes.ErrAlreadySwiped))

	ok, err := repo.Exists(ctx, "u1", "d2")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, swipes.DirectionRight, list[0].Direction)
	assert.Equal(t, "d2", list[1].DogID)

	// borrar el perro arrastra sus swipes
	require.NoError(t, dogRepo.Delete(ctx, "d2"))
	n, err := repo.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSwipesRepo_Profile(t *testing.T) {
	s := openTestStore(t)
	repo := NewSwipesRepo(s)
	ctx := context.Background()

	seedUser(t, s, "u1")
	dogRepo := NewDogsRepo(s)
	require.NoError(t, dogRepo.Create(ctx, testDog("d1", 0)))
	require.NoError(t, dogRepo.Create(ctx, testDog("d2", time.Minute)))

	_, err := repo.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, swipes.ErrNoPreferences)

	size := dogs.SizeLarge
	breed := "Labrador"
	minAge, maxAge := 1.0, 4.5
	cats := false
	p := matching.Profile{
		UserID:              "u1",
		PreferredSize:       &size,
		PreferredBreed:      &breed,
		MinAge:              &minAge,
		MaxAge:              &maxAge,
		PrefersGoodWithCats: &cats,
		UpdatedAt:           base,
	}
	require.NoError(t, repo.CreateWithProfile(ctx, rightSwipe("s1", "u1", "d1"), p))

	got, err := repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Nil(t, got.PreferredCoatLength)
	assert.Nil(t, got.PrefersRescue)
	require.NotNil(t, got.PrefersGoodWithCats)
	assert.False(t, *got.PrefersGoodWithCats, "false is stored, not dropped")

	// upsert reemplaza la fila completa
	replacement := matching.Profile{UserID: "u1", PreferredBreed: &breed, UpdatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.CreateWithProfile(ctx, rightSwipe("s2", "u1", "d2"), replacement))
	got, err = repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)

	require.NoError(t, repo.Reset(ctx, "u1"))
	_, err = repo.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, swipes.ErrNoPreferences)
}

func TestSwipesRepo_CreateWithProfileRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := NewSwipesRepo(s)
	ctx := context.Background()

	seedUser(t, s, "u1")
	require.NoError(t, NewDogsRepo(s).Create(ctx, testDog("d1", 0)))
	require.NoError(t, NewDogsRepo(s).Create(ctx, testDog("d2", time.Minute)))

	small, large := dogs.SizeSmall, dogs.SizeLarge
	first := matching.Profile{UserID: "u1", PreferredSize: &small, UpdatedAt: base}
	require.NoError(t, repo.CreateWithProfile(ctx, rightSwipe("s1", "u1", "d1"), first))

	// el perfil apunta a un usuario inexistente: falla la FK y el swipe se revierte
	err := repo.CreateWithProfile(ctx, rightSwipe("s2", "u1", "d2"),
		matching.Profile{UserID: "ghost", PreferredSize: &large, UpdatedAt: base})
	require.Error(t, err)

	ok, err := repo.Exists(ctx, "u1", "d2")
	require.NoError(t, err)
	assert.False(t, ok)

	// duplicado: tampoco toca el perfil
	err = repo.CreateWithProfile(ctx, rightSwipe("s3", "u1", "d1"),
		matching.Profile{UserID: "u1", PreferredSize: &large, UpdatedAt: base})
	assert.ErrorIs(t, err, swipes.ErrAlreadySwiped)

	got, err := repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

// El mismo flujo del servicio tiene que dar el mismo perfil que el store en
// memoria: el empate de la moda lo gana el primer perro en orden de swipe,
// no en orden de catálogo.
func TestSwipesService_TieBreakFollowsSwipeOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	dogsSvc := dogs.NewService(NewDogsRepo(s))
	usersSvc := users.NewService(NewUsersRepo(s))
	svc := swipes.NewService(NewSwipesRepo(s), dogsSvc, usersSvc, nil)

	u, err := usersSvc.Create(ctx, users.CreateInput{Username: "tie", Email: "tie@example.com"})
	require.NoError(t, err)

	newDog := func(name string, size dogs.Size) dogs.Dog {
		d, err := dogsSvc.Create(ctx, dogs.CreateInput{
			Name:       name,
			Breed:      "Mixed",
			Size:       size,
			AgeYears:   2,
			WeightLbs:  30,
			Color:      "Brown",
			Sex:        dogs.SexMale,
			CoatLength: dogs.CoatShort,
		})
		require.NoError(t, err)
		return d
	}
	small := newDog("Pip", dogs.SizeSmall)
	time.Sleep(2 * time.Millisecond)
	large := newDog("Tank", dogs.SizeLarge)

	_, err = svc.Record(ctx, u.ID, large.ID, swipes.DirectionRight)
	require.NoError(t, err)
	_, err = svc.Record(ctx, u.ID, small.ID, swipes.DirectionRight)
	require.NoError(t, err)

	p, err := svc.Preferences(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p.PreferredSize)
	assert.Equal(t, dogs.SizeLarge, *p.PreferredSize)
}

func rightSwipe(id, userID, dogID string) swipes.Swipe {
	return swipes.Swipe{ID: id, UserID: userID, DogID: dogID, Direction: swipes.DirectionRight, CreatedAt: base}
}

func TestStore_Drop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Drop(ctx))
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, NewDogsRepo(s).Create(ctx, testDog("x", 0)))
}

func dogIDs(ds []dogs.Dog) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}
